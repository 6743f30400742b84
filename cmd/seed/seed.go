package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"finance-assistant/internal/models"
	"finance-assistant/internal/repository"
)

type sampleExpense struct {
	daysAgo     int
	amount      float64
	category    models.Category
	description string
}

var samples = []sampleExpense{
	{0, 250, models.CategoryFood, "lunch with colleagues"},
	{1, 120, models.CategoryTransport, "cab to office"},
	{2, 1499, models.CategoryShopping, "running shoes"},
	{3, 2200, models.CategoryBills, "electricity bill"},
	{5, 499, models.CategoryEntertainment, "movie tickets"},
	{8, 650, models.CategoryHealth, "pharmacy"},
	{12, 380, models.CategoryFood, "groceries"},
	{20, 3500, models.CategoryBills, "rent share"},
	{35, 900, models.CategoryOther, "gift"},
}

// sampleExpenses returns the built-in set dated relative to now.
func sampleExpenses(userID string, now time.Time) []*models.Expense {
	expenses := make([]*models.Expense, 0, len(samples))
	for _, s := range samples {
		expenses = append(expenses, &models.Expense{
			UserID:      userID,
			Amount:      s.amount,
			Category:    string(s.category),
			Description: s.description,
			Date:        models.FormatTimestamp(now.AddDate(0, 0, -s.daysAgo)),
		})
	}
	return expenses
}

// loadExpenses reads a JSON array of expenses. Records without a user are
// assigned to userID and records without a date are stamped now.
func loadExpenses(path, userID string) ([]*models.Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var expenses []*models.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	stamp := models.FormatTimestamp(time.Now())
	for i, e := range expenses {
		if e == nil {
			return nil, fmt.Errorf("seed file %s: record %d is null", path, i)
		}
		if e.UserID == "" {
			e.UserID = userID
		}
		if e.Date == "" {
			e.Date = stamp
		}
	}
	return expenses, nil
}

// seed inserts expenses. With reset it first wipes userID and every other
// user that owns a record in expenses.
func seed(ctx context.Context, store repository.ExpenseStore, userID string, expenses []*models.Expense, reset bool) (int, int64, error) {
	var deleted int64
	if reset {
		for _, user := range seededUsers(userID, expenses) {
			n, err := store.DeleteAll(ctx, user)
			if err != nil {
				return 0, deleted, fmt.Errorf("failed to reset expenses of %s: %w", user, err)
			}
			deleted += n
		}
	}

	for i, e := range expenses {
		if err := store.Insert(ctx, e); err != nil {
			return i, deleted, fmt.Errorf("failed to insert expense %d: %w", i, err)
		}
	}
	return len(expenses), deleted, nil
}

// seededUsers returns userID followed by the other owners in first-seen order.
func seededUsers(userID string, expenses []*models.Expense) []string {
	users := []string{userID}
	seen := map[string]bool{userID: true}
	for _, e := range expenses {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			users = append(users, e.UserID)
		}
	}
	return users
}
