package service

import (
	"context"
	"fmt"
	"time"

	"finance-assistant/internal/dto"
	"finance-assistant/internal/models"
	"finance-assistant/internal/repository"

	"go.uber.org/zap"
)

// ExpenseService backs the structured endpoints. It stores what the client
// sends without checking category or amount sign.
type ExpenseService struct {
	store  repository.ExpenseStore
	now    func() time.Time
	logger *zap.Logger
}

func NewExpenseService(store repository.ExpenseStore, now func() time.Time, logger *zap.Logger) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{
		store:  store,
		now:    now,
		logger: logger,
	}
}

// AddExpense stores req, stamping the current time when no date is given.
func (s *ExpenseService) AddExpense(ctx context.Context, req *dto.AddExpenseRequest) (*models.Expense, error) {
	expense := &models.Expense{
		UserID:      req.UserID,
		Amount:      deref(req.Amount),
		Category:    deref(req.Category),
		Description: deref(req.Description),
		Date:        req.Date,
	}
	if expense.Date == "" {
		expense.Date = models.FormatTimestamp(s.now())
	}

	if err := s.store.Insert(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	s.logger.Info("Expense added", zap.String("user_id", expense.UserID), zap.String("category", expense.Category))
	return expense, nil
}

// ListExpenses returns the user's expenses, optionally for the last days only.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, days int) ([]*models.Expense, error) {
	expenses, err := s.store.Query(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	return expenses, nil
}

func (s *ExpenseService) DeleteAllExpenses(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}
	return deleted, nil
}
