package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-assistant/internal/models"
)

// ErrStorageUnavailable wraps every failure of the backing store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ExpenseStore persists expense records keyed by user.
type ExpenseStore interface {
	// Insert appends a record. There is no uniqueness constraint.
	Insert(ctx context.Context, expense *models.Expense) error
	// Query returns the user's records, restricted to the last windowDays
	// days when windowDays > 0. Order is unspecified.
	Query(ctx context.Context, userID string, windowDays int) ([]*models.Expense, error)
	// DeleteAll removes every record of the user and reports how many.
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

// Clock returns the current time; stores take one so windows are testable.
type Clock func() time.Time

// windowCutoff is the lower bound on the date column for a window of days.
// Dates are compared as strings, the same way the document store does.
func windowCutoff(now time.Time, windowDays int) string {
	return models.FormatTimestamp(now.Add(-time.Duration(windowDays) * 24 * time.Hour))
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
