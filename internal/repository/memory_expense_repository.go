package repository

import (
	"context"
	"sync"
	"time"

	"finance-assistant/internal/models"
)

// MemoryExpenseRepository keeps records in process memory.
type MemoryExpenseRepository struct {
	mu       sync.Mutex
	expenses []models.Expense
	now      Clock
}

func NewMemoryExpenseRepository(now Clock) *MemoryExpenseRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryExpenseRepository{now: now}
}

func (r *MemoryExpenseRepository) Insert(_ context.Context, expense *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses = append(r.expenses, *expense)
	return nil
}

func (r *MemoryExpenseRepository) Query(_ context.Context, userID string, windowDays int) ([]*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cutoff string
	if windowDays > 0 {
		cutoff = windowCutoff(r.now(), windowDays)
	}

	var result []*models.Expense
	for i := range r.expenses {
		e := r.expenses[i]
		if e.UserID != userID {
			continue
		}
		if cutoff != "" && e.Date < cutoff {
			continue
		}
		result = append(result, &e)
	}
	return result, nil
}

func (r *MemoryExpenseRepository) DeleteAll(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.expenses[:0]
	var deleted int64
	for _, e := range r.expenses {
		if e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.expenses = kept
	return deleted, nil
}

// Len reports the number of stored records across all users.
func (r *MemoryExpenseRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expenses)
}
