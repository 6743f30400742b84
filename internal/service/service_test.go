package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"finance-assistant/internal/llm"
	"finance-assistant/internal/models"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Model:          "llama-3.1-8b-instant",
		CurrencySymbol: "₹",
		Now:            func() time.Time { return testNow },
	}
}

// fakeCompleter records requests and replies with a canned answer.
type fakeCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.ChatRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func (f *fakeCompleter) lastRequest() llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// failingStore fails every operation.
type failingStore struct{}

var errBackendDown = errors.New("connection refused")

func (failingStore) Insert(context.Context, *models.Expense) error { return errBackendDown }

func (failingStore) Query(context.Context, string, int) ([]*models.Expense, error) {
	return nil, errBackendDown
}

func (failingStore) DeleteAll(context.Context, string) (int64, error) { return 0, errBackendDown }

func ptr[T any](v T) *T { return &v }
