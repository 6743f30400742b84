package service

import (
	"context"
	"errors"
	"testing"

	"finance-assistant/internal/repository"

	"go.uber.org/zap"
)

func newTestQueryService(reply string, store repository.ExpenseStore) (*QueryService, *fakeCompleter) {
	completer := &fakeCompleter{reply: reply}
	extractor := NewExpenseExtractor(store, completer, testOptions(), zap.NewNop())
	assistant := NewAssistantService(store, completer, testOptions(), zap.NewNop())
	return NewQueryService(extractor, assistant, zap.NewNop()), completer
}

func TestProcess_AddIntentStoresExpense(t *testing.T) {
	store := repository.NewMemoryExpenseRepository(testOptions().Now)
	svc, completer := newTestQueryService(`{"amount":200,"category":"Transport","description":"transport expense"}`, store)

	response, err := svc.Process(context.Background(), "user_1", "I spent 200 on transport")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if response != "✅ Successfully added expense: ₹200.00 in Transport category for 'transport expense'" {
		t.Errorf("unexpected response %q", response)
	}
	if store.Len() != 1 {
		t.Errorf("expected one stored record, got %d", store.Len())
	}
	if completer.lastRequest().MaxTokens != extractionMaxTokens {
		t.Error("add intent should use the extraction call")
	}
}

func TestProcess_QuestionIntentAnswers(t *testing.T) {
	store := seededStore(t)
	svc, completer := newTestQueryService("Food is your top category.", store)

	response, err := svc.Process(context.Background(), "user_1", "Which category is the biggest?")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if response != "Food is your top category." {
		t.Errorf("unexpected response %q", response)
	}
	if completer.lastRequest().MaxTokens != answerMaxTokens {
		t.Error("question intent should use the answering call")
	}
	if store.Len() != 3 {
		t.Errorf("questions must not change the store, got %d records", store.Len())
	}
}

func TestProcess_MisroutedQuestion(t *testing.T) {
	store := seededStore(t)
	// the LLM declines to extract from a question that was routed as an add
	svc, _ := newTestQueryService(`{"error": "Unable to parse expense information"}`, store)

	response, err := svc.Process(context.Background(), "user_1", "What have I spent on food?")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if response != "I couldn't understand the expense details. Please provide the amount, category, and description clearly. For example: 'Add ₹500 in Food category for lunch'" {
		t.Errorf("unexpected response %q", response)
	}
	if store.Len() != 3 {
		t.Errorf("store must not change, got %d records", store.Len())
	}
}

func TestProcess_StorageFailure(t *testing.T) {
	svc, _ := newTestQueryService("irrelevant", failingStore{})

	if _, err := svc.Process(context.Background(), "user_1", "Summary please"); !errors.Is(err, errBackendDown) {
		t.Errorf("expected storage error from question path, got %v", err)
	}

	svc, _ = newTestQueryService(`{"amount": 1, "category": "Food", "description": "x"}`, failingStore{})
	if _, err := svc.Process(context.Background(), "user_1", "paid 1 for x"); !errors.Is(err, errBackendDown) {
		t.Errorf("expected storage error from add path, got %v", err)
	}
}
