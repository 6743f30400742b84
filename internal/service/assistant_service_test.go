package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-assistant/internal/llm"
	"finance-assistant/internal/models"
	"finance-assistant/internal/repository"

	"go.uber.org/zap"
)

func seededStore(t *testing.T) *repository.MemoryExpenseRepository {
	t.Helper()
	store := repository.NewMemoryExpenseRepository(testOptions().Now)
	records := []models.Expense{
		{UserID: "user_1", Amount: 500, Category: "Food", Description: "lunch", Date: "2026-10-10T13:00:00.000000Z"},
		{UserID: "user_1", Amount: 200, Category: "Transport", Description: "cab", Date: "2025-01-02T08:00:00.000000Z"},
		{UserID: "someone_else", Amount: 9999, Category: "Bills", Description: "rent", Date: "2026-10-01"},
	}
	for i := range records {
		if err := store.Insert(context.Background(), &records[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return store
}

func TestRespond_BuildsGroundedPrompt(t *testing.T) {
	completer := &fakeCompleter{reply: "You spent ₹500.00 on food."}
	assistant := NewAssistantService(seededStore(t), completer, testOptions(), zap.NewNop())

	answer, err := assistant.Respond(context.Background(), "user_1", "How much on food?")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if answer != "You spent ₹500.00 on food." {
		t.Errorf("answer should be returned verbatim, got %q", answer)
	}

	req := completer.lastRequest()
	if req.Temperature != 0.7 || req.MaxTokens != 1024 {
		t.Errorf("unexpected sampling parameters %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem || req.Messages[1].Role != llm.RoleUser {
		t.Fatalf("expected system + user messages, got %+v", req.Messages)
	}
	if req.Messages[1].Content != "How much on food?" {
		t.Errorf("raw query should be forwarded, got %q", req.Messages[1].Content)
	}

	prompt := req.Messages[0].Content
	for _, want := range []string{
		"- Date: 2026-10-10, Category: Food, Amount: ₹500, Description: lunch",
		"- Date: 2025-01-02, Category: Transport, Amount: ₹200, Description: cab",
		"- Total expenses: ₹700.00",
		"- Number of transactions: 2",
		"- Category breakdown: Food: ₹500.00, Transport: ₹200.00",
		"Be conversational and friendly",
		"Keep responses concise and helpful",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "rent") {
		t.Error("system prompt leaked another user's expenses")
	}
}

func TestRespond_NoExpenses(t *testing.T) {
	completer := &fakeCompleter{reply: "You have no expenses yet."}
	store := repository.NewMemoryExpenseRepository(nil)
	assistant := NewAssistantService(store, completer, testOptions(), zap.NewNop())

	if _, err := assistant.Respond(context.Background(), "nobody", "Summary?"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	prompt := completer.lastRequest().Messages[0].Content
	for _, want := range []string{"No expenses found.", "- Total expenses: ₹0.00", "- Number of transactions: 0", "- Category breakdown: none"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestRespond_LLMFailureIsAbsorbed(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("timeout")}
	assistant := NewAssistantService(seededStore(t), completer, testOptions(), zap.NewNop())

	answer, err := assistant.Respond(context.Background(), "user_1", "Summary?")
	if err != nil {
		t.Fatalf("LLM failure must not surface as an error, got %v", err)
	}
	if answer != "Sorry, I encountered an error: timeout" {
		t.Errorf("unexpected apology %q", answer)
	}
}

func TestRespond_StorageFailurePropagates(t *testing.T) {
	completer := &fakeCompleter{reply: "unused"}
	assistant := NewAssistantService(failingStore{}, completer, testOptions(), zap.NewNop())

	if _, err := assistant.Respond(context.Background(), "user_1", "Summary?"); !errors.Is(err, errBackendDown) {
		t.Errorf("expected wrapped backend error, got %v", err)
	}
	if len(completer.requests) != 0 {
		t.Error("LLM must not be called when history cannot be loaded")
	}
}
