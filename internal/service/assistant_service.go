package service

import (
	"context"
	"fmt"

	"finance-assistant/internal/llm"
	"finance-assistant/internal/repository"

	"go.uber.org/zap"
)

const (
	answerTemperature = 0.7
	answerMaxTokens   = 1024

	msgAnswerFailedFmt = "Sorry, I encountered an error: %v"
)

// AssistantService answers questions about a user's expenses using their
// full history as prompt context.
type AssistantService struct {
	store     repository.ExpenseStore
	completer llm.ChatCompleter
	formatter *ContextFormatter
	opts      Options
	logger    *zap.Logger
}

func NewAssistantService(store repository.ExpenseStore, completer llm.ChatCompleter, opts Options, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		store:     store,
		completer: completer,
		formatter: NewContextFormatter(opts.CurrencySymbol),
		opts:      opts,
		logger:    logger,
	}
}

// BuildSystemPrompt embeds the formatted history and its statistics.
func (s *AssistantService) BuildSystemPrompt(expenseContext string, stats Stats) string {
	return fmt.Sprintf(`You are a helpful personal finance assistant. You help users understand and manage their expenses.

Current expense data:
%s

Statistics:
- Total expenses: %s%.2f
- Number of transactions: %d
- Category breakdown: %s

When answering:
1. Be conversational and friendly
2. Use the provided expense data to give accurate answers
3. Format numbers with the %s currency symbol
4. If asked about specific time periods, filter the data accordingly
5. Provide insights and recommendations when appropriate
6. Keep responses concise and helpful`,
		expenseContext,
		s.opts.CurrencySymbol, stats.Total,
		stats.Count,
		s.formatter.FormatCategoryBreakdown(stats.CategoryTotals),
		s.opts.CurrencySymbol,
	)
}

// Respond returns the LLM's answer to query. LLM failures become an apology
// in the returned text; only storage failures are returned as errors.
func (s *AssistantService) Respond(ctx context.Context, userID, query string) (string, error) {
	expenses, err := s.store.Query(ctx, userID, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load expenses: %w", err)
	}

	stats := s.formatter.Summarize(expenses)
	systemPrompt := s.BuildSystemPrompt(s.formatter.FormatExpenses(expenses), stats)

	answer, err := s.completer.Complete(ctx, llm.ChatRequest{
		Model: s.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: query},
		},
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		s.logger.Warn("Assistant completion failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Sprintf(msgAnswerFailedFmt, err), nil
	}

	s.logger.Info("Question answered",
		zap.String("user_id", userID),
		zap.Int("transactions", stats.Count),
	)
	return answer, nil
}
