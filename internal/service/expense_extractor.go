package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"finance-assistant/internal/llm"
	"finance-assistant/internal/models"
	"finance-assistant/internal/repository"

	"go.uber.org/zap"
)

const (
	extractionTemperature = 0.3
	extractionMaxTokens   = 256

	msgUnparseable  = "I couldn't parse the expense information. Please try again with clear details."
	msgIncomplete   = "I couldn't extract all the necessary information. Please provide amount, category, and description."
	msgClarifyFmt   = "I couldn't understand the expense details. Please provide the amount, category, and description clearly. For example: 'Add %s500 in Food category for lunch'"
	msgAddedFmt     = "✅ Successfully added expense: %s%.2f in %s category for '%s'"
	msgLLMFailedFmt = "Error processing expense: %v"
)

type ExtractionStatus string

const (
	ExtractionAdded              ExtractionStatus = "added"
	ExtractionUnparseable        ExtractionStatus = "unparseable"
	ExtractionNeedsClarification ExtractionStatus = "needs_clarification"
	ExtractionIncomplete         ExtractionStatus = "incomplete"
	ExtractionLLMFailed          ExtractionStatus = "llm_failed"
)

// ExtractionResult is the outcome of an add-expense query. Message is always
// suitable for the end user; Expense is set only when Status is ExtractionAdded.
type ExtractionResult struct {
	Status  ExtractionStatus
	Message string
	Expense *models.Expense
}

// Options are shared by the LLM-backed services.
type Options struct {
	Model          string
	CurrencySymbol string
	Now            func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

type ExpenseExtractor struct {
	store     repository.ExpenseStore
	completer llm.ChatCompleter
	opts      Options
	logger    *zap.Logger
}

func NewExpenseExtractor(store repository.ExpenseStore, completer llm.ChatCompleter, opts Options, logger *zap.Logger) *ExpenseExtractor {
	return &ExpenseExtractor{
		store:     store,
		completer: completer,
		opts:      opts,
		logger:    logger,
	}
}

func buildExtractionInstruction() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}

	return `You are a financial assistant that extracts expense information from natural language.

Extract the following information from the user's message:
- amount (as a number, remove currency symbols)
- category (must be one of: ` + strings.Join(names, ", ") + `)
- description (brief description of the expense)

Respond ONLY with a valid JSON object in this exact format:
{"amount": <number>, "category": "<category>", "description": "<description>"}

If you cannot extract the information, respond with:
{"error": "Unable to parse expense information"}

Examples:
User: "Add 500 rupees in food category for lunch"
Response: {"amount": 500, "category": "Food", "description": "lunch"}

User: "I spent 200 on transport"
Response: {"amount": 200, "category": "Transport", "description": "transport expense"}`
}

// Extract asks the LLM to structure query and stores the expense when the
// answer is complete. Only storage failures are returned as errors.
func (e *ExpenseExtractor) Extract(ctx context.Context, userID, query string) (*ExtractionResult, error) {
	text, err := e.completer.Complete(ctx, llm.ChatRequest{
		Model: e.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: buildExtractionInstruction()},
			{Role: llm.RoleUser, Content: query},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		e.logger.Warn("Expense extraction call failed", zap.String("user_id", userID), zap.Error(err))
		return &ExtractionResult{Status: ExtractionLLMFailed, Message: fmt.Sprintf(msgLLMFailedFmt, err)}, nil
	}

	fields, ok := decodeObject(text)
	if !ok {
		e.logger.Info("Expense extraction returned non-JSON", zap.String("response", text))
		return &ExtractionResult{Status: ExtractionUnparseable, Message: msgUnparseable}, nil
	}

	if _, hasError := fields["error"]; hasError {
		return &ExtractionResult{
			Status:  ExtractionNeedsClarification,
			Message: fmt.Sprintf(msgClarifyFmt, e.opts.CurrencySymbol),
		}, nil
	}

	amount, amountOK := parseAmount(fields["amount"])
	category, categoryOK := nonEmptyString(fields["category"])
	description, descriptionOK := nonEmptyString(fields["description"])
	if !amountOK || !categoryOK || !descriptionOK {
		e.logger.Info("Expense extraction incomplete",
			zap.Bool("amount", amountOK),
			zap.Bool("category", categoryOK),
			zap.Bool("description", descriptionOK),
		)
		return &ExtractionResult{Status: ExtractionIncomplete, Message: msgIncomplete}, nil
	}

	canonical, known := models.ParseCategory(category)
	if !known {
		e.logger.Info("Unknown category from LLM, using Other", zap.String("category", category))
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    string(canonical),
		Description: sanitizeUTF8(description),
		Date:        models.FormatTimestamp(e.opts.now()),
	}
	if err := e.store.Insert(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to store extracted expense: %w", err)
	}

	e.logger.Info("Expense extracted and stored",
		zap.String("user_id", userID),
		zap.Float64("amount", expense.Amount),
		zap.String("category", expense.Category),
	)

	return &ExtractionResult{
		Status:  ExtractionAdded,
		Message: fmt.Sprintf(msgAddedFmt, e.opts.CurrencySymbol, expense.Amount, expense.Category, expense.Description),
		Expense: expense,
	}, nil
}

// decodeObject parses text as a single JSON object.
func decodeObject(text string) (map[string]any, bool) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(stripCodeFence(text))))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	if decoder.More() {
		return nil, false
	}
	return fields, true
}

// parseAmount accepts a positive JSON number or numeric string.
func parseAmount(v any) (float64, bool) {
	var amount float64
	switch value := v.(type) {
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		amount = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		amount = f
	default:
		return 0, false
	}
	return amount, amount > 0 && !math.IsInf(amount, 1)
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}
