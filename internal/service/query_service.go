package service

import (
	"context"

	"go.uber.org/zap"
)

// QueryService is the natural-language entry point: it classifies a query
// and hands it to the extractor or the assistant.
type QueryService struct {
	extractor *ExpenseExtractor
	assistant *AssistantService
	logger    *zap.Logger
}

func NewQueryService(extractor *ExpenseExtractor, assistant *AssistantService, logger *zap.Logger) *QueryService {
	return &QueryService{
		extractor: extractor,
		assistant: assistant,
		logger:    logger,
	}
}

func (s *QueryService) Process(ctx context.Context, userID, query string) (string, error) {
	intent := Classify(query)
	s.logger.Debug("Query classified",
		zap.String("user_id", userID),
		zap.Stringer("intent", intent),
	)

	if intent == IntentAddExpense {
		result, err := s.extractor.Extract(ctx, userID, query)
		if err != nil {
			return "", err
		}
		return result.Message, nil
	}

	return s.assistant.Respond(ctx, userID, query)
}
