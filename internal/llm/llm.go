// Package llm defines the chat-completion contract the assistant depends on
// and its provider implementations.
package llm

import (
	"context"
	"errors"
	"fmt"

	"finance-assistant/pkg/config"

	"go.uber.org/zap"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single completion call. MaxTokens <= 0 leaves the
// provider default in place.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ChatCompleter returns the text of one completion for req.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

var ErrEmptyCompletion = errors.New("no response from LLM")

// New builds the completer selected by cfg.Provider. The returned close
// func releases provider resources.
func New(cfg *config.LLMConfig, logger *zap.Logger) (ChatCompleter, func(), error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		if cfg.Groq.APIKey == "" {
			logger.Warn("GROQ_API_KEY is empty, completions will fail")
		}
		return NewGroqClient(&cfg.Groq, logger), func() {}, nil
	case config.ProviderGigaChat:
		client, err := NewGigaChatClient(&cfg.GigaChat, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// DisplayName is the human-readable provider label.
func DisplayName(provider string) string {
	switch provider {
	case config.ProviderGroq:
		return "Groq"
	case config.ProviderGigaChat:
		return "GigaChat"
	default:
		return provider
	}
}
