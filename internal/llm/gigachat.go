package llm

import (
	"context"
	"fmt"
	"strings"

	"finance-assistant/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChatClient adapts gigago to ChatCompleter. System messages become the
// model's system instruction; the token cap is left to the provider.
type GigaChatClient struct {
	client *gigago.Client
	logger *zap.Logger
}

func NewGigaChatClient(cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	return &GigaChatClient{client: client, logger: logger}, nil
}

func (c *GigaChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	// per-call settings live on the model
	model := c.client.GenerativeModel(req.Model)
	model.Temperature = req.Temperature

	var system []string
	var messages []gigago.Message
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleUser:
			messages = append(messages, gigago.Message{Role: gigago.RoleUser, Content: m.Content})
		default:
			return "", fmt.Errorf("unsupported message role for GigaChat: %s", m.Role)
		}
	}
	model.SystemInstruction = strings.Join(system, "\n\n")

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *GigaChatClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
