// Package llm adapts text-generation providers to the design conversation.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"schema-designer-backend/internal/models"
)

// ErrNotConfigured is returned by clients whose provider could not be set up.
var ErrNotConfigured = errors.New("text generation provider is not configured")

// Generator is the part of a langchaingo model the client needs.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type Client struct {
	provider    string
	generator   Generator
	temperature float64
	err         error
}

func NewClient(provider string, generator Generator, temperature float64) *Client {
	return &Client{provider: provider, generator: generator, temperature: temperature}
}

// Unavailable returns a client that fails every completion with ErrNotConfigured.
// Status endpoints still report the provider name.
func Unavailable(provider string, err error) *Client {
	return &Client{provider: provider, err: err}
}

func (c *Client) Name() string { return c.provider }

func (c *Client) Configured() bool { return c.generator != nil && c.err == nil }

// Complete sends system followed by history, in order, and returns the model's reply.
func (c *Client) Complete(ctx context.Context, system string, history []models.Message) (string, error) {
	if !c.Configured() {
		if c.err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotConfigured, c.err)
		}
		return "", ErrNotConfigured
	}

	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, system))
	for _, m := range history {
		messages = append(messages, llms.TextParts(messageType(m.Role), m.Content))
	}

	resp, err := c.generator.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}
	return resp.Choices[0].Content, nil
}

func messageType(role models.Role) schema.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return schema.ChatMessageTypeSystem
	case models.RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}
