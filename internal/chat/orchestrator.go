// Package chat turns a transcript into the assistant's next reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/policy"
)

var (
	// ErrGeneration is the only failure callers see when the model call fails.
	ErrGeneration   = errors.New("An error occurred while generating the response.")
	ErrEmptyHistory = errors.New("messages must contain at least one message")
	ErrInvalidRole  = errors.New("invalid message role")
)

// Completer sends a system instruction and a transcript to a text-generation model.
type Completer interface {
	Complete(ctx context.Context, system string, history []models.Message) (string, error)
}

type Orchestrator struct {
	policy    policy.Policy
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// NewOrchestrator bounds every model call by timeout; zero means no bound beyond ctx.
func NewOrchestrator(p policy.Policy, completer Completer, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{policy: p, completer: completer, timeout: timeout, logger: logger}
}

// Reply returns the assistant's next message for history.
func (o *Orchestrator) Reply(ctx context.Context, history []models.Message, schemaType models.SchemaType) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}
	if err := models.ValidateTranscript(history); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	if !schemaType.Valid() {
		schemaType = models.SchemaTypeNoSQL
	}

	mode := o.policy.Mode(history)
	instruction := policy.InstructionFor(mode, schemaType)

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := o.completer.Complete(ctx, instruction, history)
	if err != nil {
		o.logger.Error("error calling text generation provider",
			"mode", mode.String(), "schema_type", schemaType, "messages", len(history), "error", err)
		return "", ErrGeneration
	}

	o.logger.Debug("generated reply",
		"mode", mode.String(), "schema_type", schemaType, "messages", len(history),
		"duration", time.Since(start))
	return content, nil
}
