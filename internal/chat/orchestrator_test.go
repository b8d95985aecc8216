package chat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schema-designer-backend/internal/chat"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/policy"
)

type stubCompleter struct {
	system  string
	history []models.Message
	reply   string
	err     error
	wait    bool
}

func (s *stubCompleter) Complete(ctx context.Context, system string, history []models.Message) (string, error) {
	s.system = system
	s.history = history
	if s.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func userTurns(n int) []models.Message {
	var history []models.Message
	for i := 0; i < n; i++ {
		history = append(history,
			models.Message{Role: models.RoleUser, Content: "answer"},
			models.Message{Role: models.RoleAssistant, Content: "question"},
		)
	}
	return history[:len(history)-1]
}

func TestReply_PicksInstructionByTurnCount(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	o := chat.NewOrchestrator(policy.New(3), stub, time.Minute, quietLogger())

	_, err := o.Reply(context.Background(), userTurns(2), models.SchemaTypeNoSQL)
	require.NoError(t, err)
	assert.Equal(t, policy.InstructionFor(policy.ModeClarify, models.SchemaTypeNoSQL), stub.system)

	_, err = o.Reply(context.Background(), userTurns(3), models.SchemaTypeSQL)
	require.NoError(t, err)
	assert.Equal(t, policy.InstructionFor(policy.ModeGenerate, models.SchemaTypeSQL), stub.system)
}

func TestReply_PassesHistoryVerbatim(t *testing.T) {
	stub := &stubCompleter{reply: "What collections do you need?"}
	o := chat.NewOrchestrator(policy.New(3), stub, 0, quietLogger())

	history := []models.Message{
		{Role: models.RoleAssistant, Content: "Hi! What's the main purpose of your database?"},
		{Role: models.RoleUser, Content: "A recipe app"},
	}
	out, err := o.Reply(context.Background(), history, models.SchemaTypeNoSQL)
	require.NoError(t, err)
	assert.Equal(t, "What collections do you need?", out)
	assert.Equal(t, history, stub.history)
}

func TestReply_ProviderFailureIsGeneric(t *testing.T) {
	stub := &stubCompleter{err: errors.New("401 invalid api key sk-secret")}
	o := chat.NewOrchestrator(policy.New(3), stub, 0, quietLogger())

	_, err := o.Reply(context.Background(), userTurns(1), models.SchemaTypeNoSQL)
	require.ErrorIs(t, err, chat.ErrGeneration)
	assert.Equal(t, "An error occurred while generating the response.", err.Error())
	assert.NotContains(t, err.Error(), "sk-secret")
}

func TestReply_Timeout(t *testing.T) {
	stub := &stubCompleter{wait: true}
	o := chat.NewOrchestrator(policy.New(3), stub, 10*time.Millisecond, quietLogger())

	_, err := o.Reply(context.Background(), userTurns(1), models.SchemaTypeNoSQL)
	assert.ErrorIs(t, err, chat.ErrGeneration)
}

func TestReply_InvalidHistory(t *testing.T) {
	stub := &stubCompleter{reply: "unused"}
	o := chat.NewOrchestrator(policy.New(3), stub, 0, quietLogger())

	_, err := o.Reply(context.Background(), nil, models.SchemaTypeNoSQL)
	assert.ErrorIs(t, err, chat.ErrEmptyHistory)

	_, err = o.Reply(context.Background(), []models.Message{{Role: "tool", Content: "x"}}, models.SchemaTypeNoSQL)
	assert.ErrorIs(t, err, chat.ErrInvalidRole)
	assert.Nil(t, stub.history, "completer must not be called for invalid input")
}
