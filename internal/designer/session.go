// Package designer runs the client side of a design conversation: it keeps the transcript,
// asks for each reply, pulls the schema out of replies and files it as a project.
package designer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"schema-designer-backend/internal/extract"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/policy"
)

var ErrEmptyMessage = errors.New("message is empty")

// Replier produces the assistant's next message. chat.Orchestrator and client.Client satisfy it.
type Replier interface {
	Reply(ctx context.Context, history []models.Message, schemaType models.SchemaType) (string, error)
}

// ProjectSink persists finished designs.
type ProjectSink interface {
	CreateProject(ctx context.Context, p *models.Project) (string, error)
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) error
}

// Turn is the outcome of one user message.
type Turn struct {
	Reply string
	// Extracted is false when the reply carried no usable schema block. This is not an error.
	Extracted bool
	Schema    string
	// EmptySchema is set when the reply opened a schema block but left it empty.
	EmptySchema bool
	ProjectID   string
	Created     bool
	Updated     bool
}

// WelcomeMessage opens every session.
func WelcomeMessage(schemaType models.SchemaType) string {
	if schemaType == models.SchemaTypeSQL {
		return "Hi there! I'll help you design your relational database schema. Let's start with some basic information. What's the main purpose of your database? (e.g., e-commerce, blog, inventory management)"
	}
	return "Hi there! I'll help you design your MongoDB database schema. Let's start with some basic information. What's the main purpose of your database? (e.g., e-commerce, blog, inventory management)"
}

type Session struct {
	mu         sync.Mutex
	replier    Replier
	sink       ProjectSink
	schemaType models.SchemaType
	name       string
	transcript []models.Message
	projectID  string
	schema     string
}

func NewSession(replier Replier, sink ProjectSink, schemaType models.SchemaType, name string) *Session {
	if !schemaType.Valid() {
		schemaType = models.SchemaTypeNoSQL
	}
	if strings.TrimSpace(name) == "" {
		name = models.DefaultProjectName
	}
	return &Session{
		replier:    replier,
		sink:       sink,
		schemaType: schemaType,
		name:       name,
		transcript: []models.Message{
			{ID: "welcome", Role: models.RoleAssistant, Content: WelcomeMessage(schemaType)},
		},
	}
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

func (s *Session) SchemaType() models.SchemaType { return s.schemaType }

// Send appends text as a user turn, gets the reply and files any schema it contains.
// A reply error leaves the user turn in the transcript.
func (s *Session) Send(ctx context.Context, text string) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, models.Message{Role: models.RoleUser, Content: text})

	history := make([]models.Message, len(s.transcript))
	copy(history, s.transcript)
	reply, err := s.replier.Reply(ctx, history, s.schemaType)
	if err != nil {
		return nil, err
	}
	s.transcript = append(s.transcript, models.Message{Role: models.RoleAssistant, Content: reply})

	turn := &Turn{Reply: reply, ProjectID: s.projectID}

	tag := policy.FenceTag(s.schemaType)
	schema, ok := extract.Schema(reply, tag)
	if !ok {
		turn.EmptySchema = extract.HasFence(reply, tag)
		return turn, nil
	}
	turn.Extracted = true
	turn.Schema = schema

	if s.projectID == "" {
		conversation := make([]models.Message, len(s.transcript))
		copy(conversation, s.transcript)
		id, err := s.sink.CreateProject(ctx, &models.Project{
			Name:         s.name,
			Schema:       schema,
			SchemaType:   s.schemaType,
			Conversation: conversation,
		})
		if err != nil {
			return turn, fmt.Errorf("failed to create project: %w", err)
		}
		s.projectID = id
		s.schema = schema
		turn.ProjectID = id
		turn.Created = true
		return turn, nil
	}

	if schema != s.schema {
		if err := s.sink.UpdateProject(ctx, s.projectID, models.ProjectPatch{Schema: &schema}); err != nil {
			return turn, fmt.Errorf("failed to update project %s: %w", s.projectID, err)
		}
		s.schema = schema
		turn.Updated = true
	}
	return turn, nil
}
