package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"schema-designer-backend/internal/models"
)

const projectsTable = "projects"

// projectRecord is a projects row as PostgREST serializes it.
type projectRecord struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Schema       string           `json:"schema"`
	SchemaType   string           `json:"schema_type"`
	Conversation []models.Message `json:"conversation"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toRecord(p *models.Project) projectRecord {
	conversation := p.Conversation
	if conversation == nil {
		conversation = []models.Message{}
	}
	return projectRecord{
		ID:           p.ID,
		Name:         p.Name,
		Schema:       p.Schema,
		SchemaType:   string(p.SchemaType),
		Conversation: conversation,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func (r projectRecord) project() *models.Project {
	p := &models.Project{
		ID:           r.ID,
		Name:         r.Name,
		Schema:       r.Schema,
		SchemaType:   models.SchemaType(r.SchemaType),
		Conversation: r.Conversation,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if p.Conversation == nil {
		p.Conversation = []models.Message{}
	}
	return p
}

// ProjectTable stores projects in the Supabase projects table through PostgREST.
// The table has the same shape as the postgres migration in internal/database.
type ProjectTable struct {
	client *supabase.Client
}

func NewProjectTable(client *supabase.Client) *ProjectTable {
	return &ProjectTable{client: client}
}

func (t *ProjectTable) Name() string { return "supabase" }

func (t *ProjectTable) Ping(ctx context.Context) error {
	if _, _, err := t.client.From(projectsTable).Select("id", "", true).Limit(1, "").Execute(); err != nil {
		return fmt.Errorf("failed to reach projects table: %w", err)
	}
	return nil
}

func (t *ProjectTable) Create(ctx context.Context, p *models.Project) error {
	_, _, err := t.client.From(projectsTable).
		Insert(toRecord(p), false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (t *ProjectTable) Get(ctx context.Context, id string) (*models.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	data, _, err := t.client.From(projectsTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var records []projectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].project(), nil
}

func (t *ProjectTable) Update(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	values := map[string]interface{}{"updated_at": at.UTC()}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.Schema != nil {
		values["schema"] = *patch.Schema
	}

	data, _, err := t.client.From(projectsTable).
		Update(values, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}

	var records []projectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return false, fmt.Errorf("failed to decode updated project: %w", err)
	}
	return len(records) > 0, nil
}
