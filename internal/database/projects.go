package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"schema-designer-backend/internal/models"
)

type projectRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Schema       string    `db:"schema"`
	SchemaType   string    `db:"schema_type"`
	Conversation string    `db:"conversation"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const projectColumns = `id, name, "schema", schema_type, conversation, created_at, updated_at`

func toRow(p *models.Project) (projectRow, error) {
	conversation := p.Conversation
	if conversation == nil {
		conversation = []models.Message{}
	}
	raw, err := json.Marshal(conversation)
	if err != nil {
		return projectRow{}, fmt.Errorf("failed to encode conversation: %w", err)
	}
	return projectRow{
		ID:           p.ID,
		Name:         p.Name,
		Schema:       p.Schema,
		SchemaType:   string(p.SchemaType),
		Conversation: string(raw),
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}, nil
}

func (r projectRow) project() (*models.Project, error) {
	p := &models.Project{
		ID:         r.ID,
		Name:       r.Name,
		Schema:     r.Schema,
		SchemaType: models.SchemaType(r.SchemaType),
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(r.Conversation), &p.Conversation); err != nil {
		return nil, fmt.Errorf("failed to decode conversation of project %s: %w", r.ID, err)
	}
	if p.Conversation == nil {
		p.Conversation = []models.Message{}
	}
	return p, nil
}

// ProjectRepository is the projects table in Postgres or SQLite.
type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Name() string { return r.db.DriverName() }

func (r *ProjectRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	row, err := toRow(p)
	if err != nil {
		return err
	}

	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (:id, :name, :schema, :schema_type, :conversation, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// validID reports whether id can name a row. Postgres rejects non-UUID text for a UUID column.
func (r *ProjectRepository) validID(id string) bool {
	if r.db.DriverName() != DriverPostgres {
		return id != ""
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	if !r.validID(id) {
		return nil, nil
	}

	var row projectRow
	query := r.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return row.project()
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) (bool, error) {
	if !r.validID(id) {
		return false, nil
	}

	sets := []string{"updated_at = ?"}
	args := []any{at.UTC()}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Schema != nil {
		sets = append(sets, `"schema" = ?`)
		args = append(args, *patch.Schema)
	}
	args = append(args, id)

	query := r.db.Rebind(`UPDATE projects SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
