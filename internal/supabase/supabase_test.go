package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schema-designer-backend/internal/config"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/supabase"
)

// fakePostgREST serves the subset of the PostgREST API the project table uses.
type fakePostgREST struct {
	mu   sync.Mutex
	rows map[string]map[string]any
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path != "/rest/v1/projects" {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"code": "42P01", "message": "relation does not exist"})
		return
	}
	id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		var row map[string]any
		json.NewDecoder(r.Body).Decode(&row)
		rowID, _ := row["id"].(string)
		if _, exists := f.rows[rowID]; exists {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"code": "23505", "message": "duplicate key value"})
			return
		}
		f.rows[rowID] = row
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		out := []map[string]any{}
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
		json.NewEncoder(w).Encode(out)
	case http.MethodPatch:
		var values map[string]any
		json.NewDecoder(r.Body).Decode(&values)
		out := []map[string]any{}
		if row, ok := f.rows[id]; ok {
			for k, v := range values {
				row[k] = v
			}
			out = append(out, row)
		}
		json.NewEncoder(w).Encode(out)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTable(t *testing.T) *supabase.ProjectTable {
	t.Helper()
	server := httptest.NewServer(&fakePostgREST{rows: make(map[string]map[string]any)})
	t.Cleanup(server.Close)

	client, err := supabase.NewClient(&config.Config{SupabaseURL: server.URL + "/", SupabaseKey: "service-role-key"})
	require.NoError(t, err)
	return client.Projects()
}

func strPtr(s string) *string { return &s }

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := supabase.NewClient(&config.Config{})
	assert.Error(t, err)
}

func TestProjectTable_RoundTrip(t *testing.T) {
	ctx := context.Background()
	table := newTable(t)

	assert.Equal(t, "supabase", table.Name())
	require.NoError(t, table.Ping(ctx))

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	p := &models.Project{
		ID:         uuid.New().String(),
		Name:       "Inventory",
		Schema:     `{"items":{"sku":"string"}}`,
		SchemaType: models.SchemaTypeNoSQL,
		Conversation: []models.Message{
			{Role: models.RoleUser, Content: "Warehouse inventory"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, table.Create(ctx, p))
	assert.Error(t, table.Create(ctx, p))

	got, err := table.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	found, err := table.Update(ctx, p.ID, models.ProjectPatch{Name: strPtr("Inventory v2")}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, found)

	got, err = table.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inventory v2", got.Name)
	assert.Equal(t, p.Schema, got.Schema)
	assert.Equal(t, now.Add(time.Minute), got.UpdatedAt)
}

func TestProjectTable_Missing(t *testing.T) {
	ctx := context.Background()
	table := newTable(t)

	got, err := table.Get(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = table.Get(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)

	found, err := table.Update(ctx, uuid.New().String(), models.ProjectPatch{Name: strPtr("x")}, time.Now())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProjectTable_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := supabase.NewClient(&config.Config{SupabaseURL: server.URL, SupabaseKey: "k"})
	require.NoError(t, err)
	table := client.Projects()

	assert.Error(t, table.Ping(context.Background()))
	_, err = table.Get(context.Background(), uuid.New().String())
	assert.Error(t, err)
}

func TestSchemaPath(t *testing.T) {
	nosql := &models.Project{ID: "abc", SchemaType: models.SchemaTypeNoSQL}
	sql := &models.Project{ID: "abc", SchemaType: models.SchemaTypeSQL}

	assert.Equal(t, "projects/abc/schema.json", supabase.SchemaPath(nosql))
	assert.Equal(t, "projects/abc/schema.sql", supabase.SchemaPath(sql))
}

func TestSchemaArchive_PublicURL(t *testing.T) {
	archive := supabase.NewSchemaArchive("https://demo.supabase.co/", "key", "schemas")

	assert.Equal(t,
		"https://demo.supabase.co/storage/v1/object/public/schemas/projects/abc/schema.json",
		archive.PublicURL("projects/abc/schema.json"))
}
