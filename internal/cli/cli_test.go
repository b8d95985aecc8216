package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schema-designer-backend/internal/chat"
	"schema-designer-backend/internal/cli"
	"schema-designer-backend/internal/handlers"
	"schema-designer-backend/internal/llm"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/policy"
	"schema-designer-backend/internal/store"
)

func newServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	projectStore := store.New(nil, store.WithLogger(logger))
	model := llm.NewClient("placeholder", llm.NewPlaceholder(), 0)
	orchestrator := chat.NewOrchestrator(policy.New(policy.DefaultGenerationThreshold), model, time.Minute, logger)

	router := handlers.NewRouter(
		handlers.NewChatHandler(orchestrator, models.SchemaTypeNoSQL),
		handlers.NewProjectsHandler(projectStore, nil, models.SchemaTypeNoSQL, logger),
		handlers.NewStatusHandler(projectStore, model),
		logger,
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

func run(t *testing.T, serverURL, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", serverURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var savedProject = regexp.MustCompile(`saved project (\S+)`)

func TestDesignShowUpdate(t *testing.T) {
	serverURL := newServer(t)

	out, err := run(t, serverURL, "An online shop\nUsers and orders\nOrders have line items\nexit\n",
		"design", "--name", "Shop", "--schema-type", "sql")
	require.NoError(t, err)
	assert.Contains(t, out, "relational database schema")

	m := savedProject.FindStringSubmatch(out)
	require.Len(t, m, 2, "output: %s", out)
	id := m[1]
	assert.Contains(t, out, "project: "+id)

	schema, err := run(t, serverURL, "", "show", id, "--schema")
	require.NoError(t, err)
	assert.Contains(t, schema, "CREATE TABLE")

	schemaFile := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(schemaFile, []byte("CREATE TABLE shops (id INT);"), 0o644))

	out, err = run(t, serverURL, "", "update", id, "--name", "Shop v2", "--schema-file", schemaFile)
	require.NoError(t, err)
	assert.Contains(t, out, "updated project "+id)

	out, err = run(t, serverURL, "", "show", id)
	require.NoError(t, err)

	var p models.ProjectResponse
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Shop v2", p.Name)
	assert.Equal(t, "CREATE TABLE shops (id INT);", p.Schema)
	assert.Equal(t, models.SchemaTypeSQL, p.SchemaType)
	assert.NotEmpty(t, p.Conversation)
}

func TestDesignWithoutSchemaSavesNothing(t *testing.T) {
	serverURL := newServer(t)

	out, err := run(t, serverURL, "A blog\n", "design")
	require.NoError(t, err)

	assert.Contains(t, out, "MongoDB database schema")
	assert.NotContains(t, out, "saved project")
	assert.NotContains(t, out, "project:")
}

func TestDesignRejectsUnknownSchemaType(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1", "", "design", "--schema-type", "graph")
	assert.ErrorIs(t, err, models.ErrInvalidSchemaType)
}

func TestShowMissingProject(t *testing.T) {
	serverURL := newServer(t)

	_, err := run(t, serverURL, "", "show", "does-not-exist")
	assert.Error(t, err)
}

func TestUpdateRequiresAField(t *testing.T) {
	serverURL := newServer(t)

	_, err := run(t, serverURL, "", "update", "some-id")
	assert.ErrorContains(t, err, "nothing to update")
}

func TestStatus(t *testing.T) {
	serverURL := newServer(t)

	out, err := run(t, serverURL, "", "status")
	require.NoError(t, err)

	assert.Contains(t, out, "provider: placeholder (configured: true)")
	assert.Contains(t, out, "backend:  memory (reachable: false)")
}
