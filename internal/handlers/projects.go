package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/store"
)

// SchemaArchiver mirrors a project's schema to external storage.
type SchemaArchiver interface {
	Put(p *models.Project) (string, string, error)
}

type ProjectsHandler struct {
	store             *store.Store
	archive           SchemaArchiver
	defaultSchemaType models.SchemaType
	logger            *slog.Logger
}

// NewProjectsHandler builds the projects API. archive may be nil.
func NewProjectsHandler(projectStore *store.Store, archive SchemaArchiver, defaultSchemaType models.SchemaType, logger *slog.Logger) *ProjectsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectsHandler{
		store:             projectStore,
		archive:           archive,
		defaultSchemaType: defaultSchemaType,
		logger:            logger,
	}
}

// mirror copies the schema to the archive. Failures are logged only.
func (h *ProjectsHandler) mirror(p *models.Project) {
	if h.archive == nil {
		return
	}
	path, _, err := h.archive.Put(p)
	if err != nil {
		h.logger.Warn("failed to archive schema", "project_id", p.ID, "error", err)
		return
	}
	h.logger.Debug("archived schema", "project_id", p.ID, "path", path)
}

// CreateProject godoc
// @Summary     Create a project
// @Description Stores a finished schema together with the conversation that produced it.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     201 {object} models.CreateProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "project store not available"})
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Schema) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "schema is required"})
		return
	}

	schemaType := h.defaultSchemaType
	if req.SchemaType != "" {
		parsed, err := models.ParseSchemaType(req.SchemaType)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid schema type", Message: err.Error()})
			return
		}
		schemaType = parsed
	}

	if err := models.ValidateTranscript(req.Conversation); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid conversation", Message: err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultProjectName
	}

	project := &models.Project{
		Name:         name,
		Schema:       req.Schema,
		SchemaType:   schemaType,
		Conversation: req.Conversation,
	}
	source, err := h.store.Create(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	h.mirror(project)

	c.JSON(http.StatusCreated, models.CreateProjectResponse{
		ID:     project.ID,
		Source: string(source),
	})
}

// GetProject godoc
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} models.ProjectResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	project, source, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ProjectResponse{Project: *project, Source: string(source)})
}

// UpdateProject godoc
// @Summary     Update a project
// @Description Changes the name and/or schema text. Omitted fields are left unchanged.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       id      path string                       true "Project ID"
// @Param       request body models.UpdateProjectRequest true "Fields to change"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id} [put]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "project store not available"})
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	patch := req.Patch()
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "nothing to update", Message: "provide name and/or schema"})
		return
	}

	id := c.Param("id")
	found, _, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update project",
			Message: err.Error(),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	project, source, ok := h.load(c)
	if !ok {
		return
	}
	if patch.Schema != nil {
		h.mirror(project)
	}
	c.JSON(http.StatusOK, models.ProjectResponse{Project: *project, Source: string(source)})
}

// DownloadSchema godoc
// @Summary     Download a project's schema
// @Description Returns the schema text as schema.json or schema.sql.
// @Tags        projects
// @Produce     json,plain
// @Param       id path string true "Project ID"
// @Success     200 {string} string "schema file"
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id}/schema [get]
func (h *ProjectsHandler) DownloadSchema(c *gin.Context) {
	project, _, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.SchemaType.Filename()))
	c.Data(http.StatusOK, project.SchemaType.ContentType(), []byte(project.Schema))
}

// load fetches the project named by the id path parameter, writing the error response itself.
func (h *ProjectsHandler) load(c *gin.Context) (*models.Project, store.Source, bool) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "project store not available"})
		return nil, "", false
	}

	project, source, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get project",
			Message: err.Error(),
		})
		return nil, "", false
	}
	if project == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return nil, "", false
	}
	return project, source, true
}
