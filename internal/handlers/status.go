package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"schema-designer-backend/internal/models"
	"schema-designer-backend/internal/store"
)

// Provider describes the configured text-generation provider.
type Provider interface {
	Name() string
	Configured() bool
}

type StatusHandler struct {
	store    *store.Store
	provider Provider
}

func NewStatusHandler(projectStore *store.Store, provider Provider) *StatusHandler {
	return &StatusHandler{
		store:    projectStore,
		provider: provider,
	}
}

// GetStatus godoc
// @Summary     Service status
// @Description Reports whether a text-generation provider is configured and whether the durable database answers.
// @Tags        status
// @Produce     json
// @Success     200 {object} models.StatusResponse
// @Router      /api/status [get]
func (h *StatusHandler) GetStatus(c *gin.Context) {
	response := models.StatusResponse{Status: "ok"}

	if h.provider != nil {
		response.Provider = h.provider.Name()
		response.OpenAI = h.provider.Configured()
	}
	if h.store != nil {
		st := h.store.Status(c.Request.Context())
		response.Backend = st.Backend
		response.Database = st.Reachable
	}

	c.JSON(http.StatusOK, response)
}
