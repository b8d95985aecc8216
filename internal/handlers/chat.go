package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"schema-designer-backend/internal/chat"
	"schema-designer-backend/internal/models"
)

// Replier produces the assistant's next message for a transcript.
type Replier interface {
	Reply(ctx context.Context, history []models.Message, schemaType models.SchemaType) (string, error)
}

type ChatHandler struct {
	replier           Replier
	defaultSchemaType models.SchemaType
}

func NewChatHandler(replier Replier, defaultSchemaType models.SchemaType) *ChatHandler {
	return &ChatHandler{
		replier:           replier,
		defaultSchemaType: defaultSchemaType,
	}
}

// Chat godoc
// @Summary     Next assistant reply
// @Description Sends the full transcript and returns the assistant's next message. Clarifying questions are asked until the configured number of user turns, after which a complete schema is generated in a fenced code block. The reply is plain text unless the client accepts application/json.
// @Tags        chat
// @Accept      json
// @Produce     plain,json
// @Param       request body models.ChatRequest true "Conversation so far"
// @Success     200 {object} models.ChatResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.replier == nil {
		respondChat(c, http.StatusInternalServerError, chat.ErrGeneration.Error())
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondChat(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	schemaType := h.defaultSchemaType
	if req.SchemaType != "" {
		parsed, err := models.ParseSchemaType(req.SchemaType)
		if err != nil {
			respondChat(c, http.StatusBadRequest, err.Error())
			return
		}
		schemaType = parsed
	}

	content, err := h.replier.Reply(c.Request.Context(), req.Messages, schemaType)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyHistory) || errors.Is(err, chat.ErrInvalidRole) {
			respondChat(c, http.StatusBadRequest, err.Error())
			return
		}
		respondChat(c, http.StatusInternalServerError, chat.ErrGeneration.Error())
		return
	}

	respondChat(c, http.StatusOK, content)
}

// respondChat writes plain text unless the client prefers JSON.
func respondChat(c *gin.Context, status int, content string) {
	if c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) == gin.MIMEJSON {
		if status >= http.StatusBadRequest {
			c.JSON(status, models.ErrorResponse{Error: content})
			return
		}
		c.JSON(status, models.ChatResponse{Content: content})
		return
	}
	c.String(status, content)
}
