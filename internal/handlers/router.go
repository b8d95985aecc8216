package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"schema-designer-backend/internal/middleware"
)

// NewRouter registers every API route on a new engine.
func NewRouter(chatHandler *ChatHandler, projectsHandler *ProjectsHandler, statusHandler *StatusHandler, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	router.GET("/health", HealthHandler)

	api := router.Group("/api")

	api.POST("/chat", chatHandler.Chat)
	api.GET("/status", statusHandler.GetStatus)

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects/:id", projectsHandler.GetProject)
	api.PUT("/projects/:id", projectsHandler.UpdateProject)
	api.GET("/projects/:id/schema", projectsHandler.DownloadSchema)

	return router
}
