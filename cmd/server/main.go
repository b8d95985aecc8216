// @title           Schema Designer API
// @version         1.0.0
// @description     Backend for a conversational database schema designer. The assistant asks clarifying questions, then generates a complete SQL or NoSQL schema, which can be saved as a project together with its conversation.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"schema-designer-backend/docs"
	"schema-designer-backend/internal/chat"
	"schema-designer-backend/internal/config"
	"schema-designer-backend/internal/handlers"
	"schema-designer-backend/internal/llm"
	"schema-designer-backend/internal/logging"
	"schema-designer-backend/internal/policy"
	"schema-designer-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	backend, archive, closeBackend := openBackend(startupCtx, cfg, logger)
	cancelStartup()
	defer closeBackend()

	projectStore := store.New(backend, store.WithLogger(logger))

	model, err := llm.New(cfg)
	if err != nil {
		logger.Warn("text generation provider not available, chat requests will fail", "provider", cfg.LLMProvider, "error", err)
		model = llm.Unavailable(cfg.LLMProvider, err)
	}

	orchestrator := chat.NewOrchestrator(policy.New(cfg.GenerationThreshold), model, cfg.ChatTimeout, logger)

	chatHandler := handlers.NewChatHandler(orchestrator, cfg.SchemaType())
	projectsHandler := handlers.NewProjectsHandler(projectStore, archive, cfg.SchemaType(), logger)
	statusHandler := handlers.NewStatusHandler(projectStore, model)

	router := handlers.NewRouter(chatHandler, projectsHandler, statusHandler, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}).Handler(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
		// A chat request may legitimately run for the whole generation timeout.
		WriteTimeout: cfg.ChatTimeout + 30*time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("server starting",
		"port", cfg.Port,
		"provider", model.Name(),
		"backend", projectStore.Status(context.Background()).Backend,
		"generation_threshold", cfg.GenerationThreshold)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not start server", "port", cfg.Port, "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
