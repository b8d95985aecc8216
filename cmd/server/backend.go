package main

import (
	"context"
	"log/slog"

	"schema-designer-backend/internal/config"
	"schema-designer-backend/internal/database"
	"schema-designer-backend/internal/handlers"
	"schema-designer-backend/internal/store"
	"schema-designer-backend/internal/supabase"
)

// openBackend connects the configured durable backend and the schema archive. A backend that
// cannot be reached at startup is logged and skipped; the store then runs in memory.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Backend, handlers.SchemaArchiver, func()) {
	closeFn := func() {}

	var sb *supabase.Client
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		client, err := supabase.NewClient(cfg)
		if err != nil {
			logger.Warn("failed to initialize supabase client", "error", err)
		} else {
			sb = client
		}
	}

	var archive handlers.SchemaArchiver
	if sb != nil && cfg.ArchiveEnabled() {
		archive = sb.Archive()
	}

	switch cfg.Backend() {
	case config.BackendPostgres, config.BackendSQLite:
		db, err := database.Open(ctx, cfg.Backend(), cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to database, using in-memory storage", "backend", cfg.Backend(), "error", err)
			return nil, archive, closeFn
		}

		if err := database.NewMigrator(db, logger).Run(ctx); err != nil {
			logger.Warn("migration failed, using in-memory storage", "backend", cfg.Backend(), "error", err)
			db.Close()
			return nil, archive, closeFn
		}
		logger.Info("migrations completed successfully", "backend", cfg.Backend())

		return database.NewProjectRepository(db), archive, func() { db.Close() }

	case config.BackendSupabase:
		if sb == nil {
			return nil, archive, closeFn
		}
		return sb.Projects(), archive, closeFn

	default:
		return nil, archive, closeFn
	}
}
