package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"codenote-backend/internal/analysis"
	"codenote-backend/internal/llm/openai"
	"codenote-backend/internal/notes"
	"codenote-backend/internal/services/health"
	"codenote-backend/internal/shared/config"
	"codenote-backend/internal/shared/server"
	"codenote-backend/internal/shared/storage/db"
	"codenote-backend/internal/shared/telemetry"
	"codenote-backend/internal/stats"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	NotesRepo       notes.Repo
	NotesService    *notes.Service
	StatsService    *stats.Service
	AnalysisService *analysis.Service
	LLM             *openai.Client
}

// OpenDB acquires the document store handle and applies migrations. Dev-like
// environments fall back to in-memory repositories (nil handle) when the
// database is missing or unreachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_fallback", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_fallback", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// Build wires repositories, services and handlers onto sqlDB, or onto
// in-memory repositories when sqlDB is nil.
func Build(cfg config.Config, sqlDB *sql.DB) (*App, error) {
	app := &App{Config: cfg, DB: sqlDB}

	var statsStore stats.Store
	if sqlDB != nil {
		app.NotesRepo = &notes.PGRepo{DB: sqlDB}
		statsStore = stats.NewPGStore(sqlDB)
	} else {
		app.NotesRepo = notes.NewMemoryRepo()
		statsStore = stats.NewMemoryStore()
	}

	app.NotesService = notes.NewService(app.NotesRepo)
	app.StatsService = stats.NewService(statsStore, app.NotesRepo)

	var requester *analysis.Requester
	if cfg.OpenAIAPIKey != "" {
		client, err := openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
		})
		if err != nil {
			return nil, err
		}
		app.LLM = client
		requester = analysis.NewRequester(client)
	} else {
		telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"reason": "OPENAI_API_KEY empty"})
	}
	app.AnalysisService = analysis.NewService(requester, cfg.AnalysisTimeout)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(sqlDB),
		NoteHandler:     notes.NewHandler(app.NotesService),
		StatsHandler:    stats.NewHandler(app.StatsService),
		AnalysisHandler: analysis.NewHandler(app.AnalysisService),
	})
	return app, nil
}

// Close releases the LLM client and the document store handle.
func (a *App) Close() error {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
