package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codenote-backend/internal/bootstrap"
	"codenote-backend/internal/shared/config"
	"codenote-backend/internal/shared/server"
	"codenote-backend/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer telemetry.Sync()

	if err := run(cfg); err != nil {
		telemetry.Error("server.exit", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	app, err := bootstrap.Build(cfg, sqlDB)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env, "memory_store": sqlDB == nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	telemetry.Info("server.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
