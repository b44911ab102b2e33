// Command api starts the task API server: configuration, logging, the
// PostgreSQL pool, the in-memory session store, services, and HTTP routing.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskline/task-api/internal/api"
	"github.com/taskline/task-api/internal/api/metrics"
	"github.com/taskline/task-api/internal/core/service"
	"github.com/taskline/task-api/internal/infrastructure/config"
	"github.com/taskline/task-api/internal/infrastructure/db/postgres"
	"github.com/taskline/task-api/internal/infrastructure/session"
	"github.com/taskline/task-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Postgres.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot init database")
	}
	defer func() { _ = db.Close() }()

	// Session table lives in process memory only; a restart invalidates
	// every token.
	sessions := session.NewStore()
	metrics.RegisterSessionGauge(sessions.Count)

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, sessions, cfg.BcryptCost, log)
	taskService := service.NewTaskService(taskRepo, log)

	e := api.NewRouter(db, authService, taskService, log, nil)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
