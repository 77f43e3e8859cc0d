package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/foodgram-app/backend/internal/api"
	"github.com/foodgram-app/backend/internal/config"
	"github.com/foodgram-app/backend/internal/env"
	"github.com/foodgram-app/backend/internal/log"
	"github.com/foodgram-app/backend/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	// Optional .env for local development.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", slog.Any("error", err))
	}

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	shortLinks := setup.ShortLinks(conf, db)

	env := env.New(logger, db, shortLinks, conf)

	logger.DebugContext(ctx, "setting up admin")
	if err := setup.Admin(setupCtx, env); err != nil {
		logger.Error("failed to setup admin", slog.Any("error", err))
		os.Exit(1)
	}

	if err := api.Start(env); err != nil {
		env.Logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
