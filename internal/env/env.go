// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/foodgram-app/backend/internal/config"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/log"
	"github.com/foodgram-app/backend/internal/shortlink"
)

type Env struct {
	Logger     *slog.Logger
	Database   *database.Database
	ShortLinks *shortlink.Service
	Config     config.Config
}

func New(logger *slog.Logger, db *database.Database, shortLinks *shortlink.Service, conf config.Config) *Env {
	if logger == nil {
		logger = log.NullLogger()
	}

	return &Env{
		Logger:     logger,
		Database:   db,
		ShortLinks: shortLinks,
		Config:     conf,
	}
}

func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
	}
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the environment into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the environment from a context. A null environment
// is returned when none was injected so callers can log safely.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok {
		return e
	}
	return Null()
}
