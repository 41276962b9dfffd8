// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/mealdex/mealdex/internal/config"
	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/log"
	"github.com/mealdex/mealdex/internal/mealdb"
	"github.com/mealdex/mealdex/internal/recommend"
)

type Env struct {
	Logger    *slog.Logger
	Database  *database.Database
	MealDB    *mealdb.Client
	Recommend *recommend.Engine
	Config    config.Config
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the Env into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the Env from a context. A null Env is returned if
// none was injected, so calls on the result never panic.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}

func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
	}
}
