// Package cli holds the rdvctl operator commands.
package cli

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/app"
	"github.com/BruksfildServices01/rdv-service/internal/config"
	"github.com/BruksfildServices01/rdv-service/internal/logger"
)

// Opener builds the application for one command run.
type Opener func(ctx context.Context) (*app.App, error)

// DefaultOpener reads the environment and connects to the configured database.
func DefaultOpener(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	return app.New(ctx, cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
}
