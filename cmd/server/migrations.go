package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/paycore-api/internal/config"
	"github.com/phrazzld/paycore-api/internal/platform/postgres"
)

// runMigrations executes a goose migration command against the configured
// PostgreSQL database.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %q database driver, got %q",
			config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing database connection", "error", cerr)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}

	logger.Info("Migration command completed", "command", command)
	return nil
}
