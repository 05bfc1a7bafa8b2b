// Package startup prepares the application for use: logging, storage,
// schema, and the dependency injection container.
package startup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/application/container"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/persistence/database"
	"github.com/LagoonLabs/modulecraft-go/pkg/config"
)

// Bootstrap performs the complete startup sequence and returns the wired
// container. The caller owns shutdown via Shutdown.
func Bootstrap() (*container.Container, error) {
	start := time.Now().UTC()

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	logger.Startup().Info("Connecting to storage...")
	db, err := database.Connect(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	logger.Startup().Info("Ensuring database schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed initial content: %w", err)
	}

	appContainer := container.NewContainer(db.DB, logger)

	logger.Startup().Info("Startup complete", "duration", time.Since(start))
	return appContainer, nil
}

// Shutdown releases the container's resources.
func Shutdown(c *container.Container) {
	start := time.Now()
	c.Logger.Shutdown().Info("Shutting down...")

	if err := c.DB.Close(); err != nil {
		c.Logger.Shutdown().Error("Error closing database", "error", err.Error())
	}

	c.Logger.Shutdown().Info("Shutdown complete", "duration", time.Since(start))
	_ = c.Logger.Close()
}

// newLogger builds the channeled logger from environment configuration.
func newLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = config.LogToFile
	cfg.LogDirectory = config.LogDirectory
	cfg.JSONFormat = config.LogJSONFormat
	cfg.DefaultLevel = slog.LevelInfo

	return logging.NewChanneledLogger(cfg)
}
