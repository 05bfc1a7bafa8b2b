// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/LagoonLabs/modulecraft-go/pkg/config"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
}

// Connect opens the configured store: remote libsql when LIBSQL_URL and
// LIBSQL_AUTH_TOKEN are set, local SQLite otherwise.
func Connect(logger *logging.ChanneledLogger) (*DB, error) {
	if config.LibsqlURL != "" && config.LibsqlToken != "" {
		connStr := fmt.Sprintf("%s?authToken=%s", config.LibsqlURL, config.LibsqlToken)
		return NewConnectionWithLogger("libsql", connStr, logger)
	}
	return NewConnectionWithLogger("sqlite3", config.SQLitePath, logger)
}

// NewConnection establishes a new database connection for the specified driver.
func NewConnection(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	applyPoolSettings(db)
	return &DB{db}, nil
}

// NewConnectionWithLogger establishes a new database connection for the specified driver with logging.
func NewConnectionWithLogger(driverName, dataSourceName string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()
	logger.Database().Debug("Creating new database connection", "driverName", driverName)

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	if err = db.Ping(); err != nil {
		logger.Database().Error("Database ping failed", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	applyPoolSettings(db)

	duration := time.Since(start)
	logger.Database().Info("Database connection established", "driverName", driverName, "duration", duration)
	if duration > GetSlowQueryThreshold() {
		logger.LogSlowQuery("DATABASE_CONNECTION", duration, "system")
	}

	return &DB{db}, nil
}

func applyPoolSettings(db *sql.DB) {
	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
}
