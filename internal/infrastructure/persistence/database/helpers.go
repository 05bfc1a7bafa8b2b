// Package database provides database helper functions
package database

import (
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	"github.com/LagoonLabs/modulecraft-go/pkg/config"
)

// GetSlowQueryThreshold returns the configured slow query threshold,
// configurable via environment variable.
func GetSlowQueryThreshold() time.Duration {
	return config.SlowQueryThreshold
}

// CheckAndLogSlowQuery checks if a query duration exceeds the threshold
// and logs it using the slow query channel if it does.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration, moduleID string) {
	if logger == nil {
		return
	}
	if duration > GetSlowQueryThreshold() {
		logger.LogSlowQuery(query, duration, moduleID)
	}
}
