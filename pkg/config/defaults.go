// Package config provides centralized default values for ModuleCraft
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

// loadEnvFile loads configuration overrides from an optional .env file.
// Values already set in the environment win.
func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			return val
		}
	}
	return defaultValue
}

var (
	// Storage Configuration
	SQLitePath  string
	LibsqlURL   string
	LibsqlToken string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int

	// Editor Configuration
	HistoryDepth      int
	MaxEditorSessions int
	SessionTTL        time.Duration

	// Observability Configuration
	SlowQueryThreshold time.Duration
	LogDirectory       string
	LogToFile          bool
	LogJSONFormat      bool
)

func init() {
	loadEnvFile()

	// Storage: LIBSQL_URL plus LIBSQL_AUTH_TOKEN select the remote libsql
	// driver; otherwise the local SQLite file is used.
	SQLitePath = getEnvString("MODULECRAFT_DB_PATH", "modulecraft.db")
	LibsqlURL = getEnvString("LIBSQL_URL", "")
	LibsqlToken = getEnvString("LIBSQL_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	// Editor: HistoryDepth bounds the undo stack per session (oldest
	// snapshot discarded first); MaxEditorSessions and SessionTTL bound
	// the in-memory session store.
	HistoryDepth = getEnvInt("EDITOR_HISTORY_DEPTH", 50)
	MaxEditorSessions = getEnvInt("MAX_EDITOR_SESSIONS", 100)
	SessionTTL = time.Duration(getEnvInt("EDITOR_SESSION_TTL_MINUTES", 30)) * time.Minute

	// Observability
	SlowQueryThreshold = time.Duration(getEnvInt("SLOW_QUERY_THRESHOLD_MS", 100)) * time.Millisecond
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogJSONFormat = getEnvBool("LOG_JSON", false)
}
