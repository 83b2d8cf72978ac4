package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Storage backend selection
	Backend string

	// CSV backend
	LedgerFile string

	// SQLite backend
	SQLiteDBPath string

	// Listing
	ListLimit          int
	DeletePreviewLimit int

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Backend:      getEnv("LEDGER_BACKEND", "csv"),
		LedgerFile:   getEnv("LEDGER_FILE", "./expenses.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/tally.db"),

		ListLimit:          getEnvInt("LIST_LIMIT", 20),
		DeletePreviewLimit: getEnvInt("DELETE_PREVIEW_LIMIT", 50),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"csv", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.Backend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == "csv" {
		if c.LedgerFile == "" {
			errors = append(errors, "ledger file path cannot be empty when using csv backend")
		} else {
			if dir := filepath.Dir(c.LedgerFile); dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create ledger directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.Backend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.ListLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid list limit %d: must be at least 1", c.ListLimit))
	}
	if c.DeletePreviewLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid delete preview limit %d: must be at least 1", c.DeletePreviewLimit))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
