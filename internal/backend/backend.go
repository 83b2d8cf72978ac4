// Package backend selects and constructs the storage backend from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"tally/internal/storage"
)

// Type identifies a storage backend.
type Type string

const (
	CSV    Type = "csv"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSV, SQLite:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources. May be nil.
type CleanupFunc func() error

// Config holds what backend construction needs.
type Config struct {
	Type Type

	// CSV specific
	LedgerPath string

	// SQLite specific
	SQLiteDBPath string
}

// Open constructs the configured store. The returned cleanup func (if
// non-nil) must be called before exit.
func Open(logger *slog.Logger, cfg Config) (storage.Store, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Type {
	case CSV:
		store := storage.NewCSVStore(cfg.LedgerPath)
		logger.Info("Initialized CSV backend", "file", cfg.LedgerPath)
		return store, nil, nil
	case SQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
