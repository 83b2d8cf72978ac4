// Package storage persists the expense ledger. Every backend exposes
// the same whole-set contract: load everything, mutate in memory, save
// everything back. There is no locking between processes; the ledger
// is a single-user file.
package storage

import (
	"context"

	"tally/internal/core"
)

// Store is the durable home of the full expense set.
type Store interface {
	// EnsureExists bootstraps an empty ledger if none is present.
	// Idempotent; safe to call before every read.
	EnsureExists(ctx context.Context) error

	// LoadAll returns every stored expense in storage order.
	// Unreadable rows are skipped, not fatal.
	LoadAll(ctx context.Context) ([]core.Expense, error)

	// SaveAll replaces the stored set with the given one. All or
	// nothing: a failed save never leaves a partially written ledger.
	SaveAll(ctx context.Context, expenses []core.Expense) error
}
