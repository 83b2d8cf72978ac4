// Package services orchestrates ledger operations over a storage
// backend. Every mutation follows the same cycle: load the full set,
// change it in memory, save the full set back.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/core"
	"tally/internal/storage"
)

// Ledger is the operation layer the CLI talks to.
type Ledger struct {
	store storage.Store
}

func NewLedger(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Add assigns the next id to the expense, applies category and
// currency defaults, appends it and persists the whole set. The stored
// expense (with its id) is returned.
func (l *Ledger) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	expenses, err := l.store.LoadAll(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load expenses: %w", err)
	}

	e.ID = core.NextID(expenses)
	if strings.TrimSpace(e.Category) == "" {
		e.Category = core.DefaultCategory
	}
	if strings.TrimSpace(e.Currency) == "" {
		e.Currency = core.DefaultCurrency
	}

	expenses = append(expenses, e)
	if err := l.store.SaveAll(ctx, expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"amount", e.Amount.String(),
		"currency", e.Currency,
		"category", e.Category,
		"date", e.Date.String())
	return e, nil
}

// Delete removes the expense with the given id and persists the rest
// in their original relative order. core.ErrNotFound is returned when
// no expense has that id; nothing is written in that case.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	expenses, err := l.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	kept := expenses[:0:0]
	for _, e := range expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(expenses) {
		return fmt.Errorf("%w: id %d", core.ErrNotFound, id)
	}

	if err := l.store.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// List returns up to limit expenses, newest first.
func (l *Ledger) List(ctx context.Context, limit int) ([]core.Expense, error) {
	expenses, err := l.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return core.SortedByDateDesc(expenses, limit), nil
}

// Summary aggregates the whole ledger, or one month of it when month
// is non-nil. core.ErrNoExpenses is returned for an empty scope.
func (l *Ledger) Summary(ctx context.Context, month *core.Month) (core.Summary, error) {
	expenses, err := l.store.LoadAll(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load expenses: %w", err)
	}
	return core.Summarize(expenses, month)
}
