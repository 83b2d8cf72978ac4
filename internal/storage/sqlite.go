package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger in a SQLite database instead of the CSV
// file. Semantics are identical to CSVStore: the caller always loads
// the full set, mutates it in memory, and saves the full set back.
// Amounts are stored as exact decimal text, never as REAL.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// brings the schema up to date.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureExists is satisfied at construction time: NewSQLiteStore
// creates the database and schema. Kept for Store symmetry.
func (s *SQLiteStore) EnsureExists(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// LoadAll returns every expense ordered by id, which matches insertion
// order since ids are assigned monotonically.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, amount, currency, description FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e      core.Expense
			date   string
			amount string
		)
		if err := rows.Scan(&e.ID, &date, &e.Category, &amount, &e.Currency, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if date != "" {
			if d, err := core.ParseDate(date); err == nil {
				e.Date = d
			}
		}
		e.Amount = decimal.Zero
		if amount != "" {
			if a, err := decimal.NewFromString(amount); err == nil {
				e.Amount = a
			}
		}
		if e.Category == "" {
			e.Category = core.DefaultCategory
		}
		if e.Currency == "" {
			e.Currency = core.DefaultCurrency
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// SaveAll replaces the stored set in one transaction.
func (s *SQLiteStore) SaveAll(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, date, category, amount, currency, description) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range expenses {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Date.String(), e.Category, e.Amount.String(), e.Currency, e.Description); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
