package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// header is the on-disk column contract. Order matters: existing
// ledger files are read positionally after the header row.
var header = []string{"id", "date", "category", "amount", "currency", "description"}

// CSVStore keeps the ledger in a flat CSV file, one row per expense.
// This is the default backend and the interoperability format.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store over the given file path. The file is
// not touched until EnsureExists or SaveAll is called.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// EnsureExists creates the file with only the header row if it is
// missing. An existing file is left untouched.
func (s *CSVStore) EnsureExists(_ context.Context) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat ledger file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	return f.Close()
}

// LoadAll reads every data row in file order. Rows with a blank or
// non-integer id are skipped; a bad date or amount only degrades that
// field (absent date, zero amount). Availability beats strictness on
// read: a corrupt row never aborts the load.
func (s *CSVStore) LoadAll(ctx context.Context) ([]core.Expense, error) {
	if err := s.EnsureExists(ctx); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows; missing cells read as blank

	// Header row. An empty file behaves like an empty ledger.
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var expenses []core.Expense
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ledger row: %w", err)
		}
		e, ok := parseRow(row)
		if !ok {
			slog.Warn("Skipping unreadable ledger row", "file", s.path, "row", strings.Join(row, ","))
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// SaveAll rewrites the whole file: header first, then one row per
// expense. The write goes to a temp file that replaces the ledger only
// on success, so a failed save leaves the previous contents intact.
func (s *CSVStore) SaveAll(_ context.Context, expenses []core.Expense) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			e.Amount.String(),
			e.Currency,
			e.Description,
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// parseRow converts one CSV data row into an expense. The second
// return value is false when the row has no usable id.
func parseRow(row []string) (core.Expense, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	id, err := strconv.ParseInt(cell(0), 10, 64)
	if err != nil {
		return core.Expense{}, false
	}

	var date core.Date
	if v := cell(1); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			date = d
		}
	}

	amount := decimal.Zero
	if v := cell(3); v != "" {
		if a, err := core.ParseAmount(v); err == nil {
			amount = a
		}
	}

	category := cell(2)
	if category == "" {
		category = core.DefaultCategory
	}
	currency := cell(4)
	if currency == "" {
		currency = core.DefaultCurrency
	}

	return core.Expense{
		ID:          id,
		Date:        date,
		Category:    category,
		Amount:      amount,
		Currency:    currency,
		Description: cell(5),
	}, true
}
