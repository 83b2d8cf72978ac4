package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCategory is used when a record carries no category.
	DefaultCategory = "uncategorized"
	// DefaultCurrency is used when a record carries no currency code.
	DefaultCurrency = "USD"
)

type (
	// Date is a calendar day. The zero value means "no date": such
	// records sort after every dated record and serialize as an empty
	// cell.
	Date struct {
		time.Time
	}

	// Expense is a single ledger entry. IDs are assigned once at
	// creation and never reused; Amount is exact decimal, never float.
	Expense struct {
		ID          int64
		Date        Date
		Category    string
		Amount      decimal.Decimal
		Currency    string
		Description string
	}

	// Month identifies a year+month pair for summary filtering.
	Month struct {
		Year  int
		Month int // 1-12
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrNotFound      = errors.New("expense not found")
	ErrNoExpenses    = errors.New("no expenses")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, int(m), d)
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String renders the date as ISO (2006-01-02), or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Before orders dates; an absent date is earlier than any real one.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// In reports whether the date falls inside the given month. Absent
// dates are in no month.
func (d Date) In(m Month) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == m.Year && int(d.Month()) == m.Month
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
