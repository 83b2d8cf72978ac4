// Package core holds the ledger's domain types, input parsing, and the
// read-only aggregation used for listing and summaries.
//
// This file contains the parsers for user-typed values: calendar dates,
// exact decimal amounts, and YYYY-MM month filters.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDate parses a 2006-01-02 date string.
//
// Returns ErrInvalidDate for anything that does not match the pattern.
// An empty string is also invalid here; callers that treat blank input
// as "no date" must check before calling.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ParseAmount parses a monetary amount as an exact decimal.
// Signs and zero are accepted; the ledger records refunds and
// corrections as negative amounts.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q (want a number like 12.50)", ErrInvalidAmount, s)
	}
	return d, nil
}

// ParseMonth parses a YYYY-MM month filter. Zero padding of the month
// part is not required: "2025-5" and "2025-05" are the same month.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %q (month must be 1-12)", ErrInvalidMonth, s)
	}
	return Month{Year: year, Month: month}, nil
}
