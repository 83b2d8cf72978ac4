package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Name   string
	Amount decimal.Decimal
}

// Summary is the result of aggregating a set of expenses, optionally
// restricted to one month (Month == nil means all time).
type Summary struct {
	Month      *Month
	Count      int
	Total      decimal.Decimal
	Currency   string
	ByCategory []CategoryTotal
}

// SortedByDateDesc returns a copy of expenses ordered newest first,
// truncated to at most limit entries. Records without a date sort
// after every dated record. Equal dates keep their original relative
// order.
func SortedByDateDesc(expenses []Expense, limit int) []Expense {
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// NextID returns the id for the next expense: max(id)+1, or 1 when the
// set is empty. Deleted ids are never reused, so gaps are normal.
func NextID(expenses []Expense) int64 {
	var max int64
	for _, e := range expenses {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// Summarize computes the total and per-category subtotals of the given
// expenses. With a non-nil month only records dated inside that month
// count. An empty result set is reported as ErrNoExpenses rather than
// a zero-valued summary.
//
// The summary currency is taken from the newest record of the filtered
// set. Mixed currencies are not converted or segregated; the ledger is
// effectively single-currency and this is a documented simplification.
func Summarize(expenses []Expense, month *Month) (Summary, error) {
	filtered := expenses
	if month != nil {
		filtered = make([]Expense, 0, len(expenses))
		for _, e := range expenses {
			if e.Date.In(*month) {
				filtered = append(filtered, e)
			}
		}
	}
	if len(filtered) == 0 {
		return Summary{Month: month}, ErrNoExpenses
	}

	total := decimal.Zero
	subtotals := map[string]decimal.Decimal{}
	var order []string // categories in first-appearance order, for stable ties
	for _, e := range filtered {
		total = total.Add(e.Amount)
		if _, seen := subtotals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		subtotals[e.Category] = subtotals[e.Category].Add(e.Amount)
	}

	byCategory := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		byCategory = append(byCategory, CategoryTotal{Name: name, Amount: subtotals[name]})
	}
	sort.SliceStable(byCategory, func(i, j int) bool {
		return byCategory[i].Amount.GreaterThan(byCategory[j].Amount)
	})

	return Summary{
		Month:      month,
		Count:      len(filtered),
		Total:      total,
		Currency:   SortedByDateDesc(filtered, 1)[0].Currency,
		ByCategory: byCategory,
	}, nil
}
