package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"tally/internal/core"
	"tally/internal/services"
)

// App is the interactive shell. It owns all prompting and rendering;
// parsing and persistence live in core and services.
type App struct {
	ledger *services.Ledger
	in     *bufio.Scanner
	out    io.Writer

	listLimit          int
	deletePreviewLimit int
}

// NewApp wires the shell to a ledger. in and out are injectable so the
// loop is testable with buffers.
func NewApp(ledger *services.Ledger, in io.Reader, out io.Writer, listLimit, deletePreviewLimit int) *App {
	return &App{
		ledger:             ledger,
		in:                 bufio.NewScanner(in),
		out:                out,
		listLimit:          listLimit,
		deletePreviewLimit: deletePreviewLimit,
	}
}

// Run executes the menu loop until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "tally — personal expense ledger (type 'help' to see options)")
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Options: [A]dd  [D]elete  [L]ist  [S]ummarize  [Q]uit")
		choice, ok := a.prompt("Choose: ")
		if !ok {
			return nil // input closed
		}
		switch strings.ToLower(choice) {
		case "":
			continue
		case "a", "add":
			a.addExpense(ctx)
		case "d", "delete":
			a.deleteExpense(ctx)
		case "l", "list":
			a.listExpenses(ctx)
		case "s", "summarize":
			a.summarize(ctx)
		case "q", "quit", "exit":
			fmt.Fprintln(a.out, "Goodbye — your expenses are saved.")
			return nil
		case "help", "h", "?":
			fmt.Fprintln(a.out, "Commands: add, delete, list, summarize, quit")
		default:
			fmt.Fprintln(a.out, "Unknown option. Type 'help' for commands.")
		}
	}
}

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) addExpense(ctx context.Context) {
	today := core.Today()

	dateInput, ok := a.prompt(fmt.Sprintf("Date (YYYY-MM-DD) [default %s]: ", today))
	if !ok {
		return
	}
	date := today
	if dateInput != "" {
		parsed, err := core.ParseDate(dateInput)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid date format. Use YYYY-MM-DD. Expense not added.")
			return
		}
		date = parsed
	}

	category, ok := a.prompt("Category (e.g., food, transport, rent) [default: uncategorized]: ")
	if !ok {
		return
	}

	amountInput, ok := a.prompt("Amount (numbers only, e.g. 12.50): ")
	if !ok {
		return
	}
	amount, err := core.ParseAmount(amountInput)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount. Use numbers like 12.50. Expense not added.")
		return
	}

	currency, ok := a.prompt("Currency [default USD]: ")
	if !ok {
		return
	}
	description, ok := a.prompt("Description (optional): ")
	if !ok {
		return
	}

	added, err := a.ledger.Add(ctx, core.Expense{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Currency:    currency,
		Description: description,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Could not save expense: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Added expense id=%d: %s %s on %s (%s)\n",
		added.ID, added.Amount, added.Currency, added.Date, added.Category)
}

func (a *App) deleteExpense(ctx context.Context) {
	expenses, err := a.ledger.List(ctx, a.deletePreviewLimit)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load expenses: %v\n", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Fprintln(a.out, "No expenses to delete.")
		return
	}
	a.renderTable(expenses)

	input, ok := a.prompt("Enter expense id to delete: ")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid id. Cancelled.")
		return
	}

	switch err := a.ledger.Delete(ctx, id); {
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintln(a.out, "No expense with that id. Nothing deleted.")
	case err != nil:
		fmt.Fprintf(a.out, "Could not delete expense: %v\n", err)
	default:
		fmt.Fprintf(a.out, "Deleted expense id=%d.\n", id)
	}
}

func (a *App) listExpenses(ctx context.Context) {
	expenses, err := a.ledger.List(ctx, a.listLimit)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load expenses: %v\n", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Fprintln(a.out, "No expenses found.")
		return
	}
	a.renderTable(expenses)
}

func (a *App) summarize(ctx context.Context) {
	input, ok := a.prompt("Enter month (YYYY-MM) or press Enter for all: ")
	if !ok {
		return
	}
	var month *core.Month
	if input != "" {
		m, err := core.ParseMonth(input)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid month format. Use YYYY-MM (e.g., 2025-10).")
			return
		}
		month = &m
	}

	summary, err := a.ledger.Summary(ctx, month)
	switch {
	case errors.Is(err, core.ErrNoExpenses):
		fmt.Fprintf(a.out, "No expenses for %s.\n", scopeTitle(month))
		return
	case err != nil:
		fmt.Fprintf(a.out, "Could not summarize expenses: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, scopeTitle(summary.Month))
	fmt.Fprintf(a.out, "Total: %s %s\n", summary.Total, summary.Currency)
	fmt.Fprintln(a.out, "By category:")
	for _, ct := range summary.ByCategory {
		fmt.Fprintf(a.out, " - %s: %s\n", ct.Name, ct.Amount)
	}
}

func scopeTitle(month *core.Month) string {
	if month == nil {
		return "Summary (all time)"
	}
	return fmt.Sprintf("Summary for %s", month)
}

func (a *App) renderTable(expenses []core.Expense) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tdate\tcategory\tamount\tcurrency\tdescription")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.Category, e.Amount, e.Currency, e.Description)
	}
	w.Flush()
}
