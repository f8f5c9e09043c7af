package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui"
)

// errInvalidExpense is returned after the field messages have been printed.
var errInvalidExpense = errors.New("expense not saved")

// expenseFlags are the record fields shared by add and edit.
type expenseFlags struct {
	title       string
	amount      string
	paidBy      string
	kind        string
	date        string
	note        string
	interactive bool
}

func (f *expenseFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.title, "title", "", "What the money was spent on")
	c.Flags().StringVar(&f.amount, "amount", "", "Amount, e.g. 12.50 or 12,50")
	c.Flags().StringVar(&f.paidBy, "paid-by", "", "Who paid: A, B or a configured name")
	c.Flags().StringVar(&f.kind, "type", "", "shared or individual")
	c.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD")
	c.Flags().StringVar(&f.note, "note", "", "Optional note")
	c.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "Fill in the expense with a form")
}

var expenseFieldFlags = []string{"title", "amount", "paid-by", "type", "date", "note"}

// anySet reports whether any record field was given on the command line.
func (f *expenseFlags) anySet(changed func(string) bool) bool {
	for _, name := range expenseFieldFlags {
		if changed(name) {
			return true
		}
	}
	return false
}

// apply overlays the flags the user set on d. changed reports whether a
// flag was given on the command line.
func (f *expenseFlags) apply(d *model.Draft, changed func(string) bool, names pipeline.Names) error {
	if changed("title") {
		d.Title = f.title
	}
	if changed("amount") {
		d.Amount = f.amount
	}
	if changed("paid-by") {
		p, err := parsePayer(f.paidBy, names)
		if err != nil {
			return err
		}
		d.PaidBy = p
	}
	if changed("type") {
		k, err := parseKind(f.kind)
		if err != nil {
			return err
		}
		d.Type = k
	}
	if changed("date") {
		dt, err := model.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		d.Date = dt
	}
	if changed("note") {
		d.Note = f.note
	}
	return nil
}

// parsePayer accepts a participant tag or display name, case-insensitively.
func parsePayer(s string, names pipeline.Names) (model.Payer, error) {
	s = strings.TrimSpace(s)
	for _, p := range []model.Payer{model.PayerA, model.PayerB} {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, names.Of(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("--paid-by: unknown person %q (use A, B, %q or %q)",
		s, names.Of(model.PayerA), names.Of(model.PayerB))
}

// parseKind accepts shared or individual, or their first letter.
func parseKind(s string) (model.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shared", "s":
		return model.Shared, nil
	case "individual", "i":
		return model.Individual, nil
	}
	return "", fmt.Errorf("--type: %q is not shared or individual", s)
}

// runExpenseForm lets the user review d in a huh form and returns the answers.
func runExpenseForm(title string, d model.Draft) (model.Draft, error) {
	vals := &tui.ExpenseFormValues{
		Title:  d.Title,
		Amount: d.Amount,
		PaidBy: d.PaidBy,
		Type:   d.Type,
		Date:   d.Date.String(),
		Note:   d.Note,
	}
	if err := tui.NewExpenseForm(title, vals, cfg.Names()).Run(); err != nil {
		return d, err
	}
	return vals.Draft(), nil
}

// printFieldErrors writes one line per invalid field in a stable order.
func printFieldErrors(w io.Writer, errs model.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s\n", cli.Error("✗ "+errs[f]))
	}
}

// buildExpense validates d, printing field messages on failure.
func buildExpense(w io.Writer, d model.Draft, id string) (model.Expense, error) {
	e, err := d.Expense(id)
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		printFieldErrors(w, fe)
		return e, errInvalidExpense
	}
	return e, err
}

// findExpense resolves an id or a unique id prefix.
func findExpense(expenses []model.Expense, ref string) (model.Expense, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Expense{}, errors.New("expense id is required")
	}

	var matches []model.Expense
	for _, e := range expenses {
		if e.ID == ref {
			return e, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return model.Expense{}, fmt.Errorf("no expense with id %q", ref)
	case 1:
		return matches[0], nil
	}
	return model.Expense{}, fmt.Errorf("id prefix %q matches %d expenses", ref, len(matches))
}

// shortID is the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
