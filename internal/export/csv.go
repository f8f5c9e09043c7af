package export

import (
	"strings"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
)

// CSVOptions controls the cosmetic parts of the CSV export.
type CSVOptions struct {
	// Names maps payers to the display names written in the Paid By column.
	Names pipeline.Names
	// CurrencySymbol, when set, is appended to the Amount header.
	CurrencySymbol string
}

// CSV renders one row per expense in input order. Title and a present Note
// are always quoted so spreadsheet tools never split on commas inside them;
// a missing Note is an empty field.
func CSV(expenses []model.Expense, opts CSVOptions) string {
	var sb strings.Builder

	amountHeader := "Amount"
	if opts.CurrencySymbol != "" {
		amountHeader += " (" + opts.CurrencySymbol + ")"
	}
	writeRow(&sb, "Date", "Title", amountHeader, "Paid By", "Type", "Note")

	for _, e := range expenses {
		writeRow(&sb,
			e.Date.String(),
			quote(e.Title),
			e.Amount.String(),
			plain(opts.Names.Of(e.PaidBy)),
			e.Type.DisplayName(),
			note(e.Note),
		)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, fields ...string) {
	sb.WriteString(strings.Join(fields, ","))
	sb.WriteByte('\n')
}

// quote wraps s in double quotes, doubling any quote inside.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func note(s string) string {
	if s == "" {
		return ""
	}
	return quote(s)
}

// plain quotes s only when it would otherwise break the row.
func plain(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return quote(s)
	}
	return s
}
