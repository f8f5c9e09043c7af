// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// FormatAmount formats a money value with thousands separators, two
// decimals and an optional currency symbol.
// e.g., 1234.5 with "€" -> "€1,234.50", -3 with "" -> "-3.00"
func FormatAmount(d decimal.Decimal, symbol string) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.'):]
	whole := humanize.BigComma(d.Truncate(0).BigInt())
	return sign + symbol + whole + frac
}

// Amounter returns FormatAmount bound to symbol, for callers that take a
// func(decimal.Decimal) string.
func Amounter(symbol string) func(decimal.Decimal) string {
	return func(d decimal.Decimal) string { return FormatAmount(d, symbol) }
}

// FormatPercent formats a 0-100 value with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatCount renders n with thousands separators and the noun pluralized.
// e.g., 1 -> "1 expense", 1200 -> "1,200 expenses"
func FormatCount(n int, noun string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, noun, "")
}

// FormatDate renders a calendar date for tables, e.g. "Tue 04 Mar".
func FormatDate(d model.Date) string {
	return d.Time(time.UTC).Format("Mon 02 Jan")
}

// FormatAgo renders t relative to now, e.g. "3 minutes ago".
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
