package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in     string
		symbol string
		want   string
	}{
		{"0", "", "0.00"},
		{"7.5", "", "7.50"},
		{"999.999", "", "1,000.00"},
		{"1234.5", "€", "€1,234.50"},
		{"1234567.891", "$", "$1,234,567.89"},
		{"-40", "£", "-£40.00"},
		{"-0.5", "", "-0.50"},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in), tt.symbol)
		if got != tt.want {
			t.Errorf("FormatAmount(%s, %q) = %q, want %q", tt.in, tt.symbol, got, tt.want)
		}
	}
}

func TestAmounter(t *testing.T) {
	f := Amounter("kr ")
	if got := f(decimal.NewFromInt(12)); got != "kr 12.00" {
		t.Errorf("got %q, want %q", got, "kr 12.00")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 expenses"},
		{1, "1 expense"},
		{2, "2 expenses"},
		{1200, "1,200 expenses"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n, "expense"); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(62.5); got != "62.5%" {
		t.Errorf("got %q, want 62.5%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(model.NewDate(2026, time.March, 4))
	if got != "Wed 04 Mar" {
		t.Errorf("got %q, want %q", got, "Wed 04 Mar")
	}
}

func TestFormatAgo(t *testing.T) {
	if got := FormatAgo(time.Time{}); got != "never" {
		t.Errorf("zero time = %q, want never", got)
	}
	if got := FormatAgo(time.Now().Add(-3 * time.Hour)); got != "3 hours ago" {
		t.Errorf("got %q, want %q", got, "3 hours ago")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"Groceries at the market", 10, "Groceries…"},
		{"café crème", 4, "caf…"},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
