package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"Date", "Title", "Amount"},
		LeftCols: 2,
		Rows: [][]string{
			{"Wed 04 Mar", "Café", "€3.50"},
			SeparatorRow,
			{"", "Total", "€1,203.50"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != width {
			t.Errorf("line %d width = %d, want %d: %q", i, lipgloss.Width(l), width, l)
		}
	}
	if !strings.Contains(lines[3], "│ Café  │") {
		t.Errorf("title column not left aligned: %q", lines[3])
	}
	if !strings.Contains(lines[3], "│     €3.50 │") {
		t.Errorf("amount column not right aligned: %q", lines[3])
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRenderShareBar(t *testing.T) {
	if got := RenderShareBar(0, 0, 10); got != strings.Repeat("░", 10) {
		t.Errorf("empty = %q", got)
	}
	if got := RenderShareBar(75, 25, 8); got != strings.Repeat("█", 8) {
		t.Errorf("split = %q", got)
	}
	if w := lipgloss.Width(RenderShareBar(33.3, 66.7, 20)); w != 20 {
		t.Errorf("width = %d, want 20", w)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("got %q, want ▁▄█", got)
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("all zero = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("nil should render empty")
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	got := RenderHorizontalBar("Mar 2026", "€10.00", 5, 10, 10)
	if !strings.Contains(got, "Mar 2026  █████·····  €10.00") {
		t.Errorf("got %q", got)
	}
	small := RenderHorizontalBar("Apr 2026", "€0.01", 0.01, 1000, 10)
	if !strings.Contains(small, "█·········") {
		t.Errorf("tiny non-zero value should show one block: %q", small)
	}
	zero := RenderHorizontalBar("May 2026", "€0.00", 0, 0, 4)
	if !strings.Contains(zero, "····") {
		t.Errorf("zero = %q", zero)
	}
}
