package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")

	// ColorPayerA and ColorPayerB tint anything attributed to one participant.
	ColorPayerA = lipgloss.Color("#4385BE")
	ColorPayerB = lipgloss.Color("#CE5D97")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	okStyle = lipgloss.NewStyle().
		Foreground(ColorGreen).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols is how many leading columns are left-aligned; the rest are
	// right-aligned. Zero means only the first column.
	LeftCols int
}

// SeparatorRow marks a horizontal rule inside Table.Rows.
var SeparatorRow = []string{"---"}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	leftCols := t.LeftCols
	if leftCols < 1 {
		leftCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			if isSeparator(row) {
				continue
			}
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	row := func(cells []string, style lipgloss.Style) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], i < leftCols) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		row(t.Headers, headerStyle)
		rule("├", "┼", "┤")
	}
	for _, r := range t.Rows {
		if isSeparator(r) {
			rule("├", "┼", "┤")
			continue
		}
		row(r, valueStyle)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == SeparatorRow[0]
}

// pad fills s with spaces to width display cells.
func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// RenderShareBar renders a two-colored bar splitting width between the
// participants by shareA (0-100). An empty ledger renders a dim bar.
func RenderShareBar(shareA, shareB float64, width int) string {
	if shareA+shareB <= 0 {
		return dimStyle.Render(strings.Repeat("░", width))
	}
	filledA := int(shareA/100*float64(width) + 0.5)
	filledA = min(max(filledA, 0), width)

	a := lipgloss.NewStyle().Foreground(ColorPayerA).Render(strings.Repeat("█", filledA))
	b := lipgloss.NewStyle().Foreground(ColorPayerB).Render(strings.Repeat("█", width-filledA))
	return a + b
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHorizontalBar renders one bar chart line: label, bar, value text.
func RenderHorizontalBar(label, valueText string, value, maxValue float64, maxWidth int) string {
	barLen := 0
	if maxValue > 0 && value > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
		barLen = min(max(barLen, 1), maxWidth)
	}
	bar := headerStyle.Render(strings.Repeat("█", barLen)) +
		dimStyle.Render(strings.Repeat("·", maxWidth-barLen))
	return fmt.Sprintf("  %s  %s  %s", label, bar, valueText)
}

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Success renders a positive status line.
func Success(s string) string { return okStyle.Render(s) }

// Warn renders a warning line.
func Warn(s string) string { return warnStyle.Render(s) }

// Error renders an error line.
func Error(s string) string { return errStyle.Render(s) }
