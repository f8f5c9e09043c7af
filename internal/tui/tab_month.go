package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// monthHeaderHeight is the number of lines renderMonthTab draws above the table.
const monthHeaderHeight = 3

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	return s
}

// monthColumns sizes the table to width, giving the slack to Title.
func monthColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Title", Width: 0},
		{Title: "Paid by", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Amount", Width: 14},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2 // cell padding
	}
	fixed[1].Width = max(width-used-2, 12)
	return fixed
}

// syncTable rebuilds the table rows from monthRows and fits it to the window.
func (a *App) syncTable() {
	cw := a.contentWidth()
	if cw <= 0 {
		cw = maxContentWidth
	}
	cols := monthColumns(cw)
	names := a.names()

	rows := make([]table.Row, len(a.monthRows))
	for i, e := range a.monthRows {
		title := e.Title
		if e.Note != "" {
			title += " · " + e.Note
		}
		rows[i] = table.Row{
			cli.FormatDate(e.Date),
			cli.Truncate(title, cols[1].Width),
			cli.Truncate(names.Of(e.PaidBy), cols[2].Width),
			e.Type.DisplayName(),
			a.money(e.Amount),
		}
	}

	// Columns first: SetRows renders against the current column count.
	// Clearing the rows also resets the cursor, so keep it aside.
	cursor := a.table.Cursor()
	a.table.SetRows(nil)
	a.table.SetColumns(cols)
	a.table.SetRows(rows)
	a.table.SetWidth(cw)
	if a.height > 0 {
		// Tab bar, status bar and the month header sit around the table.
		a.table.SetHeight(max(a.height-2-monthHeaderHeight-2, 3))
	}
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	a.table.SetCursor(max(cursor, 0))
}

func (a App) renderMonthTab(cw int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	label := time.Date(a.year, a.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	left := titleStyle.Render("‹ "+label+" ›") + "  " +
		mutedStyle.Render(cli.FormatCount(len(a.monthRows), "expense"))
	right := mutedStyle.Render("Month total ") + totalStyle.Render(a.monthSum)
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	var b strings.Builder
	b.WriteString(" " + left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")
	b.WriteString(" " + a.dayMarkers())
	b.WriteString("\n\n")

	if len(a.monthRows) == 0 {
		b.WriteString(mutedStyle.Render("  No expenses this month. Press a to add one."))
		return b.String()
	}
	b.WriteString(a.table.View())
	return b.String()
}

// dayMarkers renders one cell per day of the selected month, highlighting
// days that have at least one expense.
func (a App) dayMarkers() string {
	t := theme.Active
	onStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Underline(true)

	marked := make(map[int]bool)
	for d := range pipeline.DatesWithExpenses(a.monthRows) {
		marked[d.Day] = true
	}
	today := model.DateOf(a.now())
	days := time.Date(a.year, a.month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var b strings.Builder
	for day := 1; day <= days; day++ {
		cell := "·"
		style := offStyle
		if marked[day] {
			cell, style = "●", onStyle
		}
		if today.InMonth(a.year, a.month) && today.Day == day {
			style = todayStyle
		}
		b.WriteString(style.Render(cell))
	}
	return b.String() + offStyle.Render(fmt.Sprintf("  %d days", days))
}
