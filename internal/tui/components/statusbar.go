package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and a
// message on the right. A non-empty warning replaces the message.
func RenderStatusBar(width int, hints, message, warning string) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	right := base.Render(message + " ")
	if warning != "" {
		right = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Render("⚠ " + warning + " ")
	}
	left := base.Render(" " + hints)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + base.Render(strings.Repeat(" ", gap)) + right

	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
