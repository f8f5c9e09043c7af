package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

// MonthBars renders one vertical bar per value with a labeled y-axis and the
// labels under the bars. height is the number of bar rows.
func MonthBars(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 2)

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)

	n := len(values)
	gap := 1
	chartW := max(width-yLabelW-1, n*2)
	barW := min(max((chartW-(n-1)*gap)/n, 1), 7)
	axisLen := n*barW + (n-1)*gap

	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	topStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(height)
		rowBottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		} else if row == (height+1)/2 && height >= 4 {
			label = formatChartLabel(ceiling / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(surface.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(topStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(surface.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0")))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
		var lb strings.Builder
		for i, l := range labels {
			if i > 0 {
				lb.WriteString(strings.Repeat(" ", gap))
			}
			lb.WriteString(fitLabel(l, barW))
		}
		b.WriteString(axisStyle.Render(lb.String()))
	}

	return b.String()
}

// fitLabel centers l in w cells, cutting it when it does not fit.
func fitLabel(l string, w int) string {
	r := []rune(l)
	if len(r) > w {
		return string(r[:w])
	}
	left := (w - len(r)) / 2
	return strings.Repeat(" ", left) + l + strings.Repeat(" ", w-len(r)-left)
}

// chartTickStep computes a round tick interval targeting about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
