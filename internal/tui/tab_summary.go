package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	b := a.balance
	names := a.names()
	money := cli.Amounter(a.cfg.Appearance.CurrencySymbol)

	metrics := []components.Metric{
		{Label: names.Of(model.PayerA) + " paid", Value: money(b.TotalA), Color: t.PayerA},
		{Label: names.Of(model.PayerB) + " paid", Value: money(b.TotalB), Color: t.PayerB},
		{Label: "Shared", Value: money(b.TotalShared), Hint: "fair share " + money(b.FairShare), Color: t.Shared},
	}

	settleColor := t.Warning
	if b.Settled() {
		settleColor = t.Positive
	}
	settleStyle := lipgloss.NewStyle().Foreground(settleColor).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	settle := settleStyle.Render(pipeline.SettlementMessage(b, names, money)) + "\n" +
		mutedStyle.Render("Shared paid: "+names.Of(model.PayerA)+" "+money(b.SharedPaidByA)+
			" · "+names.Of(model.PayerB)+" "+money(b.SharedPaidByB))

	halves := components.LayoutRow(cw, 2)
	inner := components.CardInnerWidth(halves[1])
	labelW := max(lipgloss.Width(names.Of(model.PayerA)), lipgloss.Width(names.Of(model.PayerB)))
	barW := max(inner-labelW-8, 5)
	shareA, shareB := pipeline.PayerShares(b)
	shares := components.ShareBar(names.Of(model.PayerA), shareA, t.PayerA, labelW, barW) + "\n" +
		components.ShareBar(names.Of(model.PayerB), shareB, t.PayerB, labelW, barW)

	values := make([]float64, len(a.monthly))
	labels := make([]string, len(a.monthly))
	for i, m := range a.monthly {
		values[i] = m.Total.InexactFloat64()
		labels[i] = m.Month.Format("Jan")
	}
	chart := components.MonthBars(values, labels, components.CardInnerWidth(cw), 8)
	chartTitle := "Last " + cli.FormatCount(len(a.monthly), "month")
	if n := len(a.monthly); n > 0 {
		chartTitle += " · " + a.monthly[0].Label + " to " + a.monthly[n-1].Label
	}

	var out strings.Builder
	out.WriteString(components.MetricCardRow(metrics, cw))
	out.WriteString("\n")
	out.WriteString(components.CardRow([]string{
		components.ContentCard("Settle up", settle, halves[0]),
		components.ContentCard("Share of spend", shares, halves[1]),
	}))
	out.WriteString("\n")
	out.WriteString(components.ContentCard(chartTitle, chart, cw))
	return out.String()
}
