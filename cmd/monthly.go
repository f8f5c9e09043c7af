package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/pipeline"
)

var flagMonths int

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Spend per month for the last few months",
	Args:  cobra.NoArgs,
	RunE:  runMonthly,
}

func init() {
	monthlyCmd.Flags().IntVarP(&flagMonths, "months", "n", 0, "Number of months (default from config)")
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(c *cobra.Command, _ []string) error {
	n := cfg.General.MonthsBack
	if c.Flags().Changed("months") {
		if flagMonths < 1 {
			return fmt.Errorf("--months must be at least 1, got %d", flagMonths)
		}
		n = flagMonths
	}

	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	months := pipeline.AggregateMonths(repo.Load(), n, time.Now())
	money := cli.Amounter(cfg.Appearance.CurrencySymbol)

	values := make([]float64, len(months))
	peak := 0.0
	labelW := 0
	for i, m := range months {
		values[i] = m.Total.InexactFloat64()
		peak = max(peak, values[i])
		labelW = max(labelW, lipgloss.Width(m.Label))
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("MONTHLY SPEND  Last %s", cli.FormatCount(n, "month"))))
	fmt.Fprintln(out)

	for i, m := range months {
		label := fmt.Sprintf("%-*s", labelW, m.Label)
		text := money(m.Total)
		if m.Count > 0 {
			text += cli.Muted(" (" + cli.FormatCount(m.Count, "expense") + ")")
		}
		fmt.Fprintln(out, cli.RenderHorizontalBar(label, text, values[i], peak, 30))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Trend  %s\n", cli.RenderSparkline(values))
	return nil
}
