package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals per person and who owes whom",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(c *cobra.Command, _ []string) error {
	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	out := c.OutOrStdout()
	expenses := repo.Load()
	if len(expenses) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  No expenses yet.")
		fmt.Fprintln(out, "  Add one with `tally add` or open the dashboard with `tally tui`.")
		return nil
	}

	names := cfg.Names()
	money := cli.Amounter(cfg.Appearance.CurrencySymbol)
	b := pipeline.ComputeBalance(expenses)
	nameA, nameB := names.Of(model.PayerA), names.Of(model.PayerB)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("TALLY  "+cli.FormatCount(len(expenses), "expense")))
	fmt.Fprintln(out)

	rows := [][]string{
		{nameA + " paid", money(b.TotalA)},
		{nameB + " paid", money(b.TotalB)},
		cli.SeparatorRow,
		{"Shared total", money(b.TotalShared)},
		{"Fair share (each)", money(b.FairShare)},
		{"Shared paid by " + nameA, money(b.SharedPaidByA)},
		{"Shared paid by " + nameB, money(b.SharedPaidByB)},
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Amount"},
		Rows:    rows,
	}))

	fmt.Fprintln(out)
	settle := pipeline.SettlementMessage(b, names, money)
	if b.Settled() {
		fmt.Fprintf(out, "  %s\n", cli.Success(settle))
	} else {
		fmt.Fprintf(out, "  %s\n", cli.Warn(settle))
	}

	shareA, shareB := pipeline.PayerShares(b)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %s %s\n", nameA, cli.RenderShareBar(shareA, shareB, 30), nameB)
	fmt.Fprintf(out, "  %s\n", cli.Muted(fmt.Sprintf("%s %s · %s %s",
		nameA, cli.FormatPercent(shareA), nameB, cli.FormatPercent(shareB))))

	if ts, ok := kv.(store.Timestamped); ok {
		at, err := ts.UpdatedAt(repo.Key())
		if err == nil {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %s\n", cli.Muted("Last saved "+cli.FormatAgo(at)))
		} else if !errors.Is(err, store.ErrNotFound) {
			info("Could not read last-saved time: %v", err)
		}
	}
	return nil
}
