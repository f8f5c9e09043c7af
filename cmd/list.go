package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/pipeline"
)

var (
	flagListMonth  string
	flagListPaidBy string
	flagListType   string
	flagListSearch string
	flagListAll    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Expenses of one month, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListMonth, "month", "m", "", "Month as YYYY-MM (default current)")
	listCmd.Flags().StringVar(&flagListPaidBy, "paid-by", "", "Only expenses paid by this person")
	listCmd.Flags().StringVar(&flagListType, "type", "", "Only shared or individual expenses")
	listCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Match titles, tolerating small typos")
	listCmd.Flags().BoolVarP(&flagListAll, "all", "a", false, "List every month")
	rootCmd.AddCommand(listCmd)
}

// parseMonth parses YYYY-MM, defaulting to now's month when s is empty.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("--month: %q is not YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// searchDistance allows one typo per word once the query is long enough
// for that to be meaningful.
func searchDistance(query string) int {
	if len([]rune(query)) >= 4 {
		return 1
	}
	return 0
}

func runList(c *cobra.Command, _ []string) error {
	year, month, err := parseMonth(flagListMonth, time.Now())
	if err != nil {
		return err
	}

	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	names := cfg.Names()
	expenses := repo.Load()

	title := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	if flagListAll {
		title = "All expenses"
		pipeline.SortByDate(expenses, true)
	} else {
		expenses = pipeline.FilterByMonth(expenses, year, month)
	}
	if flagListPaidBy != "" {
		p, err := parsePayer(flagListPaidBy, names)
		if err != nil {
			return err
		}
		expenses = pipeline.FilterByPayer(expenses, p)
	}
	if flagListType != "" {
		k, err := parseKind(flagListType)
		if err != nil {
			return err
		}
		expenses = pipeline.FilterByKind(expenses, k)
	}
	if flagListSearch != "" {
		expenses = pipeline.SearchTitles(expenses, flagListSearch, searchDistance(flagListSearch))
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(title))
	fmt.Fprintln(out)

	if len(expenses) == 0 {
		fmt.Fprintln(out, "  No expenses match.")
		return nil
	}

	money := cli.Amounter(cfg.Appearance.CurrencySymbol)
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		date := cli.FormatDate(e.Date)
		if flagListAll {
			date = e.Date.String()
		}
		rows = append(rows, []string{
			shortID(e.ID),
			date,
			cli.Truncate(e.Title, 32),
			names.Of(e.PaidBy),
			e.Type.DisplayName(),
			money(e.Amount.Decimal),
		})
	}
	rows = append(rows, cli.SeparatorRow, []string{
		"", "", cli.FormatCount(len(expenses), "expense"), "", "Total", money(pipeline.SumAmounts(expenses)),
	})

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Title", "Paid By", "Type", "Amount"},
		Rows:     rows,
		LeftCols: 5,
	}))
	return nil
}
