package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
)

var addFlags expenseFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Example: `  tally add --title Groceries --amount 42.10 --paid-by A --type shared
  tally add -i`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addFlags.register(addCmd)
	rootCmd.AddCommand(addCmd)
}

func runAdd(c *cobra.Command, _ []string) error {
	changed := c.Flags().Changed

	d := model.Draft{
		PaidBy: model.PayerA,
		Type:   model.Shared,
		Date:   model.DateOf(time.Now()),
	}
	if err := addFlags.apply(&d, changed, cfg.Names()); err != nil {
		return err
	}

	if addFlags.interactive || (!changed("title") && !changed("amount")) {
		var err error
		d, err = runExpenseForm("Add expense", d)
		if errors.Is(err, huh.ErrUserAborted) {
			info("Cancelled")
			return nil
		}
		if err != nil {
			return fmt.Errorf("running form: %w", err)
		}
	}

	e, err := buildExpense(c.ErrOrStderr(), d, model.NewID())
	if err != nil {
		return err
	}

	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	repo.Add(e)
	warnIfUnsaved(repo)

	fmt.Fprintf(c.OutOrStdout(), "  %s %s  %s  %s\n",
		cli.Success("✓ Added"), e.Title,
		cli.FormatAmount(e.Amount.Decimal, cfg.Appearance.CurrencySymbol),
		cli.Muted(shortID(e.ID)))
	return nil
}
