package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
)

var editFlags expenseFlags

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an expense; fields not given keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editFlags.register(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(c *cobra.Command, args []string) error {
	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	current, err := findExpense(repo.Load(), args[0])
	if err != nil {
		return err
	}

	d := model.DraftOf(current)
	if err := editFlags.apply(&d, c.Flags().Changed, cfg.Names()); err != nil {
		return err
	}

	if editFlags.interactive || !editFlags.anySet(c.Flags().Changed) {
		d, err = runExpenseForm("Edit expense", d)
		if errors.Is(err, huh.ErrUserAborted) {
			info("Cancelled")
			return nil
		}
		if err != nil {
			return fmt.Errorf("running form: %w", err)
		}
	}

	e, err := buildExpense(c.ErrOrStderr(), d, current.ID)
	if err != nil {
		return err
	}

	repo.Update(e)
	warnIfUnsaved(repo)

	fmt.Fprintf(c.OutOrStdout(), "  %s %s  %s\n",
		cli.Success("✓ Updated"), e.Title,
		cli.FormatAmount(e.Amount.Decimal, cfg.Appearance.CurrencySymbol))
	return nil
}
