package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(c *cobra.Command, args []string) error {
	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	e, err := findExpense(repo.Load(), args[0])
	if err != nil {
		return err
	}

	if !flagYes {
		confirmed := false
		err := tui.NewDeleteForm(e.Title, &confirmed).Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirmed) {
			info("Cancelled")
			return nil
		}
		if err != nil {
			return fmt.Errorf("running form: %w", err)
		}
	}

	repo.Delete(e.ID)
	warnIfUnsaved(repo)

	fmt.Fprintf(c.OutOrStdout(), "  %s %s\n", cli.Success("✓ Deleted"), e.Title)
	return nil
}
