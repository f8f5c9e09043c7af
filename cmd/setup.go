package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(c *cobra.Command, _ []string) error {
	vals := tui.SetupValuesOf(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			info("Setup cancelled, nothing written")
			return nil
		}
		return fmt.Errorf("running setup: %w", err)
	}

	if _, err := config.Update(vals.Apply); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cfg = vals.Apply(cfg)

	out := c.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintln(out, "  Run `tally setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
