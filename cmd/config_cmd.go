package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func runConfig(c *cobra.Command, _ []string) error {
	out := c.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	backend := cfg.General.Backend
	if backend == "" {
		backend = "file"
	}
	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Data directory: %s\n", cfg.DataDir())
	fmt.Fprintf(out, "    Backend:        %s\n", backend)
	fmt.Fprintf(out, "    Months back:    %d\n", cfg.General.MonthsBack)
	if cfg.General.Ledger != "" {
		fmt.Fprintf(out, "    Ledger:         %s\n", cfg.General.Ledger)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Participants]")
	fmt.Fprintf(out, "    A: %s\n", cfg.Participants.A)
	fmt.Fprintf(out, "    B: %s\n", cfg.Participants.B)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Fprintf(out, "    Currency: %s\n", orNone(cfg.Appearance.CurrencySymbol))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Export]")
	fmt.Fprintf(out, "    Directory: %s\n", cfg.ExportDir())
	fmt.Fprintf(out, "    Label:     %s\n", orNone(cfg.Export.Label))
	fmt.Fprintln(out)

	if st := logger.Current(); !errors.Is(st.Err, logger.ErrNotSetUp) {
		fmt.Fprintf(out, "  Log file: %s\n", st)
	}
	fmt.Fprintf(out, "  Environment overrides use the %s prefix.\n", config.EnvPrefix)
	fmt.Fprintln(out, "  Run `tally setup` to reconfigure.")
	return nil
}
