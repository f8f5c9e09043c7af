// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/logger"
	"github.com/theirongolddev/tally/internal/store"
)

var (
	flagDataDir string
	flagBackend string
	flagQuiet   bool
	flagDebug   bool
)

var (
	// cfg is the effective configuration, filled in before any command runs.
	cfg      = config.DefaultConfig()
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:               "tally",
	Short:             "Shared expense tracker for two",
	Long:              "Track who paid for what, see who owes whom, and export the ledger.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	if closeLog != nil {
		_ = closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default $XDG_DATA_HOME/tally)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to <data-dir>/logs/tally.log")
}

// loadConfig resolves config file, environment and flags, then starts logging.
func loadConfig(c *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		loaded.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		loaded.General.Backend = flagBackend
	}
	cfg = loaded

	closeFn, err := logger.Setup(logger.Config{DataDir: cfg.DataDir(), Debug: flagDebug})
	if err != nil {
		if flagDebug {
			fmt.Fprintf(os.Stderr, "  Logging disabled: %v\n", err)
		}
	} else {
		closeLog = closeFn
	}

	logger.Component("cli").Debug("cli.start",
		"command", c.CommandPath(),
		"backend", cfg.General.Backend,
		"data_dir", cfg.DataDir(),
	)
	return nil
}

// openRepository opens the configured backend. Callers close the returned
// ByteStore when done.
func openRepository() (*store.Repository, store.ByteStore, error) {
	kv, err := store.Open(cfg.General.Backend, cfg.DataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	repo := store.NewRepository(kv,
		store.WithKey(cfg.General.Ledger),
		store.WithLogger(logger.Component("store")),
	)
	return repo, kv, nil
}

// warnIfUnsaved reports a swallowed write failure. The exit status is unchanged.
func warnIfUnsaved(repo *store.Repository) {
	if err := repo.LastSaveErr(); err != nil {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.Warn("⚠ changes were not saved: "+err.Error()))
	}
}

// info prints a progress line on stderr unless --quiet is set.
func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
