package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/export"
	"github.com/theirongolddev/tally/internal/model"
)

var (
	flagExportFormat string
	flagExportOut    string
	flagExportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every expense to a CSV or JSON file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", export.FormatCSV, "csv or json")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output directory (default from config, else .)")
	exportCmd.Flags().BoolVar(&flagExportStdout, "stdout", false, "Print to stdout instead of a file")
	rootCmd.AddCommand(exportCmd)
}

// render serializes expenses in the requested format.
func render(format string, expenses []model.Expense) ([]byte, error) {
	switch format {
	case export.FormatCSV:
		return []byte(export.CSV(expenses, export.CSVOptions{
			Names:          cfg.Names(),
			CurrencySymbol: cfg.Appearance.CurrencySymbol,
		})), nil
	case export.FormatJSON:
		return export.JSON(expenses)
	}
	return nil, fmt.Errorf("--format: unknown format %q (use csv or json)", format)
}

func runExport(c *cobra.Command, _ []string) error {
	format := strings.ToLower(strings.TrimSpace(flagExportFormat))

	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	expenses := repo.Load()
	data, err := render(format, expenses)
	if err != nil {
		return err
	}

	if flagExportStdout {
		_, err := c.OutOrStdout().Write(data)
		return err
	}

	dir := flagExportOut
	if dir == "" {
		dir = cfg.ExportDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, export.FileName(format, cfg.Export.Label, time.Now()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "  Exported %d expenses to %s\n", len(expenses), path)
	return nil
}
