package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/export"
)

var flagImportReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load expenses from a JSON export",
	Long: "Load expenses from a JSON export. Records whose id already exists are skipped\n" +
		"unless --replace is given, which overwrites the whole ledger.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportReplace, "replace", false, "Replace all existing expenses")
	rootCmd.AddCommand(importCmd)
}

func runImport(c *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	incoming, err := export.Import(data)
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	repo, kv, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	out := c.OutOrStdout()
	if flagImportReplace {
		repo.Save(incoming)
		warnIfUnsaved(repo)
		fmt.Fprintf(out, "  %s ledger replaced with %s\n",
			cli.Success("✓"), cli.FormatCount(len(incoming), "expense"))
		return nil
	}

	merged, added := export.Merge(repo.Load(), incoming)
	if added == 0 {
		fmt.Fprintln(out, "  Nothing new to import.")
		return nil
	}
	repo.Save(merged)
	warnIfUnsaved(repo)
	fmt.Fprintf(out, "  %s imported %s, skipped %d already present\n",
		cli.Success("✓"), cli.FormatCount(added, "expense"), len(incoming)-added)
	return nil
}
