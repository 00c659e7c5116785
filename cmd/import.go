package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import statement files into the ledger",
	Long: "Scan a directory of exported statement files (JSONL, one transaction per line)\n" +
		"and store new or changed files in the ledger. Unchanged files are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, _ := config.Load()
	dbPath := cfg.General.DBPath
	if flagDBPath != "" {
		dbPath = flagDBPath
	}
	if dbPath == "" {
		dbPath = pipeline.LedgerPath()
	}

	ledger, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	progressFn := func(current, total int) {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "\r  %s", cli.RenderProgressBar(current, total, 30))
		}
	}

	res, err := pipeline.ImportIntoLedger(args[0], ledger, progressFn)
	if err != nil {
		return err
	}
	if !flagQuiet && res.TotalFiles > 0 {
		fmt.Fprintln(os.Stderr)
	}

	if res.TotalFiles == 0 {
		fmt.Printf("\n  No statement files found in %s\n", args[0])
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Import",
		Headers: []string{"", "Count"},
		Rows: [][]string{
			{"Files found", cli.FormatNumber(int64(res.TotalFiles))},
			{"Accounts", cli.FormatNumber(int64(res.AccountCount))},
			{"Unchanged", cli.FormatNumber(int64(res.Unchanged))},
			{"Imported", cli.FormatNumber(int64(res.Reimported - res.FileErrors))},
			{"Transactions", cli.FormatNumber(int64(len(res.Transactions)))},
			cli.SeparatorRow,
			{"Unreadable files", cli.FormatNumber(int64(res.FileErrors))},
			{"Skipped rows", cli.FormatNumber(int64(res.ParseErrors))},
		},
	}))
	fmt.Printf("\n  Ledger: %s\n", dbPath)
	return nil
}
