package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/source"
	"github.com/theirongolddev/budgetring/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty ledger with a month of demo transactions",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	opts, err := loadOptions(cfg)
	if err != nil {
		return err
	}
	dbPath := ledgerPathFor(opts)

	ledger, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	txs := source.DemoTransactions(opts.Month)
	seeded, err := ledger.SeedIfEmpty(source.DemoCategories(), txs)
	if err != nil {
		return fmt.Errorf("seeding ledger: %w", err)
	}
	if !seeded {
		n, _ := ledger.TransactionCount()
		fmt.Printf("\n  Ledger already holds %s transactions, nothing seeded.\n", cli.FormatNumber(int64(n)))
		return nil
	}

	fmt.Printf("\n  Seeded %s demo transactions for %s into %s\n",
		cli.FormatNumber(int64(len(txs))), cli.FormatMonth(opts.Month), dbPath)
	if dbPath == pipeline.LedgerPath() {
		fmt.Println("  Run `budgetring tui` to explore them.")
	}
	return nil
}
