package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/model"
)

var flagTxLimit int

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List the month's transactions, newest first",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVarP(&flagTxLimit, "limit", "l", 50, "Maximum rows to show (0 for all)")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	ds, cfg, opts, err := loadDataset()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)

	txs, _ := monthTransactions(ds, opts.Month)
	if len(txs) == 0 {
		fmt.Printf("\n  No transactions in %s.\n", cli.FormatMonth(opts.Month))
		return nil
	}
	txs = append([]model.Transaction(nil), txs...)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })

	shown := txs
	if flagTxLimit > 0 && len(shown) > flagTxLimit {
		shown = shown[:flagTxLimit]
	}

	colors := make(map[string]string, len(ds.Categories))
	for _, c := range ds.Categories {
		colors[c.Name] = c.Color
	}

	rows := make([][]string, 0, len(shown))
	for _, tx := range shown {
		rows = append(rows, []string{
			cli.FormatDate(tx.Date),
			cli.RenderSwatch(colors[tx.Category]) + " " + cli.Truncate(tx.Category, 16),
			cli.Truncate(tx.Description, 32),
			money.FormatCurrency(tx.Amount),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(titleFor("TRANSACTIONS", opts.Month)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Category", "Description", "Amount"},
		Rows:    rows,
	}))
	if len(shown) < len(txs) {
		fmt.Printf("\n  %d of %s shown, use --limit 0 for all\n", len(shown), cli.FormatNumber(int64(len(txs))))
	}
	return nil
}
