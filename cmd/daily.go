package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day spending for the month",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	ds, cfg, opts, err := loadDataset()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)

	month := opts.Month
	txs, _ := monthTransactions(ds, month)
	if len(txs) == 0 {
		fmt.Printf("\n  No transactions in %s.\n", cli.FormatMonth(month))
		return nil
	}

	since, until := pipeline.MonthRange(month)
	days := pipeline.AggregateDays(txs, since, until)

	fmt.Println()
	fmt.Println(cli.RenderTitle(titleFor("DAILY", month)))
	fmt.Println()

	var total float64
	rows := make([][]string, 0, len(days)+2)
	for _, d := range days {
		if d.Transactions == 0 {
			continue
		}
		total += d.Amount
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Transactions)),
			money.FormatCurrency(d.Amount),
			money.FormatCurrency(total),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Txns", "Spent", "Running"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s\n", cli.RenderSparkline(pipeline.DailyValues(days)))
	return nil
}
