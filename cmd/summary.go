package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly spending summary by category",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ds, cfg, opts, err := loadDataset()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)

	if len(ds.Transactions) == 0 {
		fmt.Println("\n  No transactions yet.")
		fmt.Println("  Import statements with `budgetring import <dir>`.")
		return nil
	}

	month := opts.Month
	_, history := monthTransactions(ds, month)
	cmp := pipeline.CompareMonths(history, month)
	stats, prev := cmp.Current, cmp.Previous

	fmt.Println()
	fmt.Println(cli.RenderTitle(titleFor("SPENDING", month)))
	fmt.Println()

	if stats.Transactions == 0 {
		fmt.Printf("  No transactions in %s.\n", cli.FormatMonth(month))
		return nil
	}

	spentStr := money.FormatCurrency(stats.TotalSpent)
	if prev.TotalSpent > 0 {
		spentStr += fmt.Sprintf("  (%s vs %s)", cli.FormatPercentDelta(stats.TotalSpent, prev.TotalSpent),
			month.AddDate(0, -1, 0).Format("Jan"))
	}

	rows := [][]string{
		{"Spent", spentStr},
		{"Refunds", money.FormatCurrency(stats.TotalRefunds)},
		{"Transactions", cli.FormatNumber(int64(stats.Transactions))},
		{"Active days", cli.FormatNumber(int64(stats.ActiveDays))},
		{"Per day", money.FormatCurrency(stats.SpendPerDay)},
		cli.SeparatorRow,
		{"Largest", fmt.Sprintf("%s (%s)", stats.LargestCategory, money.FormatCurrency(stats.LargestAmount))},
	}

	budget := pipeline.AggregateBudget(history, ds.Categories, month, time.Now(), cfg.Budget.MonthlyTotal)
	if budget.Budget > 0 {
		rows = append(rows,
			cli.SeparatorRow,
			[]string{"Budget", money.FormatCurrency(budget.Budget)},
			[]string{"Used", cli.FormatPercent(budget.UsedPercent) + "  " + cli.StatusText(budget.UsedPercent)},
			[]string{"Projected", money.FormatCurrency(budget.ProjectedMonthly)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	spends := pipeline.CategoryDeltas(history, ds.Categories, month)
	donut, err := newDonut(cfg)
	if err != nil {
		return err
	}
	if err := donut.SetSeries(pipeline.Series(spends)); err != nil {
		if errors.Is(err, chart.ErrDivisionByZero) {
			fmt.Println("  Refunds cancel out all spending this month.")
			return nil
		}
		return fmt.Errorf("laying out categories: %w", err)
	}

	deltas := make(map[string]float64, len(spends))
	for _, cs := range spends {
		deltas[cs.Category] = cs.Delta
	}

	catRows := make([][]string, 0, len(spends))
	for _, e := range donut.Legend(money) {
		catRows = append(catRows, []string{
			cli.RenderSwatch(e.Color) + " " + e.Label,
			e.ValueText,
			e.PercentText,
			money.FormatDelta(deltas[e.Label], 0),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By category",
		Headers: []string{"Category", "Spent", "Share", "vs last"},
		Rows:    catRows,
	}))
	return nil
}
