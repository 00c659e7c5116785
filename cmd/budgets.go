package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Budget usage for the month",
	RunE:  runBudgets,
}

func init() {
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	ds, cfg, opts, err := loadDataset()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)
	month := opts.Month
	_, history := monthTransactions(ds, month)

	fmt.Println()
	fmt.Println(cli.RenderTitle(titleFor("BUDGETS", month)))
	fmt.Println()

	b := pipeline.AggregateBudget(history, ds.Categories, month, time.Now(), cfg.Budget.MonthlyTotal)
	if b.Budget <= 0 {
		fmt.Println("  No budget configured. Run `budgetring setup` to set one.")
		return nil
	}

	donut, err := newDonut(cfg)
	if err != nil {
		return err
	}
	gauge, err := chart.LayoutGauge(donut.Geometry(), b.Spent, b.Budget, chart.DefaultGaugeStart, chart.DefaultGaugeSweep)
	if err != nil {
		return fmt.Errorf("budget gauge: %w", err)
	}

	status := cli.StatusText(b.UsedPercent)
	if gauge.Over {
		status = fmt.Sprintf("over by %s", money.FormatCurrency(b.Spent-b.Budget))
	}
	fmt.Printf("  %s  %s\n\n", cli.RenderBudgetBar(b.Spent, b.Budget, 40), status)

	rows := [][]string{
		{"Spent", money.FormatCurrency(b.Spent)},
		{"Budget", money.FormatCurrency(b.Budget)},
		{"Used", cli.FormatPercent(b.UsedPercent)},
		cli.SeparatorRow,
		{"Burn rate", money.FormatCurrency(b.DailyBurnRate) + "/day"},
		{"Projected", money.FormatCurrency(b.ProjectedMonthly)},
		{"Days left", fmt.Sprint(b.DaysRemaining)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows}))
	fmt.Println()

	catRows := [][]string{}
	for _, cs := range pipeline.CategoryDeltas(history, ds.Categories, month) {
		if cs.Budget <= 0 {
			continue
		}
		pct := cs.Spent / cs.Budget * 100
		catRows = append(catRows, []string{
			cli.RenderSwatch(cs.Color) + " " + cs.Category,
			cli.RenderBudgetBar(cs.Spent, cs.Budget, 20),
			money.FormatCurrency(cs.Spent),
			money.FormatCurrency(cs.Budget),
			cli.StatusText(pct),
		})
	}
	if len(catRows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By category",
			Headers: []string{"Category", "Usage", "Spent", "Limit", "Status"},
			Rows:    catRows,
		}))
	}
	if b.OverBudgetByCount > 0 {
		fmt.Printf("\n  %d categories over their limit\n", b.OverBudgetByCount)
	}
	return nil
}
