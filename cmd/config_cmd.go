// Package cmd implements the budgetring CLI commands.
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	dbPath := cfg.General.DBPath
	if dbPath == "" {
		dbPath = pipeline.LedgerPath() + " (default)"
	}
	fmt.Printf("    Ledger:     %s\n", dbPath)
	if cfg.General.ImportDir != "" {
		fmt.Printf("    Import dir: %s\n", cfg.General.ImportDir)
	}
	fmt.Printf("    Demo data:  %v\n", cfg.General.DemoData)
	if cfg.General.LogFile != "" {
		fmt.Printf("    Log file:   %s\n", cfg.General.LogFile)
	}
	fmt.Println()

	fmt.Println("  [Currency]")
	fmt.Printf("    Code:   %s (%s)\n", cfg.Currency.Code, money.Symbol())
	fmt.Printf("    Locale: %s\n", cfg.Currency.Locale)
	fmt.Printf("    Sample: %s\n", money.FormatCurrency(1234.5))
	fmt.Println()

	fmt.Println("  [Chart]")
	fmt.Printf("    Size:    %g (stroke %g, gap %g°)\n", cfg.Chart.Size, cfg.Chart.StrokeWidth, cfg.Chart.GapDegrees)
	fmt.Printf("    Tooltip: %gx%g (padding %g, offset %g)\n",
		cfg.Chart.TooltipWidth, cfg.Chart.TooltipHeight, cfg.Chart.TooltipPadding, cfg.Chart.TooltipOffset)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Bell:  %v\n", cfg.Feedback.Haptics)
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.MonthlyTotal != nil {
		fmt.Printf("    Monthly total: %s\n", money.FormatCurrency(*cfg.Budget.MonthlyTotal))
	} else {
		fmt.Println("    Monthly total: sum of category budgets")
	}
	if len(cfg.Budget.Categories) > 0 {
		names := make([]string, 0, len(cfg.Budget.Categories))
		for name, limit := range cfg.Budget.Categories {
			names = append(names, fmt.Sprintf("%s %s", name, money.FormatCompact(limit)))
		}
		sort.Strings(names)
		fmt.Printf("    Overrides:     %s\n", strings.Join(names, ", "))
	}
	fmt.Println()

	fmt.Println("  Run `budgetring setup` to reconfigure.")
	return nil
}
