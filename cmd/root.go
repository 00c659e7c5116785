package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

var (
	flagMonth     string
	flagCategory  string
	flagDBPath    string
	flagImportDir string
	flagDemo      bool
	flagQuiet     bool
	flagVerbose   bool
	flagLogFile   string
)

var rootCmd = &cobra.Command{
	Use:   "budgetring",
	Short: "Where the money went, as a ring",
	Long:  "Track monthly spending by category: donut chart, budgets and trends in the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _ := config.Load()
		logFile := flagLogFile
		if logFile == "" {
			logFile = cfg.General.LogFile
		}
		// The dashboard owns the terminal; without a file it logs nothing.
		if cmd.Name() == "tui" && logFile == "" {
			logger.Disable()
			return nil
		}
		return logger.InitLogger(logger.Options{
			Verbose: flagVerbose,
			File:    logFile,
			Quiet:   flagQuiet,
		})
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to show (YYYY-MM); default current")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "Filter to one category")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Ledger database path (default "+pipeline.LedgerPath()+")")
	rootCmd.PersistentFlags().StringVarP(&flagImportDir, "import", "i", "", "Import statement files from this directory first")
	rootCmd.PersistentFlags().BoolVar(&flagDemo, "demo", false, "Use generated demo data instead of the ledger")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

// loadOptions merges flags over the config file.
func loadOptions(cfg config.Config) (pipeline.LoadOptions, error) {
	month, err := cli.ParseMonth(flagMonth, time.Now())
	if err != nil {
		return pipeline.LoadOptions{}, fmt.Errorf("--month: %w", err)
	}

	opts := pipeline.LoadOptions{
		DBPath:    cfg.General.DBPath,
		ImportDir: cfg.General.ImportDir,
		Demo:      cfg.General.DemoData || flagDemo,
		Month:     month,
		Config:    cfg,
	}
	if flagDBPath != "" {
		opts.DBPath = flagDBPath
	}
	if flagImportDir != "" {
		opts.ImportDir = flagImportDir
	}
	return opts, nil
}

// loadDataset is the shared data loading path used by all commands.
func loadDataset() (*pipeline.Dataset, config.Config, pipeline.LoadOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
	}
	opts, err := loadOptions(cfg)
	if err != nil {
		return nil, cfg, opts, err
	}

	if !flagQuiet && opts.ImportDir != "" {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", opts.ImportDir)
	}
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Importing [%d/%d]", current, total)
		}
	}

	ds, err := pipeline.Load(opts, progressFn)
	if err != nil {
		return nil, cfg, opts, fmt.Errorf("loading ledger: %w", err)
	}

	if !flagQuiet {
		if r := ds.Import; r != nil && r.TotalFiles > 0 {
			fmt.Fprintf(os.Stderr, "\r  %d files imported, %d unchanged    \n", r.Reimported, r.Unchanged)
			if r.FileErrors > 0 || r.ParseErrors > 0 {
				fmt.Fprintf(os.Stderr, "  %d files unreadable, %d rows skipped\n", r.FileErrors, r.ParseErrors)
			}
		}
		if ds.Seeded {
			fmt.Fprintf(os.Stderr, "  New ledger seeded with demo data (%s)\n", ledgerPathFor(opts))
		}
	}
	return ds, cfg, opts, nil
}

// monthTransactions applies the category filter and returns the month's
// transactions along with the filtered full history.
func monthTransactions(ds *pipeline.Dataset, month time.Time) (inMonth, history []model.Transaction) {
	history = pipeline.FilterByCategory(ds.Transactions, flagCategory)
	return pipeline.FilterByMonth(history, month), history
}

func ledgerPathFor(opts pipeline.LoadOptions) string {
	if opts.DBPath != "" {
		return opts.DBPath
	}
	return pipeline.LedgerPath()
}

func currencyFormatter(cfg config.Config) *cli.CurrencyFormatter {
	f, err := cli.NewCurrencyFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	if err != nil {
		logger.Warn("invalid currency settings, using USD", zap.Error(err))
		return cli.MustCurrencyFormatter("USD", "en-US")
	}
	return f
}

// newDonut builds the chart engine from the [chart] config section.
func newDonut(cfg config.Config) (*chart.Donut, error) {
	cc := cfg.Chart
	d, err := chart.NewDonut(chart.DonutOptions{
		Size:        cc.Size,
		StrokeWidth: cc.StrokeWidth,
		GapDegrees:  cc.GapDegrees,
		Tooltip: chart.TooltipPlacement{
			Box:     chart.TooltipBox{Width: cc.TooltipWidth, Height: cc.TooltipHeight},
			Padding: cc.TooltipPadding,
			Offset:  cc.TooltipOffset,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chart config: %w", err)
	}
	return d, nil
}

func titleFor(prefix string, month time.Time) string {
	title := prefix + "  " + cli.FormatMonth(month)
	if flagCategory != "" {
		title += "  · " + flagCategory
	}
	return title
}
