package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/source"
	"github.com/theirongolddev/budgetring/internal/store"
)

// LoadOptions selects where a Dataset comes from.
type LoadOptions struct {
	// DBPath is the ledger database. Empty means LedgerPath().
	DBPath string
	// Demo skips the ledger entirely and serves generated demo data.
	Demo bool
	// ImportDir, when set, is imported into the ledger before reading.
	ImportDir string
	// Month anchors demo data and first-run seeding.
	Month time.Time
	// Config supplies budget overrides.
	Config config.Config
}

// Dataset is everything the dashboard and commands read.
type Dataset struct {
	Categories   []model.Category
	Transactions []model.Transaction
	Seeded       bool
	Import       *LedgerImportResult
}

// Load opens the ledger (seeding it with demo data on first run), imports
// ImportDir when set, and returns all categories and transactions with
// configured budget overrides applied. Categories that only occur in
// transactions are added to the ledger with derived colors.
func Load(opts LoadOptions, progressFn ProgressFunc) (*Dataset, error) {
	month := opts.Month
	if month.IsZero() {
		month = time.Now()
	}

	if opts.Demo {
		ds := &Dataset{
			Categories:   source.DemoCategories(),
			Transactions: demoMonths(month),
		}
		if opts.ImportDir != "" {
			res, err := Import(opts.ImportDir, progressFn)
			if err != nil {
				return nil, err
			}
			ds.Transactions = append(ds.Transactions, res.Transactions...)
			ds.Import = &LedgerImportResult{ImportResult: *res, Reimported: res.ParsedFiles}
		}
		ds.Categories = mergeCategories(ds.Categories, ds.Transactions)
		applyBudgets(ds.Categories, opts.Config)
		return ds, nil
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = LedgerPath()
	}
	ledger, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = ledger.Close() }()

	ds := &Dataset{}
	if ds.Seeded, err = ledger.SeedIfEmpty(source.DemoCategories(), demoMonths(month)); err != nil {
		return nil, fmt.Errorf("seeding ledger: %w", err)
	}
	if ds.Seeded {
		logger.Info("seeded empty ledger with demo data", zap.String("db", dbPath))
	}

	if opts.ImportDir != "" {
		if ds.Import, err = ImportIntoLedger(opts.ImportDir, ledger, progressFn); err != nil {
			return nil, err
		}
	}

	if ds.Transactions, err = ledger.Transactions(time.Time{}, time.Time{}); err != nil {
		return nil, err
	}
	if ds.Categories, err = ledger.Categories(); err != nil {
		return nil, err
	}
	if ds.Categories, err = ensureCategories(ledger, ds.Categories, ds.Transactions); err != nil {
		return nil, err
	}
	applyBudgets(ds.Categories, opts.Config)

	logger.Debug("dataset loaded",
		zap.Int("categories", len(ds.Categories)),
		zap.Int("transactions", len(ds.Transactions)))
	return ds, nil
}

// demoMonths returns demo data for month and the month before, so that
// month-over-month deltas have something to compare against.
func demoMonths(month time.Time) []model.Transaction {
	prev := source.DemoTransactions(model.MonthStart(month).AddDate(0, -1, 0))
	return append(prev, source.DemoTransactions(month)...)
}

func ensureCategories(ledger *store.Ledger, cats []model.Category, txs []model.Transaction) ([]model.Category, error) {
	merged := mergeCategories(cats, txs)
	for _, c := range merged[len(cats):] {
		if err := ledger.SaveCategory(c); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// mergeCategories appends a category for every transaction category missing
// from cats.
func mergeCategories(cats []model.Category, txs []model.Transaction) []model.Category {
	known := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		known[c.Name] = struct{}{}
	}
	for _, t := range txs {
		if _, ok := known[t.Category]; ok {
			continue
		}
		c := model.Category{Name: t.Category, Color: config.ColorFor(t.Category)}
		if d, ok := config.LookupCategory(t.Category); ok {
			c.MonthlyBudget = d.MonthlyBudget
		}
		known[c.Name] = struct{}{}
		cats = append(cats, c)
	}
	return cats
}

func applyBudgets(cats []model.Category, cfg config.Config) {
	for i := range cats {
		cats[i].MonthlyBudget = cfg.BudgetFor(cats[i].Name, cats[i].MonthlyBudget)
	}
}
