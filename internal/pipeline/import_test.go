package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/store"
)

func writeImport(t *testing.T, dir, rel string, lines ...string) string {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestImport_ParsesAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeImport(t, dir, "checking.jsonl",
		`{"date":"2025-06-01","category":"Groceries","amount":12}`,
		`garbage`,
	)
	writeImport(t, dir, "card/june.jsonl",
		`{"date":"2025-06-02","category":"Dining","amount":8}`,
		`{"date":"2025-06-03","category":"Dining","amount":9}`,
	)

	var calls atomic.Int32
	res, err := Import(dir, func(current, total int) {
		calls.Add(1)
		if total != 2 || current < 1 || current > 2 {
			t.Errorf("progress %d/%d out of range", current, total)
		}
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.TotalFiles != 2 || res.ParsedFiles != 2 || res.AccountCount != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Transactions) != 3 || res.ParseErrors != 1 {
		t.Errorf("got %d transactions and %d parse errors, want 3 and 1", len(res.Transactions), res.ParseErrors)
	}
	if calls.Load() != 2 {
		t.Errorf("progress called %d times, want 2", calls.Load())
	}
}

func TestImport_EmptyDir(t *testing.T) {
	res, err := Import(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.TotalFiles != 0 || len(res.Transactions) != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestImportIntoLedger_Incremental(t *testing.T) {
	dir := t.TempDir()
	path := writeImport(t, dir, "checking.jsonl",
		`{"date":"2025-06-01","category":"Groceries","amount":12}`,
		`{"date":"2025-06-02","category":"Dining","amount":8}`,
	)

	ledger, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ledger.Close() }()

	first, err := ImportIntoLedger(dir, ledger, nil)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Reimported != 1 || first.Unchanged != 0 || len(first.Transactions) != 2 {
		t.Errorf("first import = %+v", first)
	}

	second, err := ImportIntoLedger(dir, ledger, nil)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Reimported != 0 || second.Unchanged != 1 {
		t.Errorf("second import = %+v, want file unchanged", second)
	}

	// Rewriting the file with one row removed must drop that row.
	writeImport(t, dir, "checking.jsonl",
		`{"date":"2025-06-01","category":"Groceries","amount":12}`,
	)
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	third, err := ImportIntoLedger(dir, ledger, nil)
	if err != nil {
		t.Fatalf("third import: %v", err)
	}
	if third.Reimported != 1 {
		t.Errorf("third import = %+v, want file re-imported", third)
	}
	if n, _ := ledger.TransactionCount(); n != 1 {
		t.Errorf("TransactionCount = %d, want 1 after shrinking the file", n)
	}
}

func TestLoad_Demo(t *testing.T) {
	limit := 75.0
	cfg := config.DefaultConfig()
	cfg.Budget.Categories = map[string]float64{"dining": limit}

	ds, err := Load(LoadOptions{Demo: true, Month: day(2025, 6, 15), Config: cfg}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Categories) == 0 || len(ds.Transactions) == 0 {
		t.Fatal("demo dataset is empty")
	}
	if got := FilterByMonth(ds.Transactions, day(2025, 5, 1)); len(got) == 0 {
		t.Error("demo dataset has no previous month to compare against")
	}
	for _, c := range ds.Categories {
		if c.Name == "Dining" && c.MonthlyBudget != limit {
			t.Errorf("Dining budget = %v, want override %v", c.MonthlyBudget, limit)
		}
	}
}

func TestLoad_LedgerSeedsOnceAndAddsCategories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	dir := t.TempDir()
	writeImport(t, dir, "misc.jsonl", `{"date":"2025-06-04","category":"pet care","amount":30}`)

	opts := LoadOptions{DBPath: dbPath, ImportDir: dir, Month: day(2025, 6, 15), Config: config.DefaultConfig()}
	first, err := Load(opts, nil)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if !first.Seeded {
		t.Error("first Load did not seed")
	}
	if first.Import == nil || first.Import.Reimported != 1 {
		t.Errorf("import = %+v", first.Import)
	}

	var found bool
	for _, c := range first.Categories {
		if c.Name == "Pet Care" {
			found = c.Color != ""
		}
	}
	if !found {
		t.Error("imported category missing or uncolored")
	}

	second, err := Load(opts, nil)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if second.Seeded {
		t.Error("second Load seeded again")
	}
	if len(second.Transactions) != len(first.Transactions) {
		t.Errorf("transaction count changed: %d -> %d", len(first.Transactions), len(second.Transactions))
	}
	if len(second.Categories) != len(first.Categories) {
		t.Errorf("category count changed: %d -> %d", len(first.Categories), len(second.Categories))
	}
}
