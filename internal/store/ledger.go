// Package store provides the SQLite-backed transaction ledger.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/theirongolddev/budgetring/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// dateLayout stores dates as sortable calendar days; time of day is not kept.
const dateLayout = "2006-01-02"

// Ledger provides SQLite-backed category and transaction storage.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "creating ledger dir")
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, errors.Wrap(err, "opening ledger db")
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// SeedIfEmpty stores cats and txs when the ledger holds no transactions.
// It reports whether seeding happened.
func (l *Ledger) SeedIfEmpty(cats []model.Category, txs []model.Transaction) (bool, error) {
	n, err := l.TransactionCount()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for i, c := range cats {
		if err := l.saveCategory(l.db, c, i); err != nil {
			return false, err
		}
	}
	if err := l.SaveTransactions(txs); err != nil {
		return false, err
	}
	return true, nil
}

// Categories returns all categories in display order.
func (l *Ledger) Categories() ([]model.Category, error) {
	rows, err := l.db.Query(`SELECT name, color, monthly_budget FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Name, &c.Color, &c.MonthlyBudget); err != nil {
			return nil, errors.Wrap(err, "scanning category")
		}
		cats = append(cats, c)
	}
	return cats, errors.Wrap(rows.Err(), "reading categories")
}

// SaveCategory inserts or updates a category. New categories sort last.
func (l *Ledger) SaveCategory(c model.Category) error {
	var next int
	if err := l.db.QueryRow(`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM categories`).Scan(&next); err != nil {
		return errors.Wrap(err, "reading category order")
	}
	return l.saveCategory(l.db, c, next)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (l *Ledger) saveCategory(db execer, c model.Category, order int) error {
	_, err := db.Exec(`INSERT INTO categories (name, color, monthly_budget, sort_order)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET color = excluded.color, monthly_budget = excluded.monthly_budget`,
		c.Name, c.Color, c.MonthlyBudget, order)
	return errors.Wrapf(err, "saving category %q", c.Name)
}

// SaveTransactions upserts transactions by ID in a single transaction.
func (l *Ledger) SaveTransactions(txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	tx, err := l.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO transactions
		(id, category, description, amount, date, source_file, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, t := range txs {
		if _, err := stmt.Exec(t.ID.String(), t.Category, t.Description, t.Amount,
			t.Date.Format(dateLayout), t.SourceFile, now); err != nil {
			return errors.Wrapf(err, "saving transaction %s", t.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing transactions")
}

// Transactions returns transactions dated within [since, until), oldest
// first. A zero bound is open.
func (l *Ledger) Transactions(since, until time.Time) ([]model.Transaction, error) {
	lo, hi := "0000-00-00", "9999-99-99"
	if !since.IsZero() {
		lo = since.Format(dateLayout)
	}
	if !until.IsZero() {
		hi = until.Format(dateLayout)
	}

	rows, err := l.db.Query(`SELECT id, category, description, amount, date, source_file
		FROM transactions WHERE date >= ? AND date < ? ORDER BY date, rowid`, lo, hi)
	if err != nil {
		return nil, errors.Wrap(err, "querying transactions")
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var id, date string
		if err := rows.Scan(&id, &t.Category, &t.Description, &t.Amount, &date, &t.SourceFile); err != nil {
			return nil, errors.Wrap(err, "scanning transaction")
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrapf(err, "transaction id %q", id)
		}
		if t.Date, err = time.ParseInLocation(dateLayout, date, time.Local); err != nil {
			return nil, errors.Wrapf(err, "transaction %s date", id)
		}
		txs = append(txs, t)
	}
	return txs, errors.Wrap(rows.Err(), "reading transactions")
}

// TransactionCount returns the number of stored transactions.
func (l *Ledger) TransactionCount() (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, errors.Wrap(err, "counting transactions")
}

// DeleteFileTransactions removes every transaction imported from filePath,
// so a changed file can be re-imported without leaving stale rows.
func (l *Ledger) DeleteFileTransactions(filePath string) error {
	_, err := l.db.Exec("DELETE FROM transactions WHERE source_file = ?", filePath)
	return errors.Wrapf(err, "deleting rows from %s", filePath)
}
