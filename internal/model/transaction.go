// Package model defines domain types for budgetring ledgers and metrics.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a spending bucket with its display color and monthly limit.
type Category struct {
	Name          string
	Color         string // hex token, e.g. "#4385BE"
	MonthlyBudget float64
}

// Transaction is one ledger entry. Positive amounts are spending; negative
// amounts are refunds against the same category.
type Transaction struct {
	ID          uuid.UUID
	Category    string
	Description string
	Amount      float64
	Date        time.Time
	SourceFile  string // empty for demo or manually entered rows
}

// ledgerNamespace scopes the deterministic IDs derived by TransactionID.
var ledgerNamespace = uuid.MustParse("6f0c2a47-3d7e-4a8b-9a55-1b7c8e2d4f90")

// TransactionID derives a stable ID from a key, so that re-importing or
// re-seeding the same rows upserts instead of duplicating them.
func TransactionID(key string) uuid.UUID {
	return uuid.NewSHA1(ledgerNamespace, []byte(key))
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first instant of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
