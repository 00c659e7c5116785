// Package source discovers and parses transaction files and provides the
// built-in demo ledger.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/model"
)

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Transactions []model.Transaction
	ParseErrors  int
	Err          error
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseFile reads a JSONL transaction file. Malformed lines are counted and
// skipped; only I/O failures are fatal.
//
// Rows are deduplicated by ID, keeping the last occurrence. Rows without an
// ID get one derived from their content plus an occurrence counter, so
// re-importing the same file is idempotent while two identical purchases on
// the same day stay distinct.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var (
		order       []uuid.UUID
		byID        = make(map[uuid.UUID]model.Transaction)
		occurrences = make(map[string]int)
		parseErrors int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var raw RawTransaction
		if err := json.Unmarshal(line, &raw); err != nil {
			parseErrors++
			continue
		}
		tx, err := raw.toTransaction()
		if err != nil {
			parseErrors++
			continue
		}
		tx.SourceFile = df.Path

		if raw.ID != "" {
			tx.ID = parseID(raw.ID)
		} else {
			key := contentKey(df, tx)
			occurrences[key]++
			tx.ID = model.TransactionID(fmt.Sprintf("%s#%d", key, occurrences[key]))
		}

		if _, seen := byID[tx.ID]; !seen {
			order = append(order, tx.ID)
		}
		byID[tx.ID] = tx
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}

	txs := make([]model.Transaction, 0, len(order))
	for _, id := range order {
		txs = append(txs, byID[id])
	}
	return ParseResult{Transactions: txs, ParseErrors: parseErrors}
}

func (r RawTransaction) toTransaction() (model.Transaction, error) {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount < 0 {
		return model.Transaction{}, fmt.Errorf("amount %v out of range", r.Amount)
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	amount := r.Amount
	switch strings.ToLower(r.Type) {
	case "", "expense", "debit":
	case "refund", "credit":
		amount = -amount
	default:
		return model.Transaction{}, fmt.Errorf("unknown type %q", r.Type)
	}

	return model.Transaction{
		Category:    config.NormalizeCategoryName(r.Category),
		Description: strings.TrimSpace(r.Description),
		Amount:      amount,
		Date:        date,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Local(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseID accepts UUIDs as-is and folds any other identifier into the
// ledger namespace.
func parseID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return model.TransactionID(s)
}

func contentKey(df DiscoveredFile, tx model.Transaction) string {
	return strings.Join([]string{
		df.Account,
		tx.Date.Format("2006-01-02"),
		tx.Category,
		tx.Description,
		fmt.Sprintf("%.2f", tx.Amount),
	}, "|")
}
