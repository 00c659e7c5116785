package pipeline

import (
	"time"

	"github.com/theirongolddev/budgetring/internal/model"
)

// CompareMonths aggregates the month containing month against the month
// before it.
func CompareMonths(txs []model.Transaction, month time.Time) model.PeriodComparison {
	since, until := MonthRange(month)
	prevSince, prevUntil := MonthRange(since.AddDate(0, -1, 0))
	return model.PeriodComparison{
		Current:  Aggregate(txs, since, until),
		Previous: Aggregate(txs, prevSince, prevUntil),
	}
}

// CategoryDeltas aggregates categories for month and fills each row's Delta
// with the change against the previous month.
func CategoryDeltas(txs []model.Transaction, cats []model.Category, month time.Time) []model.CategorySpend {
	since, until := MonthRange(month)
	current := AggregateCategories(txs, cats, since, until)
	previous := AggregateCategories(txs, cats, since.AddDate(0, -1, 0), since)

	prev := make(map[string]float64, len(previous))
	for _, cs := range previous {
		prev[cs.Category] = cs.Spent
	}
	for i := range current {
		current[i].Delta = current[i].Spent - prev[current[i].Category]
	}
	return current
}
