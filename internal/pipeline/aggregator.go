// Package pipeline orchestrates ledger loading, importing, and spending
// aggregation.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/model"
)

// MonthRange returns [start of month, start of next month) for t.
func MonthRange(t time.Time) (since, until time.Time) {
	since = model.MonthStart(t)
	return since, since.AddDate(0, 1, 0)
}

// FilterByTime returns transactions dated within [since, until). Zero
// bounds are open.
func FilterByTime(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, t := range txs {
		if !since.IsZero() && t.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Date.Before(until) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// FilterByMonth returns transactions in the calendar month containing month.
func FilterByMonth(txs []model.Transaction, month time.Time) []model.Transaction {
	since, until := MonthRange(month)
	return FilterByTime(txs, since, until)
}

// FilterByCategory returns transactions whose category contains the substring.
func FilterByCategory(txs []model.Transaction, category string) []model.Transaction {
	if category == "" {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if containsIgnoreCase(t.Category, category) {
			result = append(result, t)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Aggregate computes summary statistics for transactions within the range.
func Aggregate(txs []model.Transaction, since, until time.Time) model.SummaryStats {
	filtered := FilterByTime(txs, since, until)

	stats := model.SummaryStats{Since: since, Until: until}
	activeDays := make(map[string]struct{})
	byCategory := make(map[string]float64)

	for _, t := range filtered {
		stats.Transactions++
		if t.Amount >= 0 {
			stats.TotalSpent += t.Amount
		} else {
			stats.TotalRefunds -= t.Amount
		}
		byCategory[t.Category] += t.Amount
		activeDays[t.Date.Format("2006-01-02")] = struct{}{}
	}
	stats.TotalSpent -= stats.TotalRefunds
	stats.ActiveDays = len(activeDays)

	if stats.ActiveDays > 0 {
		stats.SpendPerDay = stats.TotalSpent / float64(stats.ActiveDays)
	}
	for name, amt := range byCategory {
		if amt > stats.LargestAmount || (amt == stats.LargestAmount && name < stats.LargestCategory) {
			stats.LargestCategory, stats.LargestAmount = name, amt
		}
	}
	return stats
}

// AggregateCategories computes per-category spending within the range,
// sorted by spend descending. Every category in cats appears even when
// nothing was spent, so budget screens can show untouched budgets;
// categories that only occur in transactions get a derived color.
// Refunds can reduce a category to zero but never below.
func AggregateCategories(txs []model.Transaction, cats []model.Category, since, until time.Time) []model.CategorySpend {
	filtered := FilterByTime(txs, since, until)

	catMap := make(map[string]*model.CategorySpend, len(cats))
	for _, c := range cats {
		catMap[c.Name] = &model.CategorySpend{Category: c.Name, Color: c.Color, Budget: c.MonthlyBudget}
	}

	for _, t := range filtered {
		cs, ok := catMap[t.Category]
		if !ok {
			cs = &model.CategorySpend{Category: t.Category, Color: config.ColorFor(t.Category)}
			catMap[t.Category] = cs
		}
		cs.Spent += t.Amount
		cs.Transactions++
	}

	var total float64
	spends := make([]model.CategorySpend, 0, len(catMap))
	for _, cs := range catMap {
		if cs.Spent < 0 {
			cs.Spent = 0
		}
		total += cs.Spent
		spends = append(spends, *cs)
	}
	for i := range spends {
		if total > 0 {
			spends[i].Share = spends[i].Spent / total * 100
		}
	}

	sort.Slice(spends, func(i, j int) bool {
		if spends[i].Spent != spends[j].Spent {
			return spends[i].Spent > spends[j].Spent
		}
		return spends[i].Category < spends[j].Category
	})
	return spends
}

// AggregateDays computes net spending per calendar day in [since, until),
// oldest first. Days without transactions are present with zero amounts so
// the line chart shows gaps as zeros.
func AggregateDays(txs []model.Transaction, since, until time.Time) []model.DailySpend {
	filtered := FilterByTime(txs, since, until)

	dayMap := make(map[string]*model.DailySpend)
	for _, t := range filtered {
		key := t.Date.Format("2006-01-02")
		ds, ok := dayMap[key]
		if !ok {
			ds = &model.DailySpend{Date: model.Day(t.Date)}
			dayMap[key] = ds
		}
		ds.Amount += t.Amount
		ds.Transactions++
	}

	if !since.IsZero() && !until.IsZero() {
		for day := model.Day(since); day.Before(until); day = day.AddDate(0, 0, 1) {
			key := day.Format("2006-01-02")
			if _, ok := dayMap[key]; !ok {
				dayMap[key] = &model.DailySpend{Date: day}
			}
		}
	}

	days := make([]model.DailySpend, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// AggregateBudget computes budget usage and a month-end forecast for the
// month containing month, as seen at now. A non-nil monthlyTotal replaces
// the sum of category budgets.
func AggregateBudget(txs []model.Transaction, cats []model.Category, month, now time.Time, monthlyTotal *float64) model.BudgetStats {
	since, until := MonthRange(month)
	spends := AggregateCategories(txs, cats, since, until)

	var stats model.BudgetStats
	for _, cs := range spends {
		stats.Spent += cs.Spent
		stats.Budget += cs.Budget
		if cs.Budget > 0 && cs.Spent > cs.Budget {
			stats.OverBudgetByCount++
		}
	}
	if monthlyTotal != nil {
		stats.Budget = *monthlyTotal
	}

	daysInMonth := since.AddDate(0, 1, -1).Day()
	elapsed := daysInMonth
	switch {
	case now.Before(since):
		elapsed = 0
	case now.Before(until):
		elapsed = now.Day()
	}
	stats.DaysRemaining = daysInMonth - elapsed

	if elapsed > 0 {
		stats.DailyBurnRate = stats.Spent / float64(elapsed)
		stats.ProjectedMonthly = stats.DailyBurnRate * float64(daysInMonth)
	}
	if stats.Budget > 0 {
		stats.UsedPercent = stats.Spent / stats.Budget * 100
	}
	stats.OverBudget = stats.Budget > 0 && stats.Spent > stats.Budget
	return stats
}

// Series converts category spending into donut chart entries. Categories
// with nothing spent are left out; the legend only lists what the ring
// shows.
func Series(spends []model.CategorySpend) []chart.Entry {
	entries := make([]chart.Entry, 0, len(spends))
	for _, cs := range spends {
		if cs.Spent <= 0 {
			continue
		}
		entries = append(entries, chart.Entry{Label: cs.Category, Value: cs.Spent, Color: cs.Color})
	}
	return entries
}

// DailyValues extracts the amounts of days for the line chart.
func DailyValues(days []model.DailySpend) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Amount
	}
	return out
}

// AggregateMonths returns net spending for the n months ending with the
// month containing month, oldest first.
func AggregateMonths(txs []model.Transaction, month time.Time, n int) []model.MonthlySpend {
	if n <= 0 {
		return nil
	}
	first := model.MonthStart(month).AddDate(0, -(n - 1), 0)
	months := make([]model.MonthlySpend, n)
	for i := range months {
		months[i].Month = first.AddDate(0, i, 0)
	}
	for _, t := range FilterByTime(txs, first, first.AddDate(0, n, 0)) {
		ms := model.MonthStart(t.Date)
		i := (ms.Year()-first.Year())*12 + int(ms.Month()-first.Month())
		if i < 0 || i >= n {
			continue
		}
		months[i].Amount += t.Amount
		months[i].Transactions++
	}
	return months
}

// MonthlyValues extracts the amounts of months for the bar chart.
func MonthlyValues(months []model.MonthlySpend) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		out[i] = m.Amount
	}
	return out
}
