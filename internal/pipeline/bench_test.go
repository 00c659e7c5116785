package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/source"
)

func benchLedger() []time.Time {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	months := make([]time.Time, 12)
	for i := range months {
		months[i] = base.AddDate(0, i, 0)
	}
	return months
}

func BenchmarkAggregateCategories(b *testing.B) {
	txs := source.DemoTransactions(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local))
	for _, m := range benchLedger()[1:] {
		txs = append(txs, source.DemoTransactions(m)...)
	}
	cats := source.DemoCategories()
	since, until := MonthRange(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateCategories(txs, cats, since, until)
	}
}

func BenchmarkSeriesLayout(b *testing.B) {
	month := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	since, until := MonthRange(month)
	spends := AggregateCategories(source.DemoTransactions(month), source.DemoCategories(), since, until)
	geom, err := chart.NewGeometry(200, 28)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := chart.LayoutSegments(Series(spends), geom, chart.DefaultGapDegrees); err != nil {
			b.Fatal(err)
		}
	}
}
