package model

import "time"

// SummaryStats holds the top-level aggregate for one period.
type SummaryStats struct {
	Since        time.Time
	Until        time.Time
	Transactions int
	ActiveDays   int

	TotalSpent   float64
	TotalRefunds float64
	SpendPerDay  float64

	LargestCategory string
	LargestAmount   float64
}

// CategorySpend is the spending of one category within a period.
type CategorySpend struct {
	Category     string
	Color        string
	Spent        float64 // net of refunds, never negative
	Budget       float64
	Share        float64 // 0-100 share of total spending
	Transactions int
	Delta        float64 // change against the previous period
}

// DailySpend is the net spending of one calendar day.
type DailySpend struct {
	Date         time.Time
	Amount       float64
	Transactions int
}

// PeriodComparison holds current and previous period data for delta computation.
type PeriodComparison struct {
	Current  SummaryStats
	Previous SummaryStats
}

// MonthlySpend is the net spending of one calendar month.
type MonthlySpend struct {
	Month        time.Time
	Amount       float64
	Transactions int
}
