package model

// BudgetStats holds budget tracking and forecast data for one month.
type BudgetStats struct {
	Budget            float64
	Spent             float64
	UsedPercent       float64
	DailyBurnRate     float64
	ProjectedMonthly  float64
	DaysRemaining     int
	OverBudget        bool
	OverBudgetByCount int // categories past their own limit
}
