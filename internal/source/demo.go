package source

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/model"
)

// DemoCategories returns the built-in category set with default colors and
// budgets.
func DemoCategories() []model.Category {
	names := config.CategoryNames()
	cats := make([]model.Category, 0, len(names))
	for _, n := range names {
		d := config.DefaultCategories[n]
		cats = append(cats, model.Category{Name: n, Color: d.Color, MonthlyBudget: d.MonthlyBudget})
	}
	return cats
}

type recurring struct {
	day         int
	category    string
	description string
	amount      float64
}

var demoBills = []recurring{
	{1, "Rent", "Monthly rent", 1400},
	{5, "Utilities", "Electricity", 82.40},
	{12, "Utilities", "Internet", 59.99},
	{14, "Entertainment", "Streaming subscription", 15.49},
	{20, "Utilities", "Water", 31.25},
	{22, "Health", "Gym membership", 39},
}

type discretionary struct {
	category     string
	descriptions []string
	everyDays    int
	minAmount    float64
	maxAmount    float64
}

var demoSpending = []discretionary{
	{"Groceries", []string{"Farmers market", "Supermarket", "Corner shop"}, 3, 24, 118},
	{"Transport", []string{"Transit pass top-up", "Rideshare", "Fuel"}, 4, 6, 48},
	{"Dining", []string{"Lunch", "Coffee", "Dinner out", "Takeaway"}, 3, 5, 64},
	{"Shopping", []string{"Household supplies", "Books", "Clothing"}, 9, 12, 85},
	{"Entertainment", []string{"Cinema", "Concert tickets", "Games"}, 11, 10, 60},
	{"Health", []string{"Pharmacy"}, 16, 8, 35},
}

// DemoTransactions generates a deterministic month of transactions for the
// month containing ref. The same month always yields the same ledger, with
// the same IDs, so seeding is idempotent.
func DemoTransactions(ref time.Time) []model.Transaction {
	start := model.MonthStart(ref)
	days := start.AddDate(0, 1, -1).Day()
	seed := uint64(start.Year())*100 + uint64(start.Month())
	rng := rand.New(rand.NewPCG(seed, 0x6275646765747269))

	var txs []model.Transaction
	add := func(day int, category, desc string, amount float64) {
		date := start.AddDate(0, 0, day-1)
		key := fmt.Sprintf("demo|%s|%d", date.Format("2006-01-02"), len(txs))
		txs = append(txs, model.Transaction{
			ID:          model.TransactionID(key),
			Category:    category,
			Description: desc,
			Amount:      amount,
			Date:        date,
		})
	}

	for _, b := range demoBills {
		if b.day <= days {
			add(b.day, b.category, b.description, b.amount)
		}
	}
	for _, d := range demoSpending {
		for day := 1 + rng.IntN(d.everyDays); day <= days; day += d.everyDays + rng.IntN(2) {
			amt := d.minAmount + rng.Float64()*(d.maxAmount-d.minAmount)
			add(day, d.category, d.descriptions[rng.IntN(len(d.descriptions))], math.Round(amt*100)/100)
		}
	}

	// One refund keeps the negative-amount path exercised.
	add(min(18, days), "Shopping", "Returned item", -19.99)
	return txs
}
