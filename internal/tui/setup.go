package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// SetupValues holds the answers of the first-run form.
type SetupValues struct {
	Currency string
	Locale   string
	Theme    string
	Budget   string // monthly total, empty to derive from categories
	Haptics  bool
}

// DefaultSetupValues pre-fills the form from cfg, falling back to the
// detected locale for unset currency fields.
func DefaultSetupValues(cfg config.Config) SetupValues {
	v := SetupValues{
		Currency: cfg.Currency.Code,
		Locale:   cfg.Currency.Locale,
		Theme:    cfg.Appearance.Theme,
		Haptics:  cfg.Feedback.Haptics,
	}
	if v.Currency == "" || v.Locale == "" {
		li := config.DetectLocale()
		if v.Currency == "" {
			v.Currency = li.Currency
		}
		if v.Locale == "" {
			v.Locale = li.Locale
		}
	}
	if v.Theme == "" {
		v.Theme = theme.FlexokiDark.Name
	}
	if cfg.Budget.MonthlyTotal != nil {
		v.Budget = strconv.FormatFloat(*cfg.Budget.MonthlyTotal, 'f', -1, 64)
	}
	return v
}

// NewSetupForm builds the first-run form bound to vals. It is shared by
// the dashboard and the setup command.
func NewSetupForm(txCount int, vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	welcome := "Let's set a few things up."
	if txCount > 0 {
		welcome = fmt.Sprintf("Found %s transactions in your ledger. Let's set a few things up.", cli.FormatNumber(int64(txCount)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetring").
				Description(welcome),
			huh.NewInput().
				Title("Currency").
				Description("ISO 4217 code used for all amounts.").
				Placeholder("USD").
				CharLimit(3).
				Value(&vals.Currency).
				Validate(validateCurrency),
			huh.NewInput().
				Title("Locale").
				Description("Controls digit grouping and decimal marks.").
				Placeholder("en-US").
				Value(&vals.Locale),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget").
				Description("Leave empty to use the sum of category budgets.").
				Placeholder("2500").
				Value(&vals.Budget).
				Validate(validateBudget),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Ring the bell when a segment is selected?").
				Value(&vals.Haptics),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(true)
}

func validateCurrency(s string) error {
	_, err := cli.NewCurrencyFormatter(strings.ToUpper(strings.TrimSpace(s)), "en-US")
	return err
}

func validateBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number, e.g. 2500")
	}
	if v <= 0 {
		return errors.New("budget must be positive")
	}
	return nil
}

// Apply copies the answers into cfg. Values that fail validation are left
// untouched.
func (v SetupValues) Apply(cfg *config.Config) {
	if code := strings.ToUpper(strings.TrimSpace(v.Currency)); validateCurrency(code) == nil {
		cfg.Currency.Code = code
	}
	if loc := strings.TrimSpace(v.Locale); loc != "" {
		if _, err := cli.NewCurrencyFormatter("USD", loc); err == nil {
			cfg.Currency.Locale = loc
		}
	}
	if _, ok := theme.Lookup(v.Theme); ok {
		cfg.Appearance.Theme = v.Theme
	}
	cfg.Feedback.Haptics = v.Haptics

	budget := strings.TrimSpace(v.Budget)
	switch {
	case budget == "":
		cfg.Budget.MonthlyTotal = nil
	case validateBudget(budget) == nil:
		b, _ := strconv.ParseFloat(budget, 64)
		cfg.Budget.MonthlyTotal = &b
	}
}
