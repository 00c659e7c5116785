package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/config"
)

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	SetupValues{
		Currency: "eur",
		Locale:   "de-DE",
		Theme:    "tokyo-night",
		Budget:   " 1800 ",
		Haptics:  false,
	}.Apply(&cfg)

	assert.Equal(t, "EUR", cfg.Currency.Code)
	assert.Equal(t, "de-DE", cfg.Currency.Locale)
	assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)
	assert.False(t, cfg.Feedback.Haptics)
	require.NotNil(t, cfg.Budget.MonthlyTotal)
	assert.InDelta(t, 1800, *cfg.Budget.MonthlyTotal, 1e-9)
}

func TestSetupValuesApplyKeepsInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	total := 900.0
	cfg.Budget.MonthlyTotal = &total

	SetupValues{Currency: "XYZW", Locale: "not a locale!", Theme: "neon", Budget: "lots"}.Apply(&cfg)
	assert.Equal(t, "USD", cfg.Currency.Code)
	assert.Equal(t, "en-US", cfg.Currency.Locale)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	require.NotNil(t, cfg.Budget.MonthlyTotal)
	assert.InDelta(t, 900, *cfg.Budget.MonthlyTotal, 1e-9)

	SetupValues{Currency: "USD", Budget: ""}.Apply(&cfg)
	assert.Nil(t, cfg.Budget.MonthlyTotal, "empty budget clears the override")
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, validateBudget(""))
	assert.NoError(t, validateBudget("12.5"))
	assert.Error(t, validateBudget("-3"))
	assert.Error(t, validateBudget("abc"))
}

func TestDefaultSetupValues(t *testing.T) {
	cfg := config.DefaultConfig()
	total := 1200.0
	cfg.Budget.MonthlyTotal = &total
	v := DefaultSetupValues(cfg)
	assert.Equal(t, "USD", v.Currency)
	assert.Equal(t, "1200", v.Budget)
	assert.True(t, v.Haptics)
}

func TestBell(t *testing.T) {
	assert.Nil(t, newBell(nil, true))
	assert.Nil(t, newBell(&bytes.Buffer{}, false))

	var buf bytes.Buffer
	h := newBell(&buf, true)
	h.Trigger(chart.HapticLight)
	assert.Empty(t, buf.String())
	h.Trigger(chart.HapticSelection)
	assert.Equal(t, "\a", buf.String())
}
