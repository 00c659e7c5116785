package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

const (
	settingsFieldCurrency = iota
	settingsFieldLocale
	settingsFieldTheme
	settingsFieldBudget
	settingsFieldHaptics
	settingsFieldGap
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save or validation failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKeys(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		m, cmd := a.settingsStartEdit()
		return true, m, cmd
	default:
		return false, a, nil
	}
	return true, a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = "USD"
		ti.CharLimit = 3
		ti.SetValue(cfg.Currency.Code)
	case settingsFieldLocale:
		ti.Placeholder = "en-US"
		ti.SetValue(cfg.Currency.Locale)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldBudget:
		ti.Placeholder = "2500 (leave empty to use category budgets)"
		if cfg.Budget.MonthlyTotal != nil {
			ti.SetValue(strconv.FormatFloat(*cfg.Budget.MonthlyTotal, 'f', -1, 64))
		}
	case settingsFieldHaptics:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(cfg.Feedback.Haptics))
	case settingsFieldGap:
		ti.Placeholder = "2 (degrees between segments)"
		ti.SetValue(strconv.FormatFloat(cfg.Chart.GapDegrees, 'f', -1, 64))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field and persists it. Invalid input
// is reported and leaves the config unchanged.
func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	var err error
	switch a.settings.cursor {
	case settingsFieldCurrency:
		code := strings.ToUpper(val)
		if _, err = cli.NewCurrencyFormatter(code, "en-US"); err == nil {
			cfg.Currency.Code = code
		}
	case settingsFieldLocale:
		if _, err = cli.NewCurrencyFormatter("USD", val); err == nil {
			cfg.Currency.Locale = val
		}
	case settingsFieldTheme:
		if _, ok := theme.Lookup(val); ok {
			cfg.Appearance.Theme = val
		} else {
			err = fmt.Errorf("unknown theme %q", val)
		}
	case settingsFieldBudget:
		if val == "" {
			cfg.Budget.MonthlyTotal = nil
		} else if err = validateBudget(val); err == nil {
			b, _ := strconv.ParseFloat(val, 64)
			cfg.Budget.MonthlyTotal = &b
		}
	case settingsFieldHaptics:
		var on bool
		if on, err = strconv.ParseBool(val); err == nil {
			cfg.Feedback.Haptics = on
		}
	case settingsFieldGap:
		var g float64
		g, err = strconv.ParseFloat(val, 64)
		if err == nil && (g < 0 || g >= 30) {
			err = errors.New("gap must be between 0 and 30 degrees")
		}
		if err == nil {
			cfg.Chart.GapDegrees = g
		}
	}
	if err != nil {
		a.settings.saveErr = err
		return
	}

	a.settings.saveErr = config.Save(cfg)
	a.applyConfig(cfg)
	if a.settings.cursor == settingsFieldHaptics || a.settings.cursor == settingsFieldGap {
		a.message = "restart to apply chart changes"
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	budget := "(sum of categories)"
	if cfg.Budget.MonthlyTotal != nil {
		budget = a.money.FormatCurrency(*cfg.Budget.MonthlyTotal)
	}

	fields := []struct{ label, value string }{
		{"Currency", cfg.Currency.Code + " (" + a.money.Symbol() + ")"},
		{"Locale", cfg.Currency.Locale},
		{"Theme", cfg.Appearance.Theme},
		{"Monthly Budget", budget},
		{"Bell on Select", strconv.FormatBool(cfg.Feedback.Haptics)},
		{"Segment Gap", strconv.FormatFloat(cfg.Chart.GapDegrees, 'f', -1, 64) + "°"},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	dbPath := a.loadOpts.DBPath
	if a.loadOpts.Demo {
		dbPath = "(demo data, nothing is saved)"
	} else if dbPath == "" {
		dbPath = pipeline.LedgerPath()
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Ledger:        ") + valueStyle.Render(dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Transactions:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.data.Transactions)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Categories:    ") + valueStyle.Render(cli.FormatNumber(int64(len(a.data.Categories)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:     ") + valueStyle.Render(fmt.Sprintf("%.1fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
