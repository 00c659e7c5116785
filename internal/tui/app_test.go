package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/render"
)

func june(d int) time.Time {
	return time.Date(2025, time.June, d, 12, 0, 0, 0, time.Local)
}

func testDataset() *pipeline.Dataset {
	tx := func(key, cat string, amount float64, date time.Time) model.Transaction {
		return model.Transaction{ID: model.TransactionID(key), Category: cat, Description: key, Amount: amount, Date: date}
	}
	return &pipeline.Dataset{
		Categories: []model.Category{
			{Name: "Groceries", Color: "#4385BE", MonthlyBudget: 400},
			{Name: "Transport", Color: "#879A39", MonthlyBudget: 100},
			{Name: "Rent", Color: "#878580", MonthlyBudget: 50},
		},
		Transactions: []model.Transaction{
			tx("market", "Groceries", 250, june(2)),
			tx("bus pass", "Transport", 70, june(3)),
			tx("storage", "Rent", 34, june(5)),
			tx("may market", "Groceries", 200, june(2).AddDate(0, -1, 0)),
		},
	}
}

type appOption func(*Options)

func withBell(w *bytes.Buffer) appOption {
	return func(o *Options) {
		o.Bell = w
		o.Config.Feedback.Haptics = true
	}
}

// loadedApp returns an App that has received its data, sized 120×40, with
// a config file present so the setup form stays closed.
func loadedApp(t *testing.T, opts ...appOption) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, config.Save(config.DefaultConfig()))

	o := Options{Config: config.DefaultConfig(), Month: june(15)}
	for _, fn := range opts {
		fn(&o)
	}
	var m tea.Model = NewApp(o)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Data: testDataset()})
	return m.(App)
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m.(App)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func click(a App, x, y int) App {
	m, _ := a.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	return m.(App)
}

func TestAppLoadsMonth(t *testing.T) {
	a := loadedApp(t)
	assert.True(t, a.loaded)
	assert.False(t, a.needSetup && a.setupForm != nil)
	assert.Len(t, a.txs, 3, "only June transactions")
	assert.InDelta(t, 354, a.stats.TotalSpent, 1e-9)
	assert.InDelta(t, 200, a.prev.TotalSpent, 1e-9)
	assert.Len(t, a.donut.Segments(), 3)
	assert.Equal(t, -1, a.donut.State().Index)
}

func TestOverviewKeyboardNavigation(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, a.donut.State().Index, "first step enters at the first segment")
	assert.Equal(t, tabOverview, a.activeTab, "arrows drive the chart on the overview")

	a = press(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, a.donut.State().Index, "wraps backward")

	a = press(t, a, runes("2"))
	assert.Equal(t, 1, a.donut.State().Index)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	st := a.donut.State()
	assert.False(t, st.Selected)
	assert.False(t, st.TooltipVisible)
}

func TestMonthSwitchResetsSelection(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("1"))
	require.True(t, a.donut.State().Selected)

	a = press(t, a, runes("["))
	assert.Equal(t, time.May, a.month.Month())
	assert.False(t, a.donut.State().Selected)
	assert.Len(t, a.donut.Segments(), 1, "May only has groceries")

	a = press(t, a, runes("]"), runes("]"))
	assert.Equal(t, time.July, a.month.Month())
	assert.True(t, a.donut.Empty())
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("b"))
	assert.Equal(t, tabBudgets, a.activeTab)
	a = press(t, a, runes("x"))
	assert.Equal(t, tabSettings, a.activeTab)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabOverview, a.activeTab, "tab wraps around")
	a = press(t, a, runes("n"))
	assert.Equal(t, tabTrend, a.activeTab)
}

// cellFor finds a donut cell whose center lies on segment i.
func cellFor(t *testing.T, a App, i int) (col, row int) {
	t.Helper()
	g := a.donutGrid()
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if got, ok := render.SegmentAt(a.donut.Segments(), a.donut.Geometry(), g.ChartPoint(c, r)); ok && got == i {
				return c, r
			}
		}
	}
	t.Fatalf("no cell on segment %d", i)
	return 0, 0
}

func TestClickSelectsSegment(t *testing.T) {
	var bell bytes.Buffer
	a := loadedApp(t, withBell(&bell))

	col, row := cellFor(t, a, 1)
	a = click(a, a.contentOffsetX()+2+col, a.donutTop()+2+row)
	assert.Equal(t, 1, a.donut.State().Index)
	assert.Equal(t, "\a", bell.String(), "a tap rings once")

	// Keyboard stepping stays quiet.
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "\a", bell.String())

	// Clicking empty space dismisses.
	a = click(a, 5, a.height-3)
	assert.False(t, a.donut.State().Selected)
}

func TestClickLegendRow(t *testing.T) {
	a := loadedApp(t)
	a = click(a, a.contentOffsetX()+donutCardW+4, a.donutTop()+2+2)
	assert.Equal(t, 2, a.donut.State().Index)
}

func TestClickTabBar(t *testing.T) {
	a := loadedApp(t)
	x := tabWidthForTest(0, 0) + 1 + 2 // inside "Transactions"
	a = click(a, x, 0)
	assert.Equal(t, tabTransactions, a.activeTab)
}

func TestViewFillsTerminal(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("1"))

	for _, tab := range []string{"o", "t", "b", "n", "x"} {
		a = press(t, a, runes(tab))
		out := a.View()
		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 40, "tab %s", tab)
		plain := ansi.Strip(out)
		assert.Contains(t, plain, "June 2025", "tab %s", tab)
	}

	a = press(t, a, runes("o"))
	plain := ansi.Strip(a.View())
	assert.Contains(t, plain, "Groceries")
	assert.Contains(t, plain, "$250.00")
}

func TestTransactionsScroll(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("t"), runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, a.txState.cursor, "cursor stops at the last row")
	assert.Equal(t, "storage", a.txs[0].Description, "newest first")
	a = press(t, a, runes("g"))
	assert.Equal(t, 0, a.txState.cursor)
}

func TestTrendSelection(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("n"), tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 29, a.trendSel, "June has 30 days; left from idle picks the last")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, a.trendSel)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, -1, a.trendSel)
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("x"), runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.settings.editing)
	a.settings.input.SetValue("neon")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.settings.editing)
	assert.Error(t, a.settings.saveErr)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
}

func TestSettingsSavesBudget(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("x"), runes("j"), runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	a.settings.input.SetValue("500")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, a.settings.saveErr)
	assert.True(t, a.settings.saved)
	assert.InDelta(t, 500, a.budget.Budget, 1e-9)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Budget.MonthlyTotal)
	assert.InDelta(t, 500, *cfg.Budget.MonthlyTotal, 1e-9)
}

func TestLoadErrorShowsEmptyDashboard(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, config.Save(config.DefaultConfig()))

	var m tea.Model = NewApp(Options{Config: config.DefaultConfig(), Month: june(1)})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Err: assert.AnError})
	a := m.(App)
	assert.True(t, a.loaded)
	assert.True(t, a.donut.Empty())
	assert.Contains(t, ansi.Strip(a.View()), "No spending")
}
