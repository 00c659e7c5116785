// Package tui provides the interactive Bubble Tea dashboard for budgetring.
package tui

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Data     *pipeline.Dataset
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports import progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// Options configures NewApp.
type Options struct {
	Load     pipeline.LoadOptions
	Month    time.Time
	Category string
	Config   config.Config
	// Bell receives the haptic bell. Nil disables it.
	Bell io.Writer
}

// Tab indices, matching components.Tabs.
const (
	tabOverview = iota
	tabTransactions
	tabBudgets
	tabTrend
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	data     *pipeline.Dataset
	loaded   bool
	loadErr  error
	loadTime time.Duration
	loadOpts pipeline.LoadOptions

	// Pre-computed for the current month and category filter
	txs    []model.Transaction // newest first
	stats  model.SummaryStats
	prev   model.SummaryStats
	spends []model.CategorySpend
	budget model.BudgetStats
	days   []model.DailySpend
	months []model.MonthlySpend

	// Rendering
	cfg   config.Config
	money *cli.CurrencyFormatter
	donut *chart.Donut

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	message   string

	// Filter state
	month    time.Time
	category string

	// Per-tab state
	txState  transactionsState
	trendSel int
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	// Loading, channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	headerHeight     = 2 // tab bar + filter row
	minContentHeight = 5
	trendMonths      = 6
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(err))
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	month := opts.Month
	if month.IsZero() {
		month = time.Now()
	}
	opts.Load.Config = opts.Config
	if opts.Load.Month.IsZero() {
		opts.Load.Month = month
	}

	a := App{
		loadOpts:  opts.Load,
		cfg:       opts.Config,
		money:     cli.MustCurrencyFormatter(opts.Config.Currency.Code, opts.Config.Currency.Locale),
		month:     model.MonthStart(month),
		category:  opts.Category,
		needSetup: !config.Exists(),
		trendSel:  -1,
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
	}

	cc := opts.Config.Chart
	donut, err := chart.NewDonut(chart.DonutOptions{
		Size:        cc.Size,
		StrokeWidth: cc.StrokeWidth,
		GapDegrees:  cc.GapDegrees,
		Tooltip: chart.TooltipPlacement{
			Box:     chart.TooltipBox{Width: cc.TooltipWidth, Height: cc.TooltipHeight},
			Padding: cc.TooltipPadding,
			Offset:  cc.TooltipOffset,
		},
		Haptics: newBell(opts.Bell, opts.Config.Feedback.Haptics),
	})
	if err != nil {
		logger.Warn("chart config invalid, using defaults", zap.Error(err))
		donut, _ = chart.NewDonut(chart.DonutOptions{
			Size:        200,
			StrokeWidth: 28,
			GapDegrees:  chart.DefaultGapDegrees,
			Haptics:     newBell(opts.Bell, opts.Config.Feedback.Haptics),
		})
	}
	a.donut = donut
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.loadOpts, a.loadSub),
		a.spinner.Tick,
	)
}

// recompute refreshes every derived view of the data for the current month
// and category. Replacing the donut series resets its selection.
func (a *App) recompute() {
	if a.data == nil {
		return
	}
	now := time.Now()
	txs := pipeline.FilterByCategory(a.data.Transactions, a.category)
	since, until := pipeline.MonthRange(a.month)

	cmp := pipeline.CompareMonths(txs, a.month)
	a.stats, a.prev = cmp.Current, cmp.Previous
	a.spends = pipeline.CategoryDeltas(txs, a.data.Categories, a.month)
	a.budget = pipeline.AggregateBudget(txs, a.data.Categories, a.month, now, a.cfg.Budget.MonthlyTotal)
	a.days = pipeline.AggregateDays(txs, since, until)
	a.months = pipeline.AggregateMonths(txs, a.month, trendMonths)

	a.txs = pipeline.FilterByTime(txs, since, until)
	a.txs = append([]model.Transaction(nil), a.txs...)
	sort.SliceStable(a.txs, func(i, j int) bool {
		return a.txs[i].Date.After(a.txs[j].Date)
	})
	a.txState.cursor = min(a.txState.cursor, max(len(a.txs)-1, 0))
	a.trendSel = -1

	// An empty month lays out nothing; the overview shows its empty state.
	if err := a.donut.SetSeries(pipeline.Series(a.spends)); err != nil && !errors.Is(err, chart.ErrDivisionByZero) {
		logger.Warn("donut layout failed", zap.Error(err))
		a.message = "chart unavailable: " + err.Error()
	}
}

// shiftMonth moves the viewed month by delta months.
func (a *App) shiftMonth(delta int) {
	a.month = a.month.AddDate(0, delta, 0)
	a.txState = transactionsState{}
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.message = ""
		if handled, next, cmd := a.updateTabKeys(key); handled {
			return next, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "[":
			a.shiftMonth(-1)
		case "]":
			a.shiftMonth(1)
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "shift+tab", "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.data = &pipeline.Dataset{}
			a.message = "load failed: " + msg.Err.Error()
		} else {
			a.data = msg.Data
		}
		a.recompute()

		if a.needSetup {
			vals := DefaultSetupValues(a.cfg)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(len(a.data.Transactions), a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

// updateTabKeys gives the active tab first pick of a key press.
func (a App) updateTabKeys(key string) (bool, tea.Model, tea.Cmd) {
	switch a.activeTab {
	case tabOverview:
		return a.updateOverviewKeys(key)
	case tabTransactions:
		return a.updateTransactionsKeys(key)
	case tabTrend:
		return a.updateTrendKeys(key)
	case tabSettings:
		return a.updateSettingsKeys(key)
	}
	return false, a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabTransactions {
			a.txState.up()
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == tabTransactions {
			a.txState.down(len(a.txs))
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		if a.activeTab == tabOverview {
			a.clickOverview(msg.X, msg.Y)
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := loadConfigOrDefault()
		a.setupVals.Apply(&cfg)
		if err := config.Save(cfg); err != nil {
			a.message = "could not save config: " + err.Error()
		}
		a.applyConfig(cfg)
		a.needSetup = false
		a.setupForm = nil
		return a, nil

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// applyConfig swaps in settings that affect rendering.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.money = cli.MustCurrencyFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	theme.SetActive(cfg.Appearance.Theme)
	a.recompute()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// contentOffsetX is the left margin when content is centered in a wide
// terminal.
func (a App) contentOffsetX() int {
	return max(a.width-a.contentWidth(), 0) / 2
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetring needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◔ budgetring"))
	b.WriteString(subtitleStyle.Render(" · where the money went"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := min(max(a.width-30, 20), 40)
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Importing statements\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Opening ledger..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t b n x", "Jump to tab"},
			{"tab", "Next / previous tab"},
			{"[ ]", "Previous / next month"},
			{"j k", "Navigate lists"},
		}},
		{"Chart", []struct{ key, desc string }{
			{"← → h l", "Previous / next segment"},
			{"click", "Select segment"},
			{"Esc", "Dismiss tooltip"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◔ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + filter pill
	filterPillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	filterAccentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	filterStr := filterPillStyle.Render(" ") + filterAccentStyle.Render(cli.FormatMonth(a.month))
	if a.category != "" {
		filterStr += filterPillStyle.Render(" │ ") + filterAccentStyle.Render(a.category)
	}
	filterStr += filterPillStyle.Render(" · " + a.money.Code() + "   ")
	if a.budget.Budget > 0 && !a.isCompactLayout() {
		filterStr += components.CompactBudgetBar("budget", a.budget.Spent/a.budget.Budget, 30)
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filterStr)

	// 2. Status bar
	info := fmt.Sprintf("%s tx · %.1fs", cli.FormatNumber(int64(len(a.data.Transactions))), a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, a.message, info)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabTrend:
		content = a.renderTrendTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines, fill gaps between cards
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 6. Center content when the terminal is wider than maxContentWidth
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd starts the data pipeline in a background goroutine. It
// streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(opts pipeline.LoadOptions, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so import workers aren't stalled. If the
			// channel is full the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			ds, err := pipeline.Load(opts, progressFn)
			if err != nil {
				logger.Error("loading dataset", zap.Error(err))
			}
			sub <- DataLoadedMsg{Data: ds, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
