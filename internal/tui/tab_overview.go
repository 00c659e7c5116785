package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/render"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// Donut size in terminal cells. Each cell carries two vertical samples, so
// 22×11 cells is a 22×22 sample square.
const (
	donutCols = 22
	donutRows = 11

	// border + padding on each side of a ContentCard
	cardChromeW = 4
	donutCardW  = donutCols + cardChromeW
)

func (a App) overviewMetrics() []components.Metric {
	cur, prev := a.stats.TotalSpent, a.prev.TotalSpent

	spent := components.Metric{
		Label: "Spent",
		Value: a.money.FormatCurrency(cur),
		Delta: cli.FormatPercentDelta(cur, prev) + " vs last month",
	}
	switch {
	case prev == 0:
	case cur > prev:
		spent.Tone = components.ToneBad
	default:
		spent.Tone = components.ToneGood
	}

	used := components.Metric{Label: "Budget used", Value: "n/a", Delta: "no budget set"}
	if a.budget.Budget > 0 {
		used.Value = cli.FormatPercent(a.budget.UsedPercent)
		used.Delta = "of " + a.money.FormatCompact(a.budget.Budget)
		if a.budget.OverBudget {
			used.Tone = components.ToneBad
		}
	}

	perDay := components.Metric{
		Label: "Per day",
		Value: a.money.FormatCurrency(a.budget.DailyBurnRate),
		Delta: "projected " + a.money.FormatCompact(a.budget.ProjectedMonthly),
	}
	if a.budget.Budget > 0 && a.budget.ProjectedMonthly > a.budget.Budget {
		perDay.Tone = components.ToneBad
	}

	largest := components.Metric{Label: "Largest", Value: "-", Delta: " "}
	if a.stats.LargestCategory != "" {
		largest.Value = a.stats.LargestCategory
		largest.Delta = a.money.FormatCurrency(a.stats.LargestAmount)
	}

	return []components.Metric{spent, used, perDay, largest}
}

func (a App) renderMetricRow(cw int) string {
	return components.MetricCardRow(a.overviewMetrics(), cw)
}

// donutTop is the screen row of the donut card's top border.
func (a App) donutTop() int {
	return headerHeight + lipgloss.Height(a.renderMetricRow(a.contentWidth()))
}

func (a App) donutGrid() render.Grid {
	return render.Rasterize(a.donut.Segments(), a.donut.Geometry(), donutCols, donutRows)
}

func (a App) renderOverviewTab(cw int) string {
	var b strings.Builder
	b.WriteString(a.renderMetricRow(cw))
	b.WriteString("\n")

	legendW := cw - donutCardW
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Spending", a.renderDonut(), donutCardW),
		components.ContentCard("Categories", a.renderLegend(components.CardInnerWidth(legendW)), legendW),
	}))
	return b.String()
}

func (a App) renderDonut() string {
	t := theme.Active
	if a.donut.Empty() {
		msg := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Width(donutCols).Height(donutRows).
			Align(lipgloss.Center, lipgloss.Center)
		return msg.Render("No spending\nthis month")
	}

	st := a.donut.State()
	var tip *render.Tooltip
	if seg, ok := a.donut.Selected(); ok {
		box := chart.TooltipBox{Width: a.cfg.Chart.TooltipWidth, Height: a.cfg.Chart.TooltipHeight}
		tip = render.TooltipFor(a.donut, box, a.money.FormatCurrency(seg.Value))
	}
	return components.RenderDonut(components.DonutView{
		Grid:     a.donutGrid(),
		Segments: a.donut.Segments(),
		Selected: st.Index,
		Tooltip:  tip,
	})
}

func (a App) renderLegend(innerW int) string {
	t := theme.Active
	rows := a.donut.Legend(a.money)
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Nothing to show")
	}

	deltas := make(map[string]float64, len(a.spends))
	for _, cs := range a.spends {
		deltas[cs.Category] = cs.Delta
	}

	selected := a.donut.State().Index
	const valueW, pctW, deltaW = 12, 7, 11
	labelW := max(innerW-2-valueW-pctW-deltaW-3, 6)
	compact := a.isCompactLayout()
	if compact {
		labelW += deltaW + 1
	}

	var b strings.Builder
	for i, e := range rows {
		bg := t.Surface
		fg := t.TextPrimary
		if i == selected {
			bg = t.SurfaceBright
		} else if selected >= 0 {
			fg = t.TextMuted
		}
		base := lipgloss.NewStyle().Background(bg)
		swatch := base.Foreground(lipgloss.Color(render.ResolveColor(e.Color))).Render("● ")
		label := base.Foreground(fg).Bold(i == selected).
			Render(fmt.Sprintf("%-*s", labelW, components.Truncate(e.Label, labelW)))
		value := base.Foreground(fg).Render(fmt.Sprintf(" %*s", valueW, e.ValueText))
		pct := base.Foreground(t.TextMuted).Render(fmt.Sprintf(" %*s", pctW, e.PercentText))

		line := swatch + label + value + pct
		if !compact {
			d := deltas[e.Label]
			deltaColor := t.TextDim
			switch {
			case d > 0:
				deltaColor = t.Red
			case d < 0:
				deltaColor = t.Green
			}
			line += base.Foreground(deltaColor).Render(fmt.Sprintf(" %*s", deltaW, a.money.FormatDelta(d, 0)))
		}
		if pad := innerW - lipgloss.Width(line); pad > 0 {
			line += base.Render(strings.Repeat(" ", pad))
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// updateOverviewKeys steps through segments the way a swipe would.
func (a App) updateOverviewKeys(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "left", "h":
		a.donut.Swipe(chart.Backward)
	case "right", "l":
		a.donut.Swipe(chart.Forward)
	case "esc":
		a.donut.Dismiss()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		a.donut.Select(int(key[0] - '1'))
	default:
		return false, a, nil
	}
	return true, a, nil
}

// clickOverview routes a click to the donut or the legend. Anything else
// dismisses the selection.
func (a App) clickOverview(x, y int) {
	top := a.donutTop() + 2 // card border + title
	left := a.contentOffsetX() + 2
	col, row := x-left, y-top

	if col >= 0 && col < donutCols && row >= 0 && row < donutRows && !a.donut.Empty() {
		p := a.donutGrid().ChartPoint(col, row)
		// Exact ring containment first; the square hit map covers the
		// hole and the navigation zones.
		if i, ok := render.SegmentAt(a.donut.Segments(), a.donut.Geometry(), p); ok {
			a.donut.Select(i)
			return
		}
		a.donut.Tap(p)
		return
	}

	legendLeft := a.contentOffsetX() + donutCardW
	if x >= legendLeft && x < a.contentOffsetX()+a.contentWidth() && row >= 0 && row < len(a.donut.Segments()) {
		a.donut.Select(row)
		return
	}
	a.donut.Dismiss()
}
