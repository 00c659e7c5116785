package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

const trendChartH = 10

func (a App) updateTrendKeys(key string) (bool, tea.Model, tea.Cmd) {
	n := len(a.days)
	if n == 0 {
		return false, a, nil
	}
	switch key {
	case "left", "h":
		if a.trendSel <= 0 {
			a.trendSel = n - 1
		} else {
			a.trendSel--
		}
	case "right", "l":
		a.trendSel = (a.trendSel + 1) % n
	case "esc":
		a.trendSel = -1
	default:
		return false, a, nil
	}
	return true, a, nil
}

func (a App) renderTrendTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	// Daily line
	var daily string
	ll, err := components.LineLayoutFor(pipeline.DailyValues(a.days), innerW, trendChartH)
	switch {
	case err != nil:
		daily = dimStyle.Render(err.Error())
	case len(ll.Points) == 0:
		daily = dimStyle.Render("No days to plot")
	default:
		view := components.LineView{Layout: ll, Color: t.Accent, Selected: a.trendSel}
		if a.trendSel >= 0 && a.trendSel < len(a.days) {
			d := a.days[a.trendSel]
			view.Title = cli.FormatDate(d.Date)
			view.Value = a.money.FormatCurrency(d.Amount)
		}
		daily = components.RenderLine(view) + "\n" +
			dimStyle.Render("peak "+a.money.FormatCompact(ll.Max)+" · ←/→ inspect a day")
	}
	b.WriteString(components.ContentCard("Daily spending · "+cli.FormatMonth(a.month), daily, cw))
	b.WriteString("\n")

	// Monthly bars
	labels := make([]string, len(a.months))
	for i, m := range a.months {
		labels[i] = m.Month.Format("Jan")
	}
	bars := components.BarChart(pipeline.MonthlyValues(a.months), labels, t.Blue, innerW, 6, a.money.FormatCompact)
	b.WriteString(components.ContentCard("Last 6 months", bars, cw))
	return b.String()
}
