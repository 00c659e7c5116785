package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	// Overall gauge
	var overall strings.Builder
	if a.budget.Budget <= 0 {
		overall.WriteString(dimStyle.Render("No budget configured. Set one in Settings or with `budgetring setup`."))
	} else {
		gauge, err := chart.LayoutGauge(a.donut.Geometry(), a.budget.Spent, a.budget.Budget,
			chart.DefaultGaugeStart, chart.DefaultGaugeSweep)
		if err != nil {
			logger.Warn("gauge layout failed", zap.Error(err))
		}
		fraction := gauge.Fraction
		if gauge.Over {
			fraction = a.budget.Spent / a.budget.Budget
		}
		status := lipgloss.NewStyle().Foreground(t.Status(a.budget.UsedPercent)).Background(t.Surface).Bold(true)

		overall.WriteString(components.BudgetBar("Total", fraction,
			a.money.FormatCurrency(a.budget.Spent)+" / "+a.money.FormatCurrency(a.budget.Budget),
			10, max(innerW-40, 10)))
		overall.WriteString("\n\n")
		overall.WriteString(labelStyle.Render("Status:     ") + status.Render(cli.StatusText(a.budget.UsedPercent)))
		if a.budget.OverBudgetByCount > 0 {
			overall.WriteString(dimStyle.Render(fmt.Sprintf("  (%d categories over their limit)", a.budget.OverBudgetByCount)))
		}
		overall.WriteString("\n")
		overall.WriteString(labelStyle.Render("Burn rate:  ") + valueStyle.Render(a.money.FormatCurrency(a.budget.DailyBurnRate)) + labelStyle.Render(" / day") + "\n")
		overall.WriteString(labelStyle.Render("Projected:  ") + valueStyle.Render(a.money.FormatCurrency(a.budget.ProjectedMonthly)) + "\n")
		overall.WriteString(labelStyle.Render("Days left:  ") + valueStyle.Render(fmt.Sprint(a.budget.DaysRemaining)))
	}
	b.WriteString(components.ContentCard("Budget · "+cli.FormatMonth(a.month), overall.String(), cw))
	b.WriteString("\n")

	// Per category
	labelW := 14
	barW := max(innerW-labelW-36, 8)
	var cats strings.Builder
	n := 0
	for _, cs := range a.spends {
		if cs.Budget <= 0 && cs.Spent <= 0 {
			continue
		}
		if n > 0 {
			cats.WriteString("\n")
		}
		n++
		if cs.Budget <= 0 {
			cats.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, components.Truncate(cs.Category, labelW))))
			cats.WriteString(dimStyle.Render(fmt.Sprintf("%s spent, no limit", a.money.FormatCurrency(cs.Spent))))
			continue
		}
		cats.WriteString(components.BudgetBar(cs.Category, cs.Spent/cs.Budget,
			a.money.FormatCompact(cs.Spent)+" / "+a.money.FormatCompact(cs.Budget), labelW, barW))
	}
	if n == 0 {
		cats.WriteString(dimStyle.Render("No category budgets"))
	}
	b.WriteString(components.ContentCard("Categories", cats.String(), cw))
	return b.String()
}
