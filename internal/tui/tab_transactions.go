package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/render"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// transactionsState tracks the transactions list cursor and scroll.
type transactionsState struct {
	cursor int
	offset int
}

func (s *transactionsState) up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *transactionsState) down(n int) {
	if s.cursor < n-1 {
		s.cursor++
	}
}

// scroll keeps the cursor inside a window of visible rows.
func (s *transactionsState) scroll(visible int) {
	if visible <= 0 {
		return
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
}

func (a App) updateTransactionsKeys(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.txState.down(len(a.txs))
	case "k", "up":
		a.txState.up()
	case "g":
		a.txState.cursor = 0
	case "G":
		a.txState.cursor = max(len(a.txs)-1, 0)
	case "ctrl+d":
		a.txState.cursor = min(a.txState.cursor+a.txPageSize()/2, max(len(a.txs)-1, 0))
	case "ctrl+u":
		a.txState.cursor = max(a.txState.cursor-a.txPageSize()/2, 0)
	default:
		return false, a, nil
	}
	a.txState.scroll(a.txPageSize())
	return true, a, nil
}

// txPageSize is the number of list rows visible at the current height.
func (a App) txPageSize() int {
	// header, status bar, card border + title + column header
	return max(a.height-headerHeight-1-4, 1)
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	refundStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	if len(a.txs) == 0 {
		return components.ContentCard("Transactions", mutedStyle.Render("No transactions in "+cli.FormatMonth(a.month)), cw)
	}

	const dateW, amountW = 7, 14
	catW := 16
	if a.isCompactLayout() {
		catW = 12
	}
	descW := max(innerW-2-dateW-catW-amountW-3, 8)

	visible := max(h-4, 1)
	st := a.txState
	st.scroll(visible)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %*s", dateW, "Date", catW, "Category", descW, "Description", amountW, "Amount")))
	b.WriteString("\n")

	colors := make(map[string]string, len(a.data.Categories))
	for _, c := range a.data.Categories {
		colors[c.Name] = c.Color
	}

	end := min(st.offset+visible, len(a.txs))
	for i := st.offset; i < end; i++ {
		tx := a.txs[i]
		bg := t.Surface
		if i == st.cursor {
			bg = t.SurfaceBright
		}
		base := lipgloss.NewStyle().Background(bg)
		amount := rowStyle
		if tx.Amount < 0 {
			amount = refundStyle
		}

		line := base.Foreground(lipgloss.Color(render.ResolveColor(colors[tx.Category]))).Render("● ") +
			mutedStyle.Background(bg).Render(fmt.Sprintf("%-*s ", dateW, cli.FormatDate(tx.Date))) +
			rowStyle.Background(bg).Render(fmt.Sprintf("%-*s ", catW, components.Truncate(tx.Category, catW))) +
			mutedStyle.Background(bg).Render(fmt.Sprintf("%-*s ", descW, components.Truncate(tx.Description, descW))) +
			amount.Background(bg).Render(fmt.Sprintf("%*s", amountW, a.money.FormatCurrency(tx.Amount)))
		if pad := innerW - lipgloss.Width(line); pad > 0 {
			line += base.Render(strings.Repeat(" ", pad))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Transactions · %d of %s", st.cursor+1, cli.FormatNumber(int64(len(a.txs))))
	return components.ContentCard(title, b.String(), cw)
}
