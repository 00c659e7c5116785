package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// an optional transient message in the middle and info on the right.
func RenderStatusBar(width int, message, info string) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	msgStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface)

	left := base.Render(" [?]help  [ ]month  [q]uit")
	mid := ""
	if message != "" {
		mid = msgStyle.Render("  " + message)
	}
	right := ""
	if info != "" {
		right = base.Render(info + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(mid)-lipgloss.Width(right), 0)
	return left + mid + base.Render(strings.Repeat(" ", padding)) + right
}
