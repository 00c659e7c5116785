package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*float64(len(sparkBlocks)-1)), 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// LabelFunc formats an axis value.
type LabelFunc func(v float64) string

// BarChart renders vertical bars with a labeled y-axis. Bars that would be
// narrower than one cell fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int, label LabelFunc) string {
	if len(values) == 0 {
		return ""
	}
	if label == nil {
		label = formatChartLabel
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step
	ticks := int(math.Round(ceiling / step))

	yLabelW := max(runewidth.StringWidth(label(ceiling)), 3)
	chartW := width - yLabelW - 1
	n := len(values)
	barW := 0
	if n > 0 {
		barW = (chartW + 1) / n
	}
	if height < 3 || barW < 2 {
		return Sparkline(values, color)
	}
	barW = min(barW-1, 4) // one column gap between bars

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	tickAt := make(map[int]string, ticks)
	for i := 1; i <= ticks; i++ {
		tickAt[int(math.Round(float64(i)/float64(ticks)*float64(height)))] = label(step * float64(i))
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, tickAt[row])))
		b.WriteString(axis.Render("│"))
		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8) - 1
				b.WriteString(bar.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axis.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		buf := []rune(strings.Repeat(" ", axisLen))
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + 1)
			r := []rune(lbl)
			if pos <= lastEnd || pos+len(r) > axisLen {
				continue
			}
			copy(buf[pos:], r)
			lastEnd = pos + len(r)
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axis.Render(strings.TrimRight(string(buf), " ")))
	}
	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// LineView is a line chart laid out in cell units.
type LineView struct {
	Layout   chart.LineLayout
	Color    lipgloss.Color
	Selected int // -1 when no point is selected
	Title    string
	Value    string
}

// LineLayoutFor lays values out across a width×height cell box. Points sit
// on cell centers.
func LineLayoutFor(values []float64, width, height int) (chart.LineLayout, error) {
	return chart.LayoutLine(values, float64(width), float64(height), 0.5)
}

// RenderLine draws the polyline with dots on each point and a tooltip over
// the selected point.
func RenderLine(v LineView) string {
	t := theme.Active
	w, h := int(v.Layout.Width), int(v.Layout.Height)
	c := NewCanvas(w, h, t.Surface)

	pts := v.Layout.Points
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		x0, x1 := int(a.X), int(b.X)
		for x := x0 + 1; x < x1; x++ {
			frac := (float64(x) + 0.5 - a.X) / (b.X - a.X)
			y := int(a.Y + frac*(b.Y-a.Y))
			c.Set(x, y, '·', v.Color, t.Surface)
		}
	}
	for i, p := range pts {
		if i == v.Selected {
			c.Set(int(p.X), int(p.Y), '◆', t.AccentBright, t.Surface)
			continue
		}
		c.Set(int(p.X), int(p.Y), '●', v.Color, t.Surface)
	}

	if v.Selected >= 0 && v.Selected < len(pts) {
		bw := min(max(runewidth.StringWidth(v.Title), runewidth.StringWidth(v.Value))+4, w)
		box := chart.TooltipBox{Width: float64(bw), Height: 4}
		if center, ok := v.Layout.TooltipFor(v.Selected, box, 0); ok {
			x := int(math.Round(center.X - box.Width/2))
			y := int(math.Round(center.Y - box.Height/2))
			c.Box(x, y, bw, 4, []string{v.Title, v.Value}, t.TextPrimary, t.SurfaceBright, t.BorderAccent)
		}
	}
	return c.Render()
}
