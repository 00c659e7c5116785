package components

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/render"
	"github.com/theirongolddev/budgetring/internal/tui/theme"
)

// dimAmount is how far unselected segments fade toward the background.
const dimAmount = 0.6

// DonutView is everything needed to draw a donut into terminal cells.
type DonutView struct {
	Grid     render.Grid
	Segments []chart.Segment
	Selected int             // -1 when nothing is selected
	Tooltip  *render.Tooltip // anchor in chart pixels
}

// RenderDonut draws the donut with half-block glyphs and overlays the
// tooltip, if any.
func RenderDonut(v DonutView) string {
	t := theme.Active
	c := NewCanvas(v.Grid.Cols, v.Grid.Rows, t.Surface)

	colors := make(map[int]lipgloss.Color, len(v.Segments))
	for _, s := range v.Segments {
		hex := render.ResolveColor(s.Color)
		if v.Selected >= 0 && s.Index != v.Selected {
			colors[s.Index] = t.Dim(hex, dimAmount)
		} else {
			colors[s.Index] = lipgloss.Color(hex)
		}
	}
	colorOf := func(sample int) lipgloss.Color {
		switch sample {
		case render.CellEmpty:
			return t.Surface
		case render.CellTrack:
			return t.SurfaceHover
		}
		if col, ok := colors[sample]; ok {
			return col
		}
		return t.Surface
	}

	for row := 0; row < v.Grid.Rows; row++ {
		for col := 0; col < v.Grid.Cols; col++ {
			top, bottom := v.Grid.At(col, row)
			if top == render.CellEmpty && bottom == render.CellEmpty {
				continue
			}
			c.Set(col, row, '▀', colorOf(top), colorOf(bottom))
		}
	}

	if v.Tooltip != nil && v.Grid.CellW > 0 && v.Grid.CellH > 0 {
		anchor := chart.Point{X: v.Tooltip.Anchor.X / v.Grid.CellW, Y: v.Tooltip.Anchor.Y / v.Grid.CellH}
		overlayTooltip(c, anchor, v.Tooltip.Title, v.Tooltip.Value)
	}
	return c.Render()
}

// overlayTooltip centers a tooltip box on anchor (in cells), keeping it
// inside the canvas.
func overlayTooltip(c *Canvas, anchor chart.Point, title, value string) {
	t := theme.Active
	cw, ch := c.Size()

	w := max(runewidth.StringWidth(title), runewidth.StringWidth(value)) + 4
	w = min(w, cw)
	h := 4
	box := chart.TooltipBox{Width: float64(w), Height: float64(h)}
	center := chart.ClampAnchor(anchor, box, float64(cw), float64(ch), 0)

	x := int(math.Round(center.X - box.Width/2))
	y := int(math.Round(center.Y - box.Height/2))
	c.Box(x, y, w, h, []string{title, value}, t.TextPrimary, t.SurfaceBright, t.BorderAccent)
}
