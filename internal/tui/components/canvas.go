package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	ch   rune // 0 marks the trailing half of a wide rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

// Canvas is a fixed grid of styled cells. Charts draw into it and overlay
// tooltips before it is flattened into a string.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas returns a w×h canvas filled with blanks on bg.
func NewCanvas(w, h int, bg lipgloss.Color) *Canvas {
	c := &Canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: bg}
	}
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Set draws one rune. Out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, ch rune, fg, bg lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{ch: ch, fg: fg, bg: bg}
}

// Text writes s starting at x, clipped to maxW cells, keeping each cell's
// background.
func (c *Canvas) Text(x, y int, s string, fg lipgloss.Color, bold bool, maxW int) {
	if y < 0 || y >= c.h {
		return
	}
	if runewidth.StringWidth(s) > maxW {
		s = runewidth.Truncate(s, maxW, "…")
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if x >= 0 && x+rw <= c.w {
			i := y*c.w + x
			c.cells[i] = cell{ch: r, fg: fg, bg: c.cells[i].bg, bold: bold}
			for k := 1; k < rw; k++ {
				c.cells[i+k] = cell{bg: c.cells[i].bg}
			}
		}
		x += rw
	}
}

// Box draws a bordered box with its top-left corner at (x, y) and writes
// lines inside it. The first line is bold.
func (c *Canvas) Box(x, y, w, h int, lines []string, fg, bg, border lipgloss.Color) {
	if w < 2 || h < 2 {
		return
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			ch := ' '
			switch {
			case row == 0 && col == 0:
				ch = '╭'
			case row == 0 && col == w-1:
				ch = '╮'
			case row == h-1 && col == 0:
				ch = '╰'
			case row == h-1 && col == w-1:
				ch = '╯'
			case row == 0 || row == h-1:
				ch = '─'
			case col == 0 || col == w-1:
				ch = '│'
			}
			c.Set(x+col, y+row, ch, border, bg)
		}
	}
	for i, line := range lines {
		if i >= h-2 {
			break
		}
		c.Text(x+2, y+1+i, line, fg, i == 0, w-4)
	}
}

// Render flattens the canvas, styling runs of identical cells together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(cur.bg).Bold(cur.bold)
			if cur.fg != "" {
				st = st.Foreground(cur.fg)
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.ch == 0 {
				continue
			}
			if run.Len() > 0 && (cl.fg != cur.fg || cl.bg != cur.bg || cl.bold != cur.bold) {
				flush()
			}
			cur = cl
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return b.String()
}

// Truncate shortens s to w cells with an ellipsis.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
