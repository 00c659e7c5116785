package chart

import (
	"fmt"
	"math"
)

// LineLayout is a polyline scaled into a width×height box.
type LineLayout struct {
	Points  []Point
	Path    Path
	Width   float64
	Height  float64
	Padding float64
	Min     float64
	Max     float64
}

// LayoutLine scales values into the box, left to right. The baseline is 0
// unless the series dips below it. A flat series is drawn through the
// vertical middle.
func LayoutLine(values []float64, width, height, padding float64) (LineLayout, error) {
	if width < 0 || height < 0 || padding < 0 || 2*padding > width || 2*padding > height {
		return LineLayout{}, fmt.Errorf("line box %.1fx%.1f padding %.1f: %w", width, height, padding, ErrInvalidGeometry)
	}
	ll := LineLayout{Width: width, Height: height, Padding: padding}
	if len(values) == 0 {
		return ll, nil
	}

	lo, hi := 0.0, math.Inf(-1)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return LineLayout{}, fmt.Errorf("point %d value %v: %w", i, v, ErrInvalidValue)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	ll.Min, ll.Max = lo, hi

	innerW := width - 2*padding
	innerH := height - 2*padding
	n := len(values)
	ll.Points = make([]Point, n)
	cmds := make([]PathCommand, n)
	for i, v := range values {
		x := padding + innerW/2
		if n > 1 {
			x = padding + innerW*float64(i)/float64(n-1)
		}
		y := padding + innerH/2
		if hi > lo {
			y = padding + (1-(v-lo)/(hi-lo))*innerH
		}
		p := Point{X: x, Y: y}
		ll.Points[i] = p
		op := OpLineTo
		if i == 0 {
			op = OpMoveTo
		}
		cmds[i] = PathCommand{Op: op, To: p}
	}
	ll.Path = Path{Commands: cmds}
	return ll, nil
}

// NearestIndex returns the point closest to x horizontally, or -1.
func (ll LineLayout) NearestIndex(x float64) int {
	best, bestD := -1, math.Inf(1)
	for i, p := range ll.Points {
		if d := math.Abs(p.X - x); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// TooltipFor places a tooltip box just above point i, clamped into the box.
func (ll LineLayout) TooltipFor(i int, box TooltipBox, padding float64) (Point, bool) {
	if i < 0 || i >= len(ll.Points) {
		return Point{}, false
	}
	p := ll.Points[i]
	anchor := Point{X: p.X, Y: p.Y - box.Height/2 - padding}
	return ClampAnchor(anchor, box, ll.Width, ll.Height, padding), true
}
