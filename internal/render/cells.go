package render

import "github.com/theirongolddev/budgetring/internal/chart"

// Cell sample values that are not segment indices.
const (
	CellEmpty = -1 // outside the ring
	CellTrack = -2 // on the ring but in a gap
)

// Grid is a donut sampled into terminal cells. Every cell holds two
// vertically stacked samples so it can be drawn with a half-block glyph,
// which roughly squares up the 1:2 aspect of a terminal cell.
type Grid struct {
	Cols, Rows int
	CellW      float64 // chart pixels per column
	CellH      float64 // chart pixels per row

	top, bottom []int
}

// Rasterize samples the donut into cols×rows cells covering the whole
// chart box.
func Rasterize(segments []chart.Segment, geom chart.Geometry, cols, rows int) Grid {
	g := Grid{Cols: max(cols, 0), Rows: max(rows, 0)}
	if g.Cols == 0 || g.Rows == 0 {
		return g
	}
	g.CellW = geom.Size / float64(g.Cols)
	g.CellH = geom.Size / float64(g.Rows)
	g.top = make([]int, g.Cols*g.Rows)
	g.bottom = make([]int, g.Cols*g.Rows)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			x := (float64(c) + 0.5) * g.CellW
			i := r*g.Cols + c
			g.top[i] = sample(segments, geom, chart.Point{X: x, Y: (float64(r) + 0.25) * g.CellH})
			g.bottom[i] = sample(segments, geom, chart.Point{X: x, Y: (float64(r) + 0.75) * g.CellH})
		}
	}
	return g
}

// At returns the top and bottom samples of a cell.
func (g Grid) At(col, row int) (top, bottom int) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return CellEmpty, CellEmpty
	}
	i := row*g.Cols + col
	return g.top[i], g.bottom[i]
}

// ChartPoint maps a cell to the chart pixel at its center, for routing
// mouse clicks into the hit map.
func (g Grid) ChartPoint(col, row int) chart.Point {
	return chart.Point{
		X: (float64(col) + 0.5) * g.CellW,
		Y: (float64(row) + 0.5) * g.CellH,
	}
}

// SegmentAt returns the segment drawn at p using exact ring containment.
func SegmentAt(segments []chart.Segment, geom chart.Geometry, p chart.Point) (int, bool) {
	i := sample(segments, geom, p)
	return i, i >= 0
}

func sample(segments []chart.Segment, geom chart.Geometry, p chart.Point) int {
	angle, radius := chart.CartesianToPolar(p, geom.Center())
	if radius < geom.InnerRadius || radius > geom.OuterRadius {
		return CellEmpty
	}
	for _, s := range segments {
		if s.Span() > 0 && angle >= s.StartAngle && angle < s.EndAngle {
			return s.Index
		}
	}
	return CellTrack
}
