package chart

import (
	"math"
	"strconv"
	"strings"
)

// PathOp is a path descriptor command.
type PathOp int

// Path commands, mirroring SVG path data.
const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpArcTo
	OpClose
)

// PathCommand is one step of a path descriptor. Arc commands carry both the
// SVG endpoint form (Radius, LargeArc, Clockwise, To) and the center form
// (Center, FromDeg, ToDeg) so backends without an arc primitive can flatten.
type PathCommand struct {
	Op        PathOp
	To        Point
	Radius    float64
	LargeArc  bool
	Clockwise bool
	Center    Point
	FromDeg   float64
	ToDeg     float64
}

// Path is a backend-neutral path descriptor.
type Path struct {
	Commands []PathCommand
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool {
	return len(p.Commands) == 0
}

// LargeArc reports whether the first arc of the path is drawn as a major arc.
func (p Path) LargeArc() bool {
	for _, c := range p.Commands {
		if c.Op == OpArcTo {
			return c.LargeArc
		}
	}
	return false
}

// SVG renders the path as SVG path data.
func (p Path) SVG() string {
	var b strings.Builder
	b.Grow(len(p.Commands) * 32)
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case OpMoveTo:
			b.WriteString("M ")
			writePoint(&b, c.To)
		case OpLineTo:
			b.WriteString("L ")
			writePoint(&b, c.To)
		case OpArcTo:
			b.WriteString("A ")
			b.WriteString(fmtFloat(c.Radius))
			b.WriteByte(' ')
			b.WriteString(fmtFloat(c.Radius))
			b.WriteString(" 0 ")
			b.WriteString(flag(c.LargeArc))
			b.WriteByte(' ')
			b.WriteString(flag(c.Clockwise))
			b.WriteByte(' ')
			writePoint(&b, c.To)
		case OpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// Flatten approximates the path with straight segments no longer than
// stepDeg degrees of arc. Each subpath is returned as its own polygon.
func (p Path) Flatten(stepDeg float64) [][]Point {
	if stepDeg <= 0 {
		stepDeg = 2
	}
	var polys [][]Point
	var cur []Point
	for _, c := range p.Commands {
		switch c.Op {
		case OpMoveTo:
			if len(cur) > 0 {
				polys = append(polys, cur)
			}
			cur = []Point{c.To}
		case OpLineTo:
			cur = append(cur, c.To)
		case OpArcTo:
			sweep := c.ToDeg - c.FromDeg
			n := int(math.Ceil(math.Abs(sweep) / stepDeg))
			if n < 1 {
				n = 1
			}
			for i := 1; i < n; i++ {
				a := c.FromDeg + sweep*float64(i)/float64(n)
				cur = append(cur, PolarToCartesian(a, c.Radius, c.Center))
			}
			cur = append(cur, c.To)
		case OpClose:
			if len(cur) > 0 {
				polys = append(polys, cur)
			}
			cur = nil
		}
	}
	if len(cur) > 0 {
		polys = append(polys, cur)
	}
	return polys
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(fmtFloat(p.X))
	b.WriteByte(' ')
	b.WriteString(fmtFloat(p.Y))
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
