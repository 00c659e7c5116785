// Package chart computes the geometry, layout and interaction state of the
// proportional charts (donut, gauge, line) drawn by the dashboard.
//
// Nothing in this package draws. Callers get path descriptors and
// coordinates back and hand them to a rendering backend.
package chart

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDivisionByZero is returned when a series has no positive total to
	// scale against. Callers should render an explicit empty state.
	ErrDivisionByZero = errors.New("chart: total must be greater than zero")

	// ErrInvalidGeometry is returned for negative sizes or radii, or an inner
	// radius larger than the outer radius.
	ErrInvalidGeometry = errors.New("chart: invalid geometry")

	// ErrInvalidValue is returned for negative or non-finite entry values.
	ErrInvalidValue = errors.New("chart: invalid value")
)

// Point is a coordinate in chart pixels, origin top-left, Y down.
type Point struct {
	X, Y float64
}

// Geometry describes the ring a donut or gauge is drawn into.
type Geometry struct {
	Size        float64 // width and height of the square chart box
	StrokeWidth float64
	CenterX     float64
	CenterY     float64
	InnerRadius float64
	OuterRadius float64
}

// NewGeometry derives the ring geometry for a chart of the given size.
// The nominal radius keeps the full stroke inside the box.
func NewGeometry(size, strokeWidth float64) (Geometry, error) {
	if size < 0 || strokeWidth < 0 || math.IsNaN(size) || math.IsNaN(strokeWidth) {
		return Geometry{}, fmt.Errorf("size %.2f, stroke %.2f: %w", size, strokeWidth, ErrInvalidGeometry)
	}
	radius := (size - strokeWidth) / 2
	g := Geometry{
		Size:        size,
		StrokeWidth: strokeWidth,
		CenterX:     size / 2,
		CenterY:     size / 2,
		InnerRadius: radius - strokeWidth/2,
		OuterRadius: radius + strokeWidth/2,
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate reports whether g can be used to synthesize paths.
func (g Geometry) Validate() error {
	switch {
	case g.Size < 0, g.StrokeWidth < 0:
		return fmt.Errorf("size %.2f, stroke %.2f: %w", g.Size, g.StrokeWidth, ErrInvalidGeometry)
	case g.InnerRadius < 0, g.OuterRadius < 0:
		return fmt.Errorf("radii %.2f/%.2f: %w", g.InnerRadius, g.OuterRadius, ErrInvalidGeometry)
	case g.InnerRadius > g.OuterRadius:
		return fmt.Errorf("inner radius %.2f exceeds outer %.2f: %w", g.InnerRadius, g.OuterRadius, ErrInvalidGeometry)
	}
	return nil
}

// Center returns the chart center.
func (g Geometry) Center() Point {
	return Point{X: g.CenterX, Y: g.CenterY}
}

// MidRadius is halfway between the inner and outer radius.
func (g Geometry) MidRadius() float64 {
	return (g.InnerRadius + g.OuterRadius) / 2
}

// PolarToCartesian converts an angle in degrees to a point on a circle.
// 0° is 12 o'clock and angles grow clockwise.
func PolarToCartesian(angleDeg, radius float64, center Point) Point {
	rad := (angleDeg - 90) * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// CartesianToPolar is the inverse of PolarToCartesian. The angle is
// normalized to [0, 360).
func CartesianToPolar(p, center Point) (angleDeg, radius float64) {
	dx, dy := p.X-center.X, p.Y-center.Y
	radius = math.Hypot(dx, dy)
	angleDeg = math.Atan2(dx, -dy) * 180 / math.Pi
	if angleDeg < 0 {
		angleDeg += 360
	}
	return angleDeg, radius
}

// fullCircleEpsilon shortens a 360° sweep so the arc endpoints stay distinct;
// an SVG arc whose endpoints coincide draws nothing.
const fullCircleEpsilon = 0.01

// ArcPath builds the closed annular sector between startDeg and endDeg.
// The outer arc runs clockwise from start to end, then a radial line goes
// inward and the inner arc runs back to start.
func ArcPath(center Point, startDeg, endDeg, innerRadius, outerRadius float64) (Path, error) {
	if innerRadius < 0 || outerRadius < 0 {
		return Path{}, fmt.Errorf("radii %.2f/%.2f: %w", innerRadius, outerRadius, ErrInvalidGeometry)
	}
	if innerRadius > outerRadius {
		return Path{}, fmt.Errorf("inner radius %.2f exceeds outer %.2f: %w", innerRadius, outerRadius, ErrInvalidGeometry)
	}

	sweep := endDeg - startDeg
	if sweep <= 0 {
		return Path{}, nil
	}
	if sweep >= 360 {
		endDeg = startDeg + 360 - fullCircleEpsilon
		sweep = endDeg - startDeg
	}
	large := sweep > 180

	outerStart := PolarToCartesian(startDeg, outerRadius, center)
	outerEnd := PolarToCartesian(endDeg, outerRadius, center)
	innerEnd := PolarToCartesian(endDeg, innerRadius, center)
	innerStart := PolarToCartesian(startDeg, innerRadius, center)

	return Path{Commands: []PathCommand{
		{Op: OpMoveTo, To: outerStart},
		{Op: OpArcTo, To: outerEnd, Radius: outerRadius, LargeArc: large, Clockwise: true,
			Center: center, FromDeg: startDeg, ToDeg: endDeg},
		{Op: OpLineTo, To: innerEnd},
		{Op: OpArcTo, To: innerStart, Radius: innerRadius, LargeArc: large, Clockwise: false,
			Center: center, FromDeg: endDeg, ToDeg: startDeg},
		{Op: OpClose},
	}}, nil
}
