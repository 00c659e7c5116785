package chart

import (
	"fmt"
	"math"
)

// DefaultGapDegrees is the angular spacing between adjacent segments.
const DefaultGapDegrees = 2.0

// Entry is one labelled value of a data series. Color is passed through to
// the rendering backend untouched.
type Entry struct {
	Label string
	Value float64
	Color string
}

// Segment is the drawable slice derived from one Entry.
type Segment struct {
	Index      int
	Label      string
	Value      float64
	Color      string
	Percentage float64 // share of the series total, 0-100
	StartAngle float64
	EndAngle   float64
	Path       Path
}

// Span is the angular width of the segment in degrees.
func (s Segment) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// MidAngle is the angular midpoint used for labels and tooltips.
func (s Segment) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Total sums the series values, rejecting negative or non-finite entries.
func Total(series []Entry) (float64, error) {
	var total float64
	for i, e := range series {
		if e.Value < 0 || math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return 0, fmt.Errorf("entry %d (%q) value %v: %w", i, e.Label, e.Value, ErrInvalidValue)
		}
		total += e.Value
	}
	return total, nil
}

// LayoutSegments lays the series out clockwise from 12 o'clock in input
// order, leaving gapDeg degrees after every segment. Zero-valued entries
// become zero-width segments so indices keep matching the legend.
func LayoutSegments(series []Entry, geom Geometry, gapDeg float64) ([]Segment, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if gapDeg < 0 || math.IsNaN(gapDeg) {
		gapDeg = 0
	}
	total, err := Total(series)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("layout of %d entries: %w", len(series), ErrDivisionByZero)
	}

	limit := 360 - gapDeg
	center := geom.Center()
	segments := make([]Segment, len(series))
	current := 0.0
	for i, e := range series {
		pct := e.Value / total * 100
		span := pct/100*360 - gapDeg
		if span < 0 {
			span = 0
		}
		start := current
		end := current + span
		// Clamped spans still consume a gap; never run past the circle.
		if end > limit {
			end = math.Max(limit, 0)
			start = math.Min(start, end)
		}
		current = end + gapDeg

		path, err := ArcPath(center, start, end, geom.InnerRadius, geom.OuterRadius)
		if err != nil {
			return nil, err
		}
		segments[i] = Segment{
			Index:      i,
			Label:      e.Label,
			Value:      e.Value,
			Color:      e.Color,
			Percentage: pct,
			StartAngle: start,
			EndAngle:   end,
			Path:       path,
		}
	}
	return segments, nil
}
