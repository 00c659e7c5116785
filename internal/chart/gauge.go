package chart

import (
	"fmt"
	"math"
)

// Default gauge arc: a 240° horseshoe opening at the bottom.
const (
	DefaultGaugeStart = -120.0
	DefaultGaugeSweep = 240.0
)

// Gauge is a single-value arc chart, e.g. budget used against its limit.
type Gauge struct {
	Track    Path
	Fill     Path
	Fraction float64 // filled share of the sweep, 0-1
	Over     bool    // value exceeded the limit
	FillEnd  float64 // angle where the fill stops
}

// LayoutGauge computes the track and fill arcs for value against limit.
func LayoutGauge(geom Geometry, value, limit, startDeg, sweepDeg float64) (Gauge, error) {
	if err := geom.Validate(); err != nil {
		return Gauge{}, err
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return Gauge{}, fmt.Errorf("gauge value %v: %w", value, ErrInvalidValue)
	}
	if limit <= 0 || math.IsNaN(limit) {
		return Gauge{}, fmt.Errorf("gauge limit %v: %w", limit, ErrDivisionByZero)
	}
	if sweepDeg <= 0 || sweepDeg > 360 {
		sweepDeg = DefaultGaugeSweep
	}

	frac := value / limit
	g := Gauge{Over: frac > 1}
	g.Fraction = math.Min(frac, 1)
	g.FillEnd = startDeg + sweepDeg*g.Fraction

	center := geom.Center()
	var err error
	if g.Track, err = ArcPath(center, startDeg, startDeg+sweepDeg, geom.InnerRadius, geom.OuterRadius); err != nil {
		return Gauge{}, err
	}
	if g.Fill, err = ArcPath(center, startDeg, g.FillEnd, geom.InnerRadius, geom.OuterRadius); err != nil {
		return Gauge{}, err
	}
	return g, nil
}
