package chart_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/chart"
)

const eps = 1e-9

func TestPolarToCartesian(t *testing.T) {
	center := chart.Point{X: 100, Y: 100}
	tests := []struct {
		name  string
		angle float64
		want  chart.Point
	}{
		{"twelve o'clock", 0, chart.Point{X: 100, Y: 50}},
		{"three o'clock", 90, chart.Point{X: 150, Y: 100}},
		{"six o'clock", 180, chart.Point{X: 100, Y: 150}},
		{"nine o'clock", 270, chart.Point{X: 50, Y: 100}},
		{"full turn", 360, chart.Point{X: 100, Y: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chart.PolarToCartesian(tt.angle, 50, center)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestCartesianToPolar_RoundTrip(t *testing.T) {
	center := chart.Point{X: 100, Y: 100}
	for _, angle := range []float64{0, 45, 90, 179.5, 270, 359} {
		p := chart.PolarToCartesian(angle, 40, center)
		gotAngle, gotRadius := chart.CartesianToPolar(p, center)
		assert.InDelta(t, angle, gotAngle, 1e-9, "angle %v", angle)
		assert.InDelta(t, 40, gotRadius, 1e-9)
	}
}

func TestNewGeometry(t *testing.T) {
	g, err := chart.NewGeometry(200, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.CenterX)
	assert.Equal(t, 100.0, g.CenterY)
	assert.Equal(t, 100.0, g.OuterRadius)
	assert.Equal(t, 80.0, g.InnerRadius)
	assert.Equal(t, 90.0, g.MidRadius())
}

func TestNewGeometry_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		size, stroke float64
	}{
		{"negative size", -1, 10},
		{"negative stroke", 100, -2},
		{"stroke wider than chart", 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chart.NewGeometry(tt.size, tt.stroke)
			assert.ErrorIs(t, err, chart.ErrInvalidGeometry)
		})
	}
}

func TestArcPath_RejectsInvalidRadii(t *testing.T) {
	c := chart.Point{X: 50, Y: 50}

	_, err := chart.ArcPath(c, 0, 90, 60, 40)
	assert.ErrorIs(t, err, chart.ErrInvalidGeometry)

	_, err = chart.ArcPath(c, 0, 90, -1, 40)
	assert.ErrorIs(t, err, chart.ErrInvalidGeometry)
}

func TestArcPath_LargeArcFlag(t *testing.T) {
	c := chart.Point{X: 100, Y: 100}
	tests := []struct {
		name       string
		start, end float64
		want       bool
	}{
		{"quarter", 0, 90, false},
		{"exactly half", 0, 180, false},
		{"just over half", 10, 190.5, true},
		{"nearly full", 0, 356.4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := chart.ArcPath(c, tt.start, tt.end, 80, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.LargeArc())
			for _, cmd := range p.Commands {
				if cmd.Op == chart.OpArcTo {
					assert.Equal(t, tt.want, cmd.LargeArc)
				}
			}
		})
	}
}

func TestArcPath_Shape(t *testing.T) {
	c := chart.Point{X: 100, Y: 100}
	p, err := chart.ArcPath(c, 0, 90, 80, 100)
	require.NoError(t, err)
	require.Len(t, p.Commands, 5)

	ops := []chart.PathOp{chart.OpMoveTo, chart.OpArcTo, chart.OpLineTo, chart.OpArcTo, chart.OpClose}
	for i, op := range ops {
		assert.Equal(t, op, p.Commands[i].Op, "command %d", i)
	}
	assert.True(t, p.Commands[1].Clockwise, "outer arc runs clockwise")
	assert.False(t, p.Commands[3].Clockwise, "inner arc runs back")

	assert.InDelta(t, 100, p.Commands[0].To.X, eps)
	assert.InDelta(t, 0, p.Commands[0].To.Y, eps)
	assert.InDelta(t, 200, p.Commands[1].To.X, eps)
	assert.InDelta(t, 100, p.Commands[1].To.Y, eps)
	assert.InDelta(t, 180, p.Commands[2].To.X, eps)
	assert.InDelta(t, 100, p.Commands[3].To.X, eps)
	assert.InDelta(t, 20, p.Commands[3].To.Y, eps)

	svg := p.SVG()
	assert.True(t, strings.HasPrefix(svg, "M 100.000 0.000 A 100.000 100.000 0 0 1 200.000 100.000"), svg)
	assert.True(t, strings.HasSuffix(svg, "Z"), svg)
}

func TestArcPath_ZeroSweepIsEmpty(t *testing.T) {
	p, err := chart.ArcPath(chart.Point{}, 45, 45, 10, 20)
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Equal(t, "", p.SVG())
}

func TestArcPath_FullCircleKeepsDistinctEndpoints(t *testing.T) {
	p, err := chart.ArcPath(chart.Point{X: 50, Y: 50}, 0, 360, 30, 50)
	require.NoError(t, err)
	require.False(t, p.Empty())
	assert.True(t, p.LargeArc())

	start := p.Commands[0].To
	end := p.Commands[1].To
	assert.NotEqual(t, start, end)
}

func TestPathFlatten(t *testing.T) {
	p, err := chart.ArcPath(chart.Point{X: 100, Y: 100}, 0, 90, 80, 100)
	require.NoError(t, err)

	polys := p.Flatten(10)
	require.Len(t, polys, 1)
	// move + 8 interior + end, line, 8 interior + end
	assert.Len(t, polys[0], 20)
	for _, pt := range polys[0] {
		assert.GreaterOrEqual(t, pt.X, 100-eps)
		assert.LessOrEqual(t, pt.Y, 100+eps)
	}
}
