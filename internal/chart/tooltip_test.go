package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/budgetring/internal/chart"
)

func segmentAt(mid float64) chart.Segment {
	return chart.Segment{StartAngle: mid - 10, EndAngle: mid + 10}
}

func TestPlaceTooltip_Unclamped(t *testing.T) {
	geom := mustGeometry(t, 400, 40)
	p := chart.TooltipPlacement{Box: chart.TooltipBox{Width: 20, Height: 10}, Padding: 4}

	got := chart.PlaceTooltip(segmentAt(45), geom, p)
	want := chart.PolarToCartesian(45, geom.OuterRadius, geom.Center())
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestPlaceTooltip_ClampsToBoundary(t *testing.T) {
	geom := mustGeometry(t, 200, 20)
	p := chart.TooltipPlacement{Box: chart.TooltipBox{Width: 120, Height: 48}, Padding: 8, Offset: 12}

	tests := []struct {
		name string
		mid  float64
		want chart.Point
	}{
		// Projected to x=212: right edge clamps to 200-60-8.
		{"right", 90, chart.Point{X: 132, Y: 100}},
		// Projected to x=-12: left edge clamps to 60+8.
		{"left", 270, chart.Point{X: 68, Y: 100}},
		// Projected to y=-12: top edge clamps to 24+8.
		{"top", 0, chart.Point{X: 100, Y: 32}},
		// Projected to y=212: bottom edge clamps to 200-24-8.
		{"bottom", 180, chart.Point{X: 100, Y: 168}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chart.PlaceTooltip(segmentAt(tt.mid), geom, p)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestPlaceTooltip_OversizedBoxAnchorsTopLeft(t *testing.T) {
	geom := mustGeometry(t, 200, 20)
	p := chart.TooltipPlacement{Box: chart.TooltipBox{Width: 300, Height: 250}, Padding: 8}

	for _, mid := range []float64{0, 90, 180, 270} {
		got := chart.PlaceTooltip(segmentAt(mid), geom, p)
		assert.InDelta(t, 158, got.X, 1e-9, "mid %v", mid)
		assert.InDelta(t, 133, got.Y, 1e-9, "mid %v", mid)
	}
}

func TestClampAnchor_NonSquare(t *testing.T) {
	box := chart.TooltipBox{Width: 40, Height: 20}
	got := chart.ClampAnchor(chart.Point{X: 395, Y: -5}, box, 400, 100, 5)
	assert.InDelta(t, 375, got.X, 1e-9)
	assert.InDelta(t, 15, got.Y, 1e-9)
}
