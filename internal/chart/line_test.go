package chart_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/chart"
)

func assertPoint(t *testing.T, want, got chart.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestLayoutLine_Scales(t *testing.T) {
	ll, err := chart.LayoutLine([]float64{0, 50, 100}, 100, 60, 10)
	require.NoError(t, err)
	require.Len(t, ll.Points, 3)

	assertPoint(t, chart.Point{X: 10, Y: 50}, ll.Points[0])
	assertPoint(t, chart.Point{X: 50, Y: 30}, ll.Points[1])
	assertPoint(t, chart.Point{X: 90, Y: 10}, ll.Points[2])

	require.Len(t, ll.Path.Commands, 3)
	assert.Equal(t, chart.OpMoveTo, ll.Path.Commands[0].Op)
	assert.Equal(t, chart.OpLineTo, ll.Path.Commands[2].Op)
}

func TestLayoutLine_BaselineFollowsNegatives(t *testing.T) {
	ll, err := chart.LayoutLine([]float64{-10, 10}, 100, 60, 10)
	require.NoError(t, err)
	assert.Equal(t, -10.0, ll.Min)
	assertPoint(t, chart.Point{X: 10, Y: 50}, ll.Points[0])
	assertPoint(t, chart.Point{X: 90, Y: 10}, ll.Points[1])
}

func TestLayoutLine_FlatAndSingle(t *testing.T) {
	flat, err := chart.LayoutLine([]float64{0, 0, 0}, 100, 60, 10)
	require.NoError(t, err)
	for _, p := range flat.Points {
		assert.InDelta(t, 30, p.Y, 1e-9)
	}

	single, err := chart.LayoutLine([]float64{42}, 100, 60, 10)
	require.NoError(t, err)
	assertPoint(t, chart.Point{X: 50, Y: 10}, single.Points[0])
}

func TestLayoutLine_Errors(t *testing.T) {
	_, err := chart.LayoutLine([]float64{1}, 10, 10, 6)
	assert.ErrorIs(t, err, chart.ErrInvalidGeometry)

	_, err = chart.LayoutLine([]float64{1, math.NaN()}, 100, 60, 10)
	assert.ErrorIs(t, err, chart.ErrInvalidValue)

	empty, err := chart.LayoutLine(nil, 100, 60, 10)
	require.NoError(t, err)
	assert.True(t, empty.Path.Empty())
	assert.Equal(t, -1, empty.NearestIndex(5))
}

func TestLineLayout_NearestAndTooltip(t *testing.T) {
	ll, err := chart.LayoutLine([]float64{0, 50, 100}, 100, 60, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, ll.NearestIndex(60))
	assert.Equal(t, 0, ll.NearestIndex(-20))

	got, ok := ll.TooltipFor(2, chart.TooltipBox{Width: 20, Height: 10}, 4)
	require.True(t, ok)
	assertPoint(t, chart.Point{X: 86, Y: 9}, got)

	_, ok = ll.TooltipFor(3, chart.TooltipBox{}, 0)
	assert.False(t, ok)
}
