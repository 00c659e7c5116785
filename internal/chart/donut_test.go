package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/chart/mocks"
)

func newDonut(t *testing.T, opts chart.DonutOptions) *chart.Donut {
	t.Helper()
	if opts.Size == 0 {
		opts.Size = 200
		opts.StrokeWidth = 20
		opts.GapDegrees = 2
	}
	d, err := chart.NewDonut(opts)
	require.NoError(t, err)
	return d
}

func TestNewDonut_InvalidGeometry(t *testing.T) {
	_, err := chart.NewDonut(chart.DonutOptions{Size: 10, StrokeWidth: 40})
	assert.ErrorIs(t, err, chart.ErrInvalidGeometry)
}

func TestDonut_EmptySeries(t *testing.T) {
	d := newDonut(t, chart.DonutOptions{})
	err := d.SetSeries([]chart.Entry{{Label: "nothing", Value: 0}})
	assert.ErrorIs(t, err, chart.ErrDivisionByZero)
	assert.True(t, d.Empty())
	assert.False(t, d.Swipe(chart.Forward))
	assert.Equal(t, chart.SelectionState{Index: -1}, d.State())
}

func TestDonut_TapSelectsAndPlacesTooltip(t *testing.T) {
	ctrl := gomock.NewController(t)
	haptics := mocks.NewMockHaptics(ctrl)
	haptics.EXPECT().Trigger(chart.HapticSelection)

	var selected []int
	d := newDonut(t, chart.DonutOptions{
		Size: 200, StrokeWidth: 20, GapDegrees: 2,
		Haptics:           haptics,
		OnSegmentSelected: func(i int) { selected = append(selected, i) },
	})
	require.NoError(t, d.SetSeries(budgetSeries()))

	geom := d.Geometry()
	seg := d.Segments()[1]
	tap := chart.PolarToCartesian(seg.MidAngle(), geom.MidRadius(), geom.Center())

	hit := d.Tap(tap)
	assert.Equal(t, chart.Hit{Kind: chart.HitSegment, Index: 1}, hit)

	st := d.State()
	assert.True(t, st.Selected)
	assert.True(t, st.TooltipVisible)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, chart.PlaceTooltip(seg, geom, chart.DefaultTooltipPlacement), st.Anchor)
	assert.Equal(t, []int{1}, selected)
}

func TestDonut_TapHoleDismisses(t *testing.T) {
	d := newDonut(t, chart.DonutOptions{})
	require.NoError(t, d.SetSeries(budgetSeries()))
	require.True(t, d.Select(0))

	hit := d.Tap(chart.Point{X: 100, Y: 100})
	assert.Equal(t, chart.HitOutside, hit.Kind)
	assert.False(t, d.State().Selected)
}

func TestDonut_NavZones(t *testing.T) {
	d := newDonut(t, chart.DonutOptions{})
	require.NoError(t, d.SetSeries(budgetSeries()))

	d.Tap(chart.Point{X: 195, Y: 30})
	seg, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "Groceries", seg.Label)

	d.Tap(chart.Point{X: 5, Y: 150})
	seg, _ = d.Selected()
	assert.Equal(t, "Rent", seg.Label, "previous wraps to the last segment")
}

func TestDonut_SetSeriesResetsSelection(t *testing.T) {
	d := newDonut(t, chart.DonutOptions{})
	require.NoError(t, d.SetSeries(budgetSeries()))
	require.True(t, d.Swipe(chart.Backward))
	require.True(t, d.State().Selected)

	require.NoError(t, d.SetSeries([]chart.Entry{{Label: "Rent", Value: 900}}))
	assert.False(t, d.State().Selected)
	assert.Len(t, d.Segments(), 1)
}

func TestDonut_Legend(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := mocks.NewMockCurrencyFormatter(ctrl)
	f.EXPECT().FormatCurrency(70.0).Return("$70.00")
	f.EXPECT().FormatCurrency(20.0).Return("$20.00")
	f.EXPECT().FormatCurrency(10.0).Return("$10.00")

	d := newDonut(t, chart.DonutOptions{})
	require.NoError(t, d.SetSeries(budgetSeries()))

	rows := d.Legend(f)
	require.Len(t, rows, 3)
	assert.Equal(t, "Groceries", rows[0].Label)
	assert.Equal(t, "70.0%", rows[0].PercentText)
	assert.Equal(t, "$70.00", rows[0].ValueText)
	assert.Equal(t, "grey", rows[2].Color)
	assert.Equal(t, "10.0%", rows[2].PercentText)
}

func TestLegend_WithoutFormatter(t *testing.T) {
	rows := chart.Legend([]chart.Segment{{Label: "x", Value: 12.5, Percentage: 33.333}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "12.50", rows[0].ValueText)
	assert.Equal(t, "33.3%", rows[0].PercentText)
}

func TestDonut_IndependentInstances(t *testing.T) {
	a := newDonut(t, chart.DonutOptions{})
	b := newDonut(t, chart.DonutOptions{})
	require.NoError(t, a.SetSeries(budgetSeries()))
	require.NoError(t, b.SetSeries(budgetSeries()))

	a.Select(2)
	assert.True(t, a.State().Selected)
	assert.False(t, b.State().Selected)
}
