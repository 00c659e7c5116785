package render_test

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/render"
)

func layout(t *testing.T) ([]chart.Segment, chart.Geometry) {
	t.Helper()
	geom, err := chart.NewGeometry(200, 20)
	require.NoError(t, err)
	segs, err := chart.LayoutSegments([]chart.Entry{
		{Label: "Groceries", Value: 70, Color: "#4385BE"},
		{Label: "R&D", Value: 20, Color: "green"},
		{Label: "Rent", Value: 10, Color: "not-a-color"},
	}, geom, 2)
	require.NoError(t, err)
	return segs, geom
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"blue", "#4385BE"},
		{"Grey", "#878580"},
		{"#da702c", "#DA702C"},
		{"da702c", "#DA702C"},
		{"nope", render.Fallback},
		{"", render.Fallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render.ResolveColor(tt.in), "token %q", tt.in)
	}
}

func TestWriteSVG(t *testing.T) {
	segs, geom := layout(t)
	var buf bytes.Buffer
	err := render.WriteSVG(&buf, segs, geom, render.Options{
		Background: "#100F0F",
		Track:      "#282726",
		Tooltip: &render.Tooltip{
			Anchor: chart.Point{X: 100, Y: 40},
			Box:    chart.TooltipBox{Width: 120, Height: 48},
			Title:  "R&D",
			Value:  "$20.00",
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200"`))
	assert.Equal(t, 4, strings.Count(out, "<path"), "track plus three segments")
	assert.Contains(t, out, `fill="#4385BE"`)
	assert.Contains(t, out, `fill="#879A39"`)
	assert.Contains(t, out, `fill="`+render.Fallback+`" data-index="2"`)
	assert.Contains(t, out, "<title>R&amp;D</title>")
	assert.Contains(t, out, `<rect x="40" y="16" width="120" height="48"`)
	assert.NotContains(t, out, "R&D<")
}

func TestWriteSVG_SkipsEmptySegments(t *testing.T) {
	geom, err := chart.NewGeometry(100, 10)
	require.NoError(t, err)
	segs, err := chart.LayoutSegments([]chart.Entry{{Value: 1}, {Value: 0}}, geom, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, segs, geom, render.Options{}))
	assert.Equal(t, 1, strings.Count(buf.String(), "<path"))
}

func TestWriteSVG_InvalidGeometry(t *testing.T) {
	var buf bytes.Buffer
	err := render.WriteSVG(&buf, nil, chart.Geometry{Size: 10, InnerRadius: 8, OuterRadius: 4}, render.Options{})
	assert.ErrorIs(t, err, chart.ErrInvalidGeometry)
}

func TestWriteLineSVG(t *testing.T) {
	ll, err := chart.LayoutLine([]float64{0, 50, 100}, 100, 60, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.WriteLineSVG(&buf, ll, "cyan", render.Options{}))
	assert.Contains(t, buf.String(), `stroke="#3AA99F"`)
	assert.Contains(t, buf.String(), "M 10.000 50.000")
}

func TestEncodePNG(t *testing.T) {
	segs, geom := layout(t)
	var buf bytes.Buffer
	require.NoError(t, render.EncodePNG(&buf, segs, geom, render.Options{Background: "#100F0F"}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	// Middle of the Groceries arc.
	p := chart.PolarToCartesian(segs[0].MidAngle(), geom.MidRadius(), geom.Center())
	assertColor(t, img, int(p.X), int(p.Y), 0x43, 0x85, 0xBE)

	// The hole shows the background.
	assertColor(t, img, 100, 100, 0x10, 0x0F, 0x0F)
}

func TestEncodePNG_Scale(t *testing.T) {
	segs, geom := layout(t)
	var buf bytes.Buffer
	require.NoError(t, render.EncodePNG(&buf, segs, geom, render.Options{Scale: 2}))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func assertColor(t *testing.T, img image.Image, x, y int, r, g, b uint8) {
	t.Helper()
	cr, cg, cb, _ := img.At(x, y).RGBA()
	assert.InDelta(t, float64(r), float64(cr>>8), 2, "red at %d,%d", x, y)
	assert.InDelta(t, float64(g), float64(cg>>8), 2, "green at %d,%d", x, y)
	assert.InDelta(t, float64(b), float64(cb>>8), 2, "blue at %d,%d", x, y)
}

func TestRasterize(t *testing.T) {
	segs, geom := layout(t)
	g := render.Rasterize(segs, geom, 20, 10)
	assert.Equal(t, 10.0, g.CellW)
	assert.Equal(t, 20.0, g.CellH)

	top, bottom := g.At(10, 5)
	assert.Equal(t, render.CellEmpty, top, "hole")
	assert.Equal(t, render.CellEmpty, bottom)

	top, _ = g.At(17, 7)
	assert.Equal(t, 0, top, "lower right is Groceries")

	top, bottom = g.At(-1, 50)
	assert.Equal(t, render.CellEmpty, top)
	assert.Equal(t, render.CellEmpty, bottom)

	assert.Equal(t, chart.Point{X: 5, Y: 10}, g.ChartPoint(0, 0))
}

func TestSegmentAt(t *testing.T) {
	segs, geom := layout(t)

	i, ok := render.SegmentAt(segs, geom, chart.PolarToCartesian(segs[1].MidAngle(), 90, geom.Center()))
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	// The 2° gap after Groceries.
	i, ok = render.SegmentAt(segs, geom, chart.PolarToCartesian(251, 90, geom.Center()))
	assert.False(t, ok)
	assert.Equal(t, render.CellTrack, i)
}

func TestTooltipFor(t *testing.T) {
	d, err := chart.NewDonut(chart.DonutOptions{Size: 200, StrokeWidth: 20, GapDegrees: 2})
	require.NoError(t, err)
	require.NoError(t, d.SetSeries([]chart.Entry{{Label: "Rent", Value: 10}, {Label: "Food", Value: 5}}))

	box := chart.TooltipBox{Width: 80, Height: 30}
	assert.Nil(t, render.TooltipFor(d, box, "$10.00"))

	require.True(t, d.Select(1))
	tt := render.TooltipFor(d, box, "$5.00")
	require.NotNil(t, tt)
	assert.Equal(t, "Food", tt.Title)
	assert.Equal(t, d.State().Anchor, tt.Anchor)
}
