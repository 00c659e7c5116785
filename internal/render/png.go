package render

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"

	"github.com/theirongolddev/budgetring/internal/chart"
)

// flattenStep is the arc subdivision used for rasterizing, in degrees.
const flattenStep = 1.0

// WritePNG rasterizes the donut and writes it to path.
func WritePNG(path string, segments []chart.Segment, geom chart.Geometry, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodePNG(f, segments, geom, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodePNG rasterizes the donut with gg's software renderer and encodes
// it as PNG to w. Tooltip text is not drawn; only its box is.
func EncodePNG(w io.Writer, segments []chart.Segment, geom chart.Geometry, opts Options) error {
	dc, err := drawDonut(segments, geom, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func drawDonut(segments []chart.Segment, geom chart.Geometry, opts Options) (*gg.Context, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	scale := opts.scale()
	px := max(int(geom.Size*scale+0.5), 1)

	dc := gg.NewContext(px, px)
	dc.Scale(scale, scale)
	if opts.Background != "" {
		dc.ClearWithColor(gg.Hex(ResolveColor(opts.Background)))
	}

	if opts.Track != "" {
		track, err := chart.ArcPath(geom.Center(), 0, 360, geom.InnerRadius, geom.OuterRadius)
		if err != nil {
			dc.Close()
			return nil, fmt.Errorf("track: %w", err)
		}
		if err := fillPath(dc, track, opts.Track); err != nil {
			dc.Close()
			return nil, err
		}
	}

	for _, s := range segments {
		if s.Path.Empty() {
			continue
		}
		if err := fillPath(dc, s.Path, s.Color); err != nil {
			dc.Close()
			return nil, fmt.Errorf("segment %d: %w", s.Index, err)
		}
	}

	if t := opts.Tooltip; t != nil {
		dc.DrawRoundedRectangle(t.Anchor.X-t.Box.Width/2, t.Anchor.Y-t.Box.Height/2, t.Box.Width, t.Box.Height, 6)
		dc.SetHexColor("#1C1B1A")
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("tooltip: %w", err)
		}
	}
	return dc, nil
}

func fillPath(dc *gg.Context, p chart.Path, color string) error {
	for _, poly := range p.Flatten(flattenStep) {
		if len(poly) < 3 {
			continue
		}
		dc.MoveTo(poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
	}
	dc.SetHexColor(ResolveColor(color))
	return dc.Fill()
}
