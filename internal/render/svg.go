package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/budgetring/internal/chart"
)

// WriteSVG writes a standalone SVG document for the donut to w.
func WriteSVG(w io.Writer, segments []chart.Segment, geom chart.Geometry, opts Options) error {
	if err := geom.Validate(); err != nil {
		return err
	}

	var b strings.Builder
	size := fmtNum(geom.Size)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		size, size, size, size)

	if opts.Background != "" {
		fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", ResolveColor(opts.Background))
	}
	if opts.Track != "" {
		track, err := chart.ArcPath(geom.Center(), 0, 360, geom.InnerRadius, geom.OuterRadius)
		if err != nil {
			return fmt.Errorf("track: %w", err)
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="%s"/>`+"\n", track.SVG(), ResolveColor(opts.Track))
	}

	for _, s := range segments {
		if s.Path.Empty() {
			continue
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="%s" data-index="%d"><title>%s</title></path>`+"\n",
			s.Path.SVG(), ResolveColor(s.Color), s.Index, escape(s.Label))
	}

	if t := opts.Tooltip; t != nil {
		writeTooltipSVG(&b, t)
	}
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTooltipSVG(b *strings.Builder, t *Tooltip) {
	x := t.Anchor.X - t.Box.Width/2
	y := t.Anchor.Y - t.Box.Height/2
	fmt.Fprintf(b, `  <g class="tooltip">`+"\n")
	fmt.Fprintf(b, `    <rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="#1C1B1A" stroke="#575653"/>`+"\n",
		fmtNum(x), fmtNum(y), fmtNum(t.Box.Width), fmtNum(t.Box.Height))
	cx := fmtNum(t.Anchor.X)
	fmt.Fprintf(b, `    <text x="%s" y="%s" text-anchor="middle" font-size="12" fill="#FFFCF0">%s</text>`+"\n",
		cx, fmtNum(t.Anchor.Y-4), escape(t.Title))
	fmt.Fprintf(b, `    <text x="%s" y="%s" text-anchor="middle" font-size="12" font-weight="bold" fill="#FFFCF0">%s</text>`+"\n",
		cx, fmtNum(t.Anchor.Y+12), escape(t.Value))
	b.WriteString("  </g>\n")
}

// WriteLineSVG writes a polyline chart for a line layout.
func WriteLineSVG(w io.Writer, ll chart.LineLayout, color string, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		fmtNum(ll.Width), fmtNum(ll.Height), fmtNum(ll.Width), fmtNum(ll.Height))
	if opts.Background != "" {
		fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", ResolveColor(opts.Background))
	}
	if !ll.Path.Empty() {
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round"/>`+"\n",
			ll.Path.SVG(), ResolveColor(color))
	}
	if t := opts.Tooltip; t != nil {
		writeTooltipSVG(&b, t)
	}
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func fmtNum(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
