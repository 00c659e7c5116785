package render

import "github.com/theirongolddev/budgetring/internal/chart"

// Options controls how a donut is drawn.
type Options struct {
	Background string  // color token; empty means transparent
	Track      string  // ring color drawn under the segments; empty skips it
	Scale      float64 // output pixels per chart pixel (PNG only), default 1

	// Tooltip, when non-nil, is drawn as an overlay box centered on its
	// anchor.
	Tooltip *Tooltip
}

// Tooltip is an overlay box with up to two lines of text.
type Tooltip struct {
	Anchor chart.Point
	Box    chart.TooltipBox
	Title  string
	Value  string
}

// TooltipFor builds the overlay for the donut's current selection, or nil
// when nothing is selected.
func TooltipFor(d *chart.Donut, box chart.TooltipBox, value string) *Tooltip {
	st := d.State()
	seg, ok := d.Selected()
	if !ok || !st.TooltipVisible {
		return nil
	}
	return &Tooltip{Anchor: st.Anchor, Box: box, Title: seg.Label, Value: value}
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}
