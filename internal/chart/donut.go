package chart

import "fmt"

// DonutOptions configures an interactive donut chart.
type DonutOptions struct {
	Size        float64
	StrokeWidth float64
	GapDegrees  float64
	Tooltip     TooltipPlacement

	Haptics           Haptics
	OnSegmentSelected func(index int)
}

// SelectionState is a snapshot of a chart's interaction state for overlay
// renderers.
type SelectionState struct {
	Index          int // -1 when nothing is selected
	Selected       bool
	TooltipVisible bool
	Anchor         Point
}

// Donut is one interactive donut chart instance. It owns its selection;
// separate charts never share state.
type Donut struct {
	opts     DonutOptions
	geom     Geometry
	series   []Entry
	segments []Segment
	hits     HitMap
	sel      *Selection
	anchor   Point
}

// NewDonut validates the geometry and returns an empty donut. Call SetSeries
// to lay out data.
func NewDonut(opts DonutOptions) (*Donut, error) {
	geom, err := NewGeometry(opts.Size, opts.StrokeWidth)
	if err != nil {
		return nil, fmt.Errorf("donut: %w", err)
	}
	if opts.Tooltip == (TooltipPlacement{}) {
		opts.Tooltip = DefaultTooltipPlacement
	}
	return &Donut{
		opts: opts,
		geom: geom,
		sel:  NewSelection(0, opts.Haptics, opts.OnSegmentSelected),
	}, nil
}

// SetSeries replaces the data, recomputes the layout and resets selection.
// On error the donut is left empty and the caller should show an empty state.
func (d *Donut) SetSeries(series []Entry) error {
	d.series = append(d.series[:0], series...)
	segments, err := LayoutSegments(d.series, d.geom, d.opts.GapDegrees)
	if err != nil {
		d.segments = nil
		d.hits = HitMap{Width: d.geom.Size, Height: d.geom.Size}
		d.sel.Reset(0)
		return err
	}
	d.segments = segments
	d.hits = HitRegionsFor(segments, d.geom)
	d.sel.Reset(len(segments))
	return nil
}

// Geometry returns the ring geometry.
func (d *Donut) Geometry() Geometry { return d.geom }

// Segments returns the current layout.
func (d *Donut) Segments() []Segment { return d.segments }

// HitMap returns the current touch targets.
func (d *Donut) HitMap() HitMap { return d.hits }

// Empty reports whether there is nothing to draw.
func (d *Donut) Empty() bool { return len(d.segments) == 0 }

// Legend returns display rows for the current layout.
func (d *Donut) Legend(f CurrencyFormatter) []LegendEntry {
	return Legend(d.segments, f)
}

// Tap routes a tap at p through the hit map.
func (d *Donut) Tap(p Point) Hit {
	hit := d.hits.Resolve(p)
	switch hit.Kind {
	case HitSegment:
		d.sel.TapSegment(hit.Index)
	case HitPrevious:
		d.sel.Navigate(Backward)
	case HitNext:
		d.sel.Navigate(Forward)
	default:
		d.sel.TapOutside()
	}
	d.updateAnchor()
	return hit
}

// Select selects segment i directly, as a tap on it would.
func (d *Donut) Select(i int) bool {
	ok := d.sel.TapSegment(i)
	d.updateAnchor()
	return ok
}

// Swipe moves the selection one segment in dir.
func (d *Donut) Swipe(dir Direction) bool {
	ok := d.sel.Navigate(dir)
	d.updateAnchor()
	return ok
}

// Dismiss clears the selection.
func (d *Donut) Dismiss() {
	d.sel.TapOutside()
	d.updateAnchor()
}

// Selected returns the selected segment.
func (d *Donut) Selected() (Segment, bool) {
	i, ok := d.sel.Selected()
	if !ok || i >= len(d.segments) {
		return Segment{}, false
	}
	return d.segments[i], true
}

// State returns the current selection snapshot.
func (d *Donut) State() SelectionState {
	i, ok := d.sel.Selected()
	if !ok {
		return SelectionState{Index: -1}
	}
	return SelectionState{
		Index:          i,
		Selected:       true,
		TooltipVisible: true,
		Anchor:         d.anchor,
	}
}

func (d *Donut) updateAnchor() {
	seg, ok := d.Selected()
	if !ok {
		d.anchor = Point{}
		return
	}
	d.anchor = PlaceTooltip(seg, d.geom, d.opts.Tooltip)
}
