package chart

import "math"

// Touch target sizing. Segments can be a few degrees wide, so targets are
// sized for a finger rather than the arc.
const (
	hitRegionScale   = 0.4
	hitRegionMinSize = 60.0

	// navZoneFraction of the chart width on each side maps to previous/next.
	navZoneFraction = 0.2
)

// HitRegion is a square touch target centered on a segment.
type HitRegion struct {
	Index   int
	CenterX float64
	CenterY float64
	Size    float64
}

// Contains reports whether p falls inside the region.
func (r HitRegion) Contains(p Point) bool {
	half := r.Size / 2
	return math.Abs(p.X-r.CenterX) <= half && math.Abs(p.Y-r.CenterY) <= half
}

// HitKind classifies a resolved tap.
type HitKind int

// Tap outcomes.
const (
	HitOutside HitKind = iota
	HitSegment
	HitPrevious
	HitNext
)

// Hit is the result of mapping a tap to the chart.
type Hit struct {
	Kind  HitKind
	Index int // segment index when Kind == HitSegment
}

// HitMap is the set of touch targets for one layout.
//
// This is an approximation for backends without per-path hit testing: square
// targets overlap on thin segments and the last registered region wins. A
// backend with native path containment should replace HitMap wholesale.
type HitMap struct {
	Regions []HitRegion
	Width   float64
	Height  float64
}

// HitRegionsFor builds one region per drawable segment, centered on the
// segment's mid-angle at the mid-radius. Zero-width segments get no region.
func HitRegionsFor(segments []Segment, geom Geometry) HitMap {
	size := math.Max(geom.Size*hitRegionScale, hitRegionMinSize)
	hm := HitMap{
		Regions: make([]HitRegion, 0, len(segments)),
		Width:   geom.Size,
		Height:  geom.Size,
	}
	for _, s := range segments {
		if s.Span() <= 0 {
			continue
		}
		c := PolarToCartesian(s.MidAngle(), geom.MidRadius(), geom.Center())
		hm.Regions = append(hm.Regions, HitRegion{
			Index:   s.Index,
			CenterX: c.X,
			CenterY: c.Y,
			Size:    size,
		})
	}
	return hm
}

// SegmentAt returns the topmost region containing p.
func (hm HitMap) SegmentAt(p Point) (int, bool) {
	for i := len(hm.Regions) - 1; i >= 0; i-- {
		if hm.Regions[i].Contains(p) {
			return hm.Regions[i].Index, true
		}
	}
	return -1, false
}

// NavZoneAt reports whether p lies in the previous (left) or next (right)
// navigation zone. Zones span the full chart height.
func (hm HitMap) NavZoneAt(p Point) (HitKind, bool) {
	if p.Y < 0 || p.Y > hm.Height || p.X < 0 || p.X > hm.Width {
		return HitOutside, false
	}
	zone := hm.Width * navZoneFraction
	switch {
	case p.X <= zone:
		return HitPrevious, true
	case p.X >= hm.Width-zone:
		return HitNext, true
	}
	return HitOutside, false
}

// Resolve maps a tap to a segment, a navigation zone, or outside. Segment
// targets take precedence over navigation zones.
func (hm HitMap) Resolve(p Point) Hit {
	if i, ok := hm.SegmentAt(p); ok {
		return Hit{Kind: HitSegment, Index: i}
	}
	if kind, ok := hm.NavZoneAt(p); ok {
		return Hit{Kind: kind, Index: -1}
	}
	return Hit{Kind: HitOutside, Index: -1}
}
