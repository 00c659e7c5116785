package chart

// TooltipBox is the nominal size of the annotation box. It is used for
// clamping only and is never measured from rendered content.
type TooltipBox struct {
	Width  float64
	Height float64
}

// TooltipPlacement configures PlaceTooltip.
type TooltipPlacement struct {
	Box     TooltipBox
	Padding float64 // minimum distance between the box and the chart edge
	Offset  float64 // distance beyond the outer radius to project the anchor
}

// DefaultTooltipPlacement matches the dashboard's tooltip card.
var DefaultTooltipPlacement = TooltipPlacement{
	Box:     TooltipBox{Width: 120, Height: 48},
	Padding: 8,
	Offset:  12,
}

// PlaceTooltip returns the center of the tooltip box for seg. The anchor is
// projected outward along the segment's mid-angle and only then clamped into
// the chart box.
func PlaceTooltip(seg Segment, geom Geometry, p TooltipPlacement) Point {
	anchor := PolarToCartesian(seg.MidAngle(), geom.OuterRadius+p.Offset, geom.Center())
	return ClampAnchor(anchor, p.Box, geom.Size, geom.Size, p.Padding)
}

// ClampAnchor keeps a box centered on anchor inside a width×height area.
// Each axis is clamped independently, upper bound first: when the box does
// not fit, the lower bound wins and the box sticks to the top/left edge.
func ClampAnchor(anchor Point, box TooltipBox, width, height, padding float64) Point {
	return Point{
		X: clampAxis(anchor.X, box.Width, width, padding),
		Y: clampAxis(anchor.Y, box.Height, height, padding),
	}
}

func clampAxis(v, extent, size, padding float64) float64 {
	half := extent / 2
	if v+half > size-padding {
		v = size - half - padding
	}
	if v-half < padding {
		v = half + padding
	}
	return v
}
