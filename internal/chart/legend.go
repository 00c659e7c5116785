package chart

import "strconv"

// CurrencyFormatter turns an amount into a display string. The chart owns
// no locale knowledge.
type CurrencyFormatter interface {
	FormatCurrency(amount float64) string
}

// LegendEntry is the display data for one segment.
type LegendEntry struct {
	Index       int
	Label       string
	Color       string
	Percentage  float64
	PercentText string
	ValueText   string
}

// Legend derives per-segment display strings in segment order.
func Legend(segments []Segment, f CurrencyFormatter) []LegendEntry {
	out := make([]LegendEntry, len(segments))
	for i, s := range segments {
		e := LegendEntry{
			Index:       s.Index,
			Label:       s.Label,
			Color:       s.Color,
			Percentage:  s.Percentage,
			PercentText: FormatPercentage(s.Percentage),
		}
		if f != nil {
			e.ValueText = f.FormatCurrency(s.Value)
		} else {
			e.ValueText = strconv.FormatFloat(s.Value, 'f', 2, 64)
		}
		out[i] = e
	}
	return out
}

// FormatPercentage renders a 0-100 share with one decimal place.
func FormatPercentage(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
