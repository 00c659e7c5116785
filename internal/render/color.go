// Package render draws chart layouts. Each backend takes the segments and
// geometry computed by package chart and turns them into SVG, PNG or
// terminal cells; none of them compute layout themselves.
package render

import (
	"strings"

	"github.com/gogpu/gg"
)

// Named color tokens accepted in addition to "#RRGGBB" hex (Flexoki).
var namedColors = map[string]string{
	"red":    "#D14D41",
	"orange": "#DA702C",
	"yellow": "#D0A215",
	"green":  "#879A39",
	"cyan":   "#3AA99F",
	"blue":   "#4385BE",
	"purple": "#8B7EC8",
	"pink":   "#CE5D97",
	"grey":   "#878580",
	"gray":   "#878580",
}

// Fallback is used for color tokens that are neither named nor valid hex.
const Fallback = "#878580"

// ResolveColor maps a segment color token to "#RRGGBB". Unknown tokens
// resolve to Fallback.
func ResolveColor(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if hex, ok := namedColors[t]; ok {
		return hex
	}
	if !strings.HasPrefix(t, "#") {
		t = "#" + t
	}
	if _, err := gg.ParseHex(t); err != nil {
		return Fallback
	}
	return strings.ToUpper(t)
}
