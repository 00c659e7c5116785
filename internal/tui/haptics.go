package tui

import (
	"io"

	"github.com/theirongolddev/budgetring/internal/chart"
)

// bell is the terminal's stand-in for haptic feedback. Only deliberate
// taps ring; keyboard stepping through segments stays quiet.
type bell struct {
	w io.Writer
}

func newBell(w io.Writer, enabled bool) chart.Haptics {
	if !enabled || w == nil {
		return nil
	}
	return bell{w: w}
}

// Trigger implements chart.Haptics.
func (b bell) Trigger(style chart.HapticStyle) {
	if style != chart.HapticSelection {
		return
	}
	_, _ = io.WriteString(b.w, "\a")
}
