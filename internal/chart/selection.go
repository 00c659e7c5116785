package chart

//go:generate mockgen -destination=mocks/mock_chart.go -package=mocks github.com/theirongolddev/budgetring/internal/chart Haptics,CurrencyFormatter

// HapticStyle names the kind of feedback requested from the host.
type HapticStyle int

// Feedback styles.
const (
	HapticSelection HapticStyle = iota
	HapticLight
)

// Haptics is the host's feedback hook. Trigger must not block; the chart
// never waits on or inspects the outcome.
type Haptics interface {
	Trigger(style HapticStyle)
}

// Direction is a discrete navigation step.
type Direction int

// Navigation directions.
const (
	Forward Direction = iota
	Backward
)

// Selection tracks which segment of one chart instance is highlighted.
// It is either Idle (nothing selected) or Selected(i).
//
// The zero value is an Idle selection over an empty series.
type Selection struct {
	count    int
	index    int
	selected bool

	haptics  Haptics
	onSelect func(index int)
}

// NewSelection returns an Idle selection over n segments.
func NewSelection(n int, haptics Haptics, onSelect func(index int)) *Selection {
	if n < 0 {
		n = 0
	}
	return &Selection{count: n, haptics: haptics, onSelect: onSelect}
}

// Selected returns the selected index, or false when Idle.
func (s *Selection) Selected() (int, bool) {
	if !s.selected {
		return -1, false
	}
	return s.index, true
}

// Len is the number of segments the selection ranges over.
func (s *Selection) Len() int {
	return s.count
}

// TapSegment selects segment i from any state. Out-of-range taps are ignored
// and reported as false.
func (s *Selection) TapSegment(i int) bool {
	if i < 0 || i >= s.count {
		return false
	}
	s.selectIndex(i, HapticSelection)
	return true
}

// TapOutside dismisses the current selection.
func (s *Selection) TapOutside() {
	s.selected = false
	s.index = 0
}

// Navigate moves the selection one step with wraparound. From Idle it enters
// at the first segment regardless of direction.
func (s *Selection) Navigate(dir Direction) bool {
	if s.count == 0 {
		return false
	}
	next := 0
	if s.selected {
		switch dir {
		case Backward:
			next = (s.index - 1 + s.count) % s.count
		default:
			next = (s.index + 1) % s.count
		}
	}
	s.selectIndex(next, HapticLight)
	return true
}

// Reset invalidates the selection after the data series changed. Indices are
// not stable across series, so the state returns to Idle.
func (s *Selection) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.count = n
	s.selected = false
	s.index = 0
}

func (s *Selection) selectIndex(i int, style HapticStyle) {
	s.index = i
	s.selected = true
	if s.haptics != nil {
		s.haptics.Trigger(style)
	}
	if s.onSelect != nil {
		s.onSelect(i)
	}
}
