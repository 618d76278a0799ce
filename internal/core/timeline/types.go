package timeline

import "time"

// Day is the length of one diary day.
const Day = 24 * time.Hour

// DefaultWindowStart is where ATUS diaries begin and end: 04:00.
const DefaultWindowStart = 4 * time.Hour

// Window is the fixed two-day span a diary is drawn on, [Start, Start+24h].
type Window struct {
	Start time.Duration
}

// End returns the exclusive end of the window.
func (w Window) End() time.Duration {
	return w.Start + Day
}

// Contains reports whether offset lies inside the window.
func (w Window) Contains(offset time.Duration) bool {
	return offset >= w.Start && offset <= w.End()
}
