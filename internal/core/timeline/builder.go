package timeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// ParseClock parses an "HH:MM" wall-clock string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	if len(s) < 4 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	sep := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(s)-1 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(s[:sep])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minutes := s[sep+1:]
	if len(minutes) > 2 {
		minutes = minutes[:2] // "HH:MM:SS" keeps minute precision
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock out of range %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// Normalize computes Begin/End for each interval of a diary in place.
//
// Each interval stops where the next one starts; the last one stops at the
// window start of the following day. Intervals are laid out left to right:
// the first interval whose start is later than its stop has crossed midnight,
// so its stop moves to the next day, and every later interval is shifted by a
// day as well. A last interval starting exactly at the window start spans the
// whole day.
func Normalize(acts []model.Activity, w Window) error {
	starts := make([]time.Duration, len(acts))
	for i := range acts {
		start, err := ParseClock(acts[i].Start)
		if err != nil {
			return fmt.Errorf("activity %d: %w", i, err)
		}
		starts[i] = start
	}

	nextDay := false
	for i := range acts {
		start := starts[i]
		stop := w.Start
		if i < len(acts)-1 {
			stop = starts[i+1]
		}
		if nextDay {
			start += Day
			stop += Day
		} else if start > stop || (i == len(acts)-1 && start == stop) {
			nextDay = true
			stop += Day
		}
		acts[i].Num = i
		acts[i].Begin = start
		acts[i].End = stop
	}
	return nil
}
