// Package scale maps data values onto pixel ranges.
package scale

import (
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/penwyp/go-survey-explorer/internal/core/timeline"
)

// Linear maps the domain [d0, d1] onto the range [r0, r1].
type Linear struct {
	s      mscale.Linear
	r0, r1 float64
}

// NewLinear creates a linear scale. Ranges may be inverted, as for y axes.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{s: mscale.Linear{Min: d0, Max: d1}, r0: r0, r1: r1}
}

// Clamped returns a copy that clamps inputs to the domain.
func (l Linear) Clamped() Linear {
	l.s.SetClamp(true)
	return l
}

// WithRange returns a copy mapping onto [r0, r1].
func (l Linear) WithRange(r0, r1 float64) Linear {
	l.r0, l.r1 = r0, r1
	return l
}

// Map converts a domain value to a range value.
func (l Linear) Map(x float64) float64 {
	return l.r0 + l.s.Map(x)*(l.r1-l.r0)
}

// Invert converts a range value back to the domain.
func (l Linear) Invert(y float64) float64 {
	if l.r1 == l.r0 {
		return l.s.Min
	}
	return l.s.Unmap((y - l.r0) / (l.r1 - l.r0))
}

// Domain returns the input bounds.
func (l Linear) Domain() (float64, float64) { return l.s.Min, l.s.Max }

// Range returns the output bounds.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Ticks returns at most max round tick values inside the domain.
func (l Linear) Ticks(max int) []float64 {
	major, _ := l.s.Ticks(mscale.TickOptions{Max: max})
	lo, hi := l.s.Min, l.s.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	out := major[:0:0]
	for _, t := range major {
		if t >= lo && t <= hi {
			out = append(out, t)
		}
	}
	return out
}

// Time maps offsets of a two-day timeline window onto a pixel range.
type Time struct {
	window timeline.Window
	lin    Linear
}

// NewTime creates a time scale spanning the whole window.
func NewTime(w timeline.Window, r0, r1 float64) Time {
	return Time{
		window: w,
		lin:    NewLinear(w.Start.Hours(), w.End().Hours(), r0, r1).Clamped(),
	}
}

// Map converts an offset from midnight of the first day to a range value.
func (t Time) Map(d time.Duration) float64 {
	return t.lin.Map(d.Hours())
}

// Width is the range extent of the interval [begin, end].
func (t Time) Width(begin, end time.Duration) float64 {
	return t.Map(end) - t.Map(begin)
}

// HourTicks returns offsets every step hours from the window start, both ends included.
func (t Time) HourTicks(step int) []time.Duration {
	if step <= 0 {
		step = 1
	}
	var out []time.Duration
	for d := t.window.Start; d <= t.window.End(); d += time.Duration(step) * time.Hour {
		out = append(out, d)
	}
	return out
}

// WithRange returns a copy mapping onto [r0, r1].
func (t Time) WithRange(r0, r1 float64) Time {
	t.lin = t.lin.WithRange(r0, r1)
	return t
}
