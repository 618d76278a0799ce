// Package scene is an in-memory scene graph: keyed visual elements with a
// state tag, a fading marker, opacity transitions and named overlays.
package scene

import (
	"sort"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// NoSegment marks an element without a highlighted sub-element.
const NoSegment = -1

type transition struct {
	from, to float64
	start    time.Time
	duration time.Duration
	ease     Ease
	remove   bool
}

// Element is one bound visual element.
type Element struct {
	ID       int
	RecordID int
	Tag      model.VisualState
	// Fading is set for the whole exit transition. A fading element is
	// never matched by Live and is removed once the transition ends.
	Fading  bool
	Opacity float64
	// Slot is the layout position assigned by the latest bind.
	Slot int

	Hovered         bool
	Segment         int
	SummaryDetached bool

	// Attrs carries renderer attributes that outlive rebinds.
	Attrs map[string]string

	tr *transition
}

// Transitioning reports whether an opacity transition is in flight.
func (e *Element) Transitioning() bool {
	return e.tr != nil
}

// Overlay is a tooltip-like panel drawn above the elements.
type Overlay struct {
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
}

// Graph holds the elements of one dashboard. It is not safe for concurrent use.
type Graph struct {
	clock    Clock
	elements []*Element
	nextID   int
	overlays map[string]Overlay
}

// New creates an empty graph. A nil clock means the system clock.
func New(clock Clock) *Graph {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Graph{clock: clock, overlays: make(map[string]Overlay)}
}

// Clock returns the graph's clock.
func (g *Graph) Clock() Clock { return g.clock }

// Create adds an invisible element for recordID under tag.
func (g *Graph) Create(recordID int, tag model.VisualState) *Element {
	g.nextID++
	e := &Element{
		ID:       g.nextID,
		RecordID: recordID,
		Tag:      tag,
		Segment:  NoSegment,
		Attrs:    make(map[string]string),
	}
	g.elements = append(g.elements, e)
	return e
}

// Live returns the non-fading elements carrying tag, in creation order.
func (g *Graph) Live(tag model.VisualState) []*Element {
	var out []*Element
	for _, e := range g.elements {
		if e.Tag == tag && !e.Fading {
			out = append(out, e)
		}
	}
	return out
}

// Elements returns every element, fading ones included, in creation order.
func (g *Graph) Elements() []*Element {
	out := make([]*Element, len(g.elements))
	copy(out, g.elements)
	return out
}

// Len returns the number of elements, fading ones included.
func (g *Graph) Len() int { return len(g.elements) }

// Find returns the element with the given element id.
func (g *Graph) Find(id int) (*Element, bool) {
	for _, e := range g.elements {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Retag moves every element tagged from to to, fading ones included, and
// returns how many moved.
func (g *Graph) Retag(from, to model.VisualState) int {
	n := 0
	for _, e := range g.elements {
		if e.Tag == from {
			e.Tag = to
			n++
		}
	}
	return n
}

// FadeIn starts an opacity transition to 1, replacing any transition in flight.
func (g *Graph) FadeIn(e *Element, d time.Duration, ease Ease) {
	g.start(e, 1, d, ease, false)
}

// FadeOut marks e fading and starts an opacity transition to 0, after which
// the element is removed.
func (g *Graph) FadeOut(e *Element, d time.Duration, ease Ease) {
	e.Fading = true
	g.start(e, 0, d, ease, true)
}

func (g *Graph) start(e *Element, to float64, d time.Duration, ease Ease, remove bool) {
	if d <= 0 {
		e.Opacity = to
		e.tr = nil
		if remove {
			g.remove(e.ID)
		}
		return
	}
	if ease == nil {
		ease = Linear
	}
	e.tr = &transition{from: e.Opacity, to: to, start: g.clock.Now(), duration: d, ease: ease, remove: remove}
}

// Advance evaluates every transition at now, removes elements whose exit has
// finished and returns their element ids.
func (g *Graph) Advance(now time.Time) []int {
	var removed []int
	kept := g.elements[:0]
	for _, e := range g.elements {
		if e.tr != nil {
			p := float64(now.Sub(e.tr.start)) / float64(e.tr.duration)
			if p >= 1 {
				e.Opacity = e.tr.to
				done := e.tr
				e.tr = nil
				if done.remove {
					removed = append(removed, e.ID)
					continue
				}
			} else if p > 0 {
				e.Opacity = e.tr.from + (e.tr.to-e.tr.from)*e.tr.ease(p)
			}
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(g.elements); i++ {
		g.elements[i] = nil
	}
	g.elements = kept
	return removed
}

// Settle advances the graph to its clock's current time.
func (g *Graph) Settle() []int {
	return g.Advance(g.clock.Now())
}

func (g *Graph) remove(id int) {
	for i, e := range g.elements {
		if e.ID == id {
			g.elements = append(g.elements[:i], g.elements[i+1:]...)
			return
		}
	}
}

// SetOverlay installs o, replacing an overlay of the same name.
func (g *Graph) SetOverlay(o Overlay) {
	g.overlays[o.Name] = o
}

// RemoveOverlay removes the named overlay. Removing a missing overlay is not
// an error; the return value reports whether one was present.
func (g *Graph) RemoveOverlay(name string) bool {
	if _, ok := g.overlays[name]; !ok {
		return false
	}
	delete(g.overlays, name)
	return true
}

// Overlays returns the installed overlays sorted by name.
func (g *Graph) Overlays() []Overlay {
	out := make([]Overlay, 0, len(g.overlays))
	for _, o := range g.overlays {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset drops every element and overlay.
func (g *Graph) Reset() {
	g.elements = nil
	g.overlays = make(map[string]Overlay)
}
