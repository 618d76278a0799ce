package binder

import (
	"errors"
	"fmt"

	"github.com/penwyp/go-survey-explorer/internal/core/scene"
)

// ErrNoElement is returned when hovering an element that is gone or fading.
var ErrNoElement = errors.New("no live element")

// HoverScene is the part of the scene graph element hover needs.
type HoverScene interface {
	Find(id int) (*scene.Element, bool)
	SetOverlay(o scene.Overlay)
	RemoveOverlay(name string) bool
}

// HoverTarget describes what hovering one element shows.
type HoverTarget struct {
	ElementID int
	// Segment is the highlighted sub-element, or scene.NoSegment.
	Segment int
	// DetachSummary hides the element's summary while the overlays show.
	DetachSummary bool
	Overlays      []scene.Overlay
}

// Hover enlarges a single element and shows its overlays.
type Hover struct {
	scene    HoverScene
	current  int
	overlays []string
}

// NewHover creates a hover controller over s.
func NewHover(s HoverScene) *Hover {
	return &Hover{scene: s}
}

// Current returns the hovered element id, or 0.
func (h *Hover) Current() int { return h.current }

// Over highlights the target element and replaces any overlays left by a
// previous hover.
func (h *Hover) Over(t HoverTarget) error {
	e, ok := h.scene.Find(t.ElementID)
	if !ok || e.Fading {
		return fmt.Errorf("%w: %d", ErrNoElement, t.ElementID)
	}
	if h.current != 0 {
		h.Out(h.current)
	}
	h.clearOverlays()

	e.Hovered = true
	e.Segment = t.Segment
	e.SummaryDetached = t.DetachSummary
	for _, o := range t.Overlays {
		h.scene.SetOverlay(o)
		h.overlays = append(h.overlays, o.Name)
	}
	h.current = e.ID
	return nil
}

// Out reverses Over for elementID. It is a no-op for any other element, and
// tolerates the element having been removed in the meantime.
func (h *Hover) Out(elementID int) {
	if elementID != h.current {
		return
	}
	if e, ok := h.scene.Find(elementID); ok {
		e.Hovered = false
		e.Segment = scene.NoSegment
		e.SummaryDetached = false
	}
	h.clearOverlays()
	h.current = 0
}

func (h *Hover) clearOverlays() {
	for _, name := range h.overlays {
		h.scene.RemoveOverlay(name)
	}
	h.overlays = nil
}
