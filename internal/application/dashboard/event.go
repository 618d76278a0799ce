package dashboard

import (
	"errors"

	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/core/selection"
)

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrUnsupportedEvent = errors.New("event not supported by this dashboard")
	ErrUnknownKey       = errors.New("unknown dataset key")
	ErrUnknownDashboard = errors.New("unknown dashboard")
	ErrNotLoaded        = errors.New("dashboard not loaded")
)

// EventKind enumerates user interactions.
type EventKind string

const (
	EventSelect      EventKind = "select"
	EventMouseover   EventKind = "mouseover"
	EventMouseout    EventKind = "mouseout"
	EventFilter      EventKind = "filter"
	EventSearchFocus EventKind = "search_focus"
	EventSearchInput EventKind = "search_input"
	EventSearchKey   EventKind = "search_key"
	EventSearchBlur  EventKind = "search_blur"
	EventScroll      EventKind = "scroll"
	EventElementOver EventKind = "element_over"
	EventElementOut  EventKind = "element_out"
	EventResize      EventKind = "resize"
)

// Event is one interaction dispatched into a dashboard. Only the fields
// relevant to Kind are read.
type Event struct {
	Kind EventKind `json:"kind"`

	// select, mouseover
	Key string `json:"key,omitempty"`

	// filter
	Group  string `json:"group,omitempty"`
	Option string `json:"option,omitempty"`

	// search_input, search_key
	Query     string `json:"query,omitempty"`
	SearchKey string `json:"search_key,omitempty"`

	// element_over, element_out
	ElementID int `json:"element,omitempty"`
	Segment   int `json:"segment,omitempty"`

	// scroll
	Position float64 `json:"position,omitempty"`
	Extent   float64 `json:"extent,omitempty"`

	// resize
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Result reports what a dispatched event did.
type Result struct {
	Commands []selection.Command `json:"commands,omitempty"`
	Diffs    []binder.Diff       `json:"diffs,omitempty"`
	// Refiltered is set when the filtered record set was recomputed.
	Refiltered bool `json:"refiltered,omitempty"`
	// PageAdded is set when scrolling realized another page.
	PageAdded bool `json:"page_added,omitempty"`
}

func (r *Result) addDiff(d binder.Diff) {
	r.Diffs = append(r.Diffs, d)
}

// Known reports whether k is a defined event kind.
func (k EventKind) Known() bool {
	switch k {
	case EventSelect, EventMouseover, EventMouseout, EventFilter,
		EventSearchFocus, EventSearchInput, EventSearchKey, EventSearchBlur,
		EventScroll, EventElementOver, EventElementOut, EventResize:
		return true
	}
	return false
}
