// Package autocomplete holds the activity search box state and its pure
// transitions.
package autocomplete

import (
	"strings"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// NoSelection is the selected index when no suggestion is highlighted.
const NoSelection = -1

// Kind distinguishes category headings from activities.
type Kind string

const (
	KindCategory Kind = "category"
	KindActivity Kind = "activity"
)

// Suggestion is one selectable entry of the list.
type Suggestion struct {
	Kind     Kind   `json:"kind"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// Key identifies the suggestion for match badges.
func (s Suggestion) Key() string {
	return string(s.Kind) + ":" + s.Label
}

// Key is a navigation or commit key pressed in the search box.
type Key string

const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyEnter  Key = "enter"
	KeyTab    Key = "tab"
	KeyEscape Key = "escape"
)

// State is the search box. The zero value is a closed, empty box.
type State struct {
	Open        bool         `json:"open"`
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
	Selected    int          `json:"selected"`
	// Picked is the suggestion last committed from the list. Typing clears it.
	Picked *Suggestion `json:"picked,omitempty"`
}

// Effect tells the caller what to do after a transition.
type Effect struct {
	// Refilter is set when the search predicate must be rebuilt from Query.
	Refilter bool
}

// Catalog is the category/activity grouping suggestions are drawn from.
type Catalog []model.CategoryActivities

// Suggest lists the activities whose name contains query, grouped under
// their category heading in catalog order. Categories without a matching
// activity are left out.
func (c Catalog) Suggest(query string) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Suggestion
	for _, group := range c {
		var acts []Suggestion
		for _, a := range group.Activities {
			if strings.Contains(strings.ToLower(a), q) {
				acts = append(acts, Suggestion{Kind: KindActivity, Label: a, Category: group.Category})
			}
		}
		if len(acts) == 0 {
			continue
		}
		out = append(out, Suggestion{Kind: KindCategory, Label: group.Category, Category: group.Category})
		out = append(out, acts...)
	}
	return out
}

// New returns a closed box.
func New() State {
	return State{Selected: NoSelection}
}

// Focus opens the list for the current query.
func (s State) Focus(c Catalog) (State, Effect) {
	s.Open = true
	s.Suggestions = c.Suggest(s.Query)
	s.Selected = NoSelection
	return s, Effect{}
}

// Input replaces the query. The search predicate follows every keystroke.
func (s State) Input(c Catalog, query string) (State, Effect) {
	s.Open = true
	s.Query = query
	s.Picked = nil
	s.Suggestions = c.Suggest(query)
	s.Selected = NoSelection
	return s, Effect{Refilter: true}
}

// Press handles navigation and commit keys. Unknown keys are ignored.
func (s State) Press(k Key) (State, Effect) {
	switch k {
	case KeyDown:
		s.Selected = s.move(1)
		return s, Effect{}
	case KeyUp:
		s.Selected = s.move(-1)
		return s, Effect{}
	case KeyEnter, KeyTab, KeyEscape:
		return s.commit(), Effect{Refilter: true}
	}
	return s, Effect{}
}

// Blur closes the list and refilters on whatever was typed.
func (s State) Blur() (State, Effect) {
	s.Open = false
	s.Selected = NoSelection
	return s, Effect{Refilter: true}
}

// Highlighted returns the selected suggestion, if any.
func (s State) Highlighted() (Suggestion, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Suggestions) {
		return Suggestion{}, false
	}
	return s.Suggestions[s.Selected], true
}

// move steps the selection. Stepping off either end lands on no selection;
// stepping from no selection enters at the first or last entry.
func (s State) move(step int) int {
	n := len(s.Suggestions)
	if n == 0 {
		return NoSelection
	}
	if s.Selected == NoSelection {
		if step > 0 {
			return 0
		}
		return n - 1
	}
	next := s.Selected + step
	if next < 0 || next >= n {
		return NoSelection
	}
	return next
}

func (s State) commit() State {
	if sel, ok := s.Highlighted(); ok {
		s.Query = sel.Label
		s.Picked = &sel
	}
	s.Open = false
	s.Selected = NoSelection
	return s
}
