package dashboard

import (
	"github.com/penwyp/go-survey-explorer/internal/core/annotate"
	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
)

// Kind names a dashboard.
type Kind string

const (
	KindWage    Kind = "wage"
	KindTimeUse Kind = "timeuse"
)

// Snapshot is a render-ready copy of a dashboard's state.
type Snapshot struct {
	Kind      Kind    `json:"kind"`
	Title     string  `json:"title"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	LoadError string  `json:"load_error,omitempty"`

	Results int            `json:"results"`
	Filters []FilterView   `json:"filters,omitempty"`
	Lists   []CategoryView `json:"categories,omitempty"`
	Search  *SearchView    `json:"search,omitempty"`
	Page    *PageView      `json:"page,omitempty"`

	XAxis []Tick `json:"x_axis,omitempty"`
	YAxis []Tick `json:"y_axis,omitempty"`

	Elements []ElementView  `json:"elements"`
	Overlays []scene.Overlay `json:"overlays,omitempty"`
}

// FilterView is one radio group with its badges.
type FilterView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Row     int          `json:"row"`
	Options []OptionView `json:"options"`
}

// OptionView is one radio option.
type OptionView struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Active bool           `json:"active"`
	Badge  annotate.Count `json:"badge"`
}

// CategoryView is one entry of the wage category list.
type CategoryView struct {
	Key   string            `json:"key"`
	Label string            `json:"label"`
	State model.VisualState `json:"state,omitempty"`
	Badge annotate.Count    `json:"badge"`
}

// SearchView is the activity search box.
type SearchView struct {
	Open        bool             `json:"open"`
	Query       string           `json:"query"`
	Selected    int              `json:"selected"`
	Suggestions []SuggestionView `json:"suggestions,omitempty"`
}

// SuggestionView is one autocomplete entry.
type SuggestionView struct {
	autocomplete.Suggestion
	Badge annotate.Count `json:"badge"`
}

// PageView describes pagination progress.
type PageView struct {
	Shown int  `json:"shown"`
	Total int  `json:"total"`
	More  bool `json:"more"`
}

// Tick is an axis tick at a range position.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// ElementView is one bound element with its geometry resolved.
type ElementView struct {
	ID       int               `json:"id"`
	RecordID int               `json:"record"`
	Tag      model.VisualState `json:"tag"`
	Fading   bool              `json:"fading,omitempty"`
	Opacity  float64           `json:"opacity"`
	Hovered  bool              `json:"hovered,omitempty"`

	// Scatter points
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	R float64 `json:"r,omitempty"`

	// Timelines
	Slot     int           `json:"slot"`
	Segments []SegmentView `json:"segments,omitempty"`
	Summary  string        `json:"summary,omitempty"`
	Day      string        `json:"day,omitempty"`
}

// SegmentView is one activity rectangle of a timeline.
type SegmentView struct {
	X           float64 `json:"x"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Color       string  `json:"color"`
	Activity    string  `json:"activity"`
	Category    string  `json:"category"`
	Highlighted bool    `json:"highlighted,omitempty"`
}
