package filter

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGroup   = errors.New("unknown filter group")
	ErrUnknownOption  = errors.New("unknown filter option")
	ErrDuplicateGroup = errors.New("duplicate filter group")
)

// AllID is the id of the match-everything option every group carries.
const AllID = "all"

// Predicate tests a single record.
type Predicate[R any] func(R) bool

// Option is one radio choice of a filter group.
type Option[R any] struct {
	ID        string
	Label     string
	Predicate Predicate[R]
}

// AllOption returns the constant-true option.
func AllOption[R any]() Option[R] {
	return Option[R]{ID: AllID, Label: "All", Predicate: func(R) bool { return true }}
}

// Group is a named set of mutually exclusive options.
type Group[R any] struct {
	ID      string
	Name    string
	Options []Option[R]
}

// ActiveFilter is the option currently in force for one group.
type ActiveFilter[R any] struct {
	GroupID   string
	OptionID  string
	Predicate Predicate[R]
}

// Set is a snapshot of the active filters, in registration order.
type Set[R any] []ActiveFilter[R]

// Match is the conjunction of every active predicate. An empty set matches everything.
func (s Set[R]) Match(rec R) bool {
	for _, f := range s {
		if !f.Predicate(rec) {
			return false
		}
	}
	return true
}

// Predicate returns Match as a Predicate bound to this snapshot.
func (s Set[R]) Predicate() Predicate[R] {
	return s.Match
}

// Without returns the snapshot minus the named groups.
func (s Set[R]) Without(groupIDs ...string) Set[R] {
	out := make(Set[R], 0, len(s))
	for _, f := range s {
		skip := false
		for _, id := range groupIDs {
			if f.GroupID == id {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}

type groupEntry[R any] struct {
	group  Group[R]
	active Option[R]
}

// Registry keeps one active option per registered group.
type Registry[R any] struct {
	groups []*groupEntry[R]
	index  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{index: make(map[string]int)}
}

// Register adds a group. A group without an "all" option gets one prepended;
// the first option starts out active.
func (r *Registry[R]) Register(g Group[R]) error {
	if _, exists := r.index[g.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGroup, g.ID)
	}
	hasAll := false
	for _, opt := range g.Options {
		if opt.ID == AllID {
			hasAll = true
			break
		}
	}
	if !hasAll {
		g.Options = append([]Option[R]{AllOption[R]()}, g.Options...)
	}
	r.index[g.ID] = len(r.groups)
	r.groups = append(r.groups, &groupEntry[R]{group: g, active: g.Options[0]})
	return nil
}

// SetActive makes optionID the active option of groupID and returns the new set.
func (r *Registry[R]) SetActive(groupID, optionID string) (Set[R], error) {
	e, err := r.entry(groupID)
	if err != nil {
		return nil, err
	}
	for _, opt := range e.group.Options {
		if opt.ID == optionID {
			e.active = opt
			return r.Set(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownOption, groupID, optionID)
}

// SetCustom installs an option that is not part of the group's fixed choices,
// such as a predicate derived from free-text search.
func (r *Registry[R]) SetCustom(groupID string, opt Option[R]) (Set[R], error) {
	e, err := r.entry(groupID)
	if err != nil {
		return nil, err
	}
	if opt.Predicate == nil {
		opt = AllOption[R]()
	}
	e.active = opt
	return r.Set(), nil
}

// Active returns the active option of groupID.
func (r *Registry[R]) Active(groupID string) (Option[R], bool) {
	e, err := r.entry(groupID)
	if err != nil {
		return Option[R]{}, false
	}
	return e.active, true
}

// Set returns a snapshot of the active filters.
func (r *Registry[R]) Set() Set[R] {
	s := make(Set[R], 0, len(r.groups))
	for _, e := range r.groups {
		s = append(s, ActiveFilter[R]{GroupID: e.group.ID, OptionID: e.active.ID, Predicate: e.active.Predicate})
	}
	return s
}

// Combined returns the conjunction of all active predicates.
func (r *Registry[R]) Combined() Predicate[R] {
	return r.Set().Predicate()
}

// Groups returns the registered groups with their options, in registration order.
func (r *Registry[R]) Groups() []Group[R] {
	out := make([]Group[R], 0, len(r.groups))
	for _, e := range r.groups {
		out = append(out, e.group)
	}
	return out
}

// GroupState describes a group for rendering.
type GroupState struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	ActiveID string        `json:"active"`
	Options  []OptionState `json:"options"`
}

// OptionState describes one option for rendering.
type OptionState struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// States describes every group and which option is active.
func (r *Registry[R]) States() []GroupState {
	out := make([]GroupState, 0, len(r.groups))
	for _, e := range r.groups {
		gs := GroupState{ID: e.group.ID, Name: e.group.Name, ActiveID: e.active.ID}
		for _, opt := range e.group.Options {
			gs.Options = append(gs.Options, OptionState{ID: opt.ID, Label: opt.Label, Active: opt.ID == e.active.ID})
		}
		out = append(out, gs)
	}
	return out
}

func (r *Registry[R]) entry(groupID string) (*groupEntry[R], error) {
	i, ok := r.index[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	return r.groups[i], nil
}

// Apply returns the records matching p, preserving order.
func Apply[R any](records []R, p Predicate[R]) []R {
	out := make([]R, 0, len(records))
	for _, rec := range records {
		if p(rec) {
			out = append(out, rec)
		}
	}
	return out
}
