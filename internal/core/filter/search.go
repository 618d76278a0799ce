package filter

import (
	"strings"

	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// ActivitySearch builds the predicate of the free-text activity search.
type ActivitySearch struct {
	categories map[string]string // lower-case -> canonical
	activities map[string]string
}

// NewActivitySearch indexes the category/activity catalog.
func NewActivitySearch(catalog []model.CategoryActivities) *ActivitySearch {
	s := &ActivitySearch{
		categories: make(map[string]string),
		activities: make(map[string]string),
	}
	for _, c := range catalog {
		s.categories[strings.ToLower(c.Category)] = c.Category
		for _, a := range c.Activities {
			s.activities[strings.ToLower(a)] = a
		}
	}
	return s
}

// Option returns the search option for query.
//
// An empty query matches everything. Typed text is a case-insensitive
// substring test on activity names. Only a suggestion picked from the list,
// and still shown as the query, narrows to its whole category or to that
// exact activity.
func (s *ActivitySearch) Option(query string, picked *autocomplete.Suggestion) Option[person] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return AllOption[person]()
	}
	if picked != nil && strings.EqualFold(strings.TrimSpace(picked.Label), strings.TrimSpace(query)) {
		switch picked.Kind {
		case autocomplete.KindCategory:
			if cat, ok := s.categories[q]; ok {
				return Option[person]{ID: "category:" + cat, Label: cat, Predicate: func(p person) bool {
					return p.HasActivity(func(a *model.Activity) bool { return a.Category == cat })
				}}
			}
		case autocomplete.KindActivity:
			if act, ok := s.activities[q]; ok {
				return Option[person]{ID: "activity:" + act, Label: act, Predicate: func(p person) bool {
					return p.HasActivity(func(a *model.Activity) bool { return a.Name == act })
				}}
			}
		}
	}
	return Option[person]{ID: "text:" + q, Label: query, Predicate: func(p person) bool {
		return p.HasActivity(func(a *model.Activity) bool { return strings.Contains(strings.ToLower(a.Name), q) })
	}}
}
