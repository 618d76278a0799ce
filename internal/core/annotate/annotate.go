// Package annotate counts how many of the currently filtered records each
// filter option and search suggestion would match.
package annotate

import (
	"github.com/penwyp/go-survey-explorer/internal/core/filter"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// Count is the badge shown next to an option or suggestion.
type Count struct {
	Matches int `json:"matches"`
	Percent int `json:"percent"`
}

// Item is anything a badge can be computed for.
type Item[R model.Record] struct {
	Key       string
	Predicate filter.Predicate[R]
}

// Annotations holds the counts of one annotation pass.
type Annotations struct {
	Total  int              `json:"total"`
	Counts map[string]Count `json:"counts"`
}

// Get returns the count for key. Unknown keys count zero.
func (a Annotations) Get(key string) Count {
	return a.Counts[key]
}

// Percent returns ceil(matches / max(total, 1) * 100), and 0 for an empty set.
func Percent(matches, total int) int {
	if total <= 0 {
		return 0
	}
	return (matches*100 + total - 1) / total
}

// Annotate counts, for every item, the distinct record ids in records it matches.
func Annotate[R model.Record](records []R, items []Item[R]) Annotations {
	ids := distinct(records)
	out := Annotations{Total: len(ids), Counts: make(map[string]Count, len(items))}
	for _, item := range items {
		seen := make(map[int]struct{})
		for _, rec := range ids {
			if item.Predicate(rec) {
				seen[rec.RecordID()] = struct{}{}
			}
		}
		out.Counts[item.Key] = Count{Matches: len(seen), Percent: Percent(len(seen), out.Total)}
	}
	return out
}

// GroupItems returns one item per option of groups, keyed "group/option".
func GroupItems[R model.Record](groups []filter.Group[R]) []Item[R] {
	var items []Item[R]
	for _, g := range groups {
		for _, opt := range g.Options {
			items = append(items, Item[R]{Key: OptionKey(g.ID, opt.ID), Predicate: opt.Predicate})
		}
	}
	return items
}

// OptionKey is the annotation key of a filter option.
func OptionKey(groupID, optionID string) string {
	return groupID + "/" + optionID
}

// CategoryKey and ActivityKey are the annotation keys of search suggestions.
func CategoryKey(category string) string { return "category:" + category }

func ActivityKey(activity string) string { return "activity:" + activity }

// Activities counts suggestion badges for every category and activity of the
// catalog in one pass over records. A respondent with several intervals in the
// same category counts once for it.
func Activities(records []*model.TimeUseRecord, catalog []model.CategoryActivities) Annotations {
	ids := distinct(records)
	counts := make(map[string]int)
	for _, c := range catalog {
		counts[CategoryKey(c.Category)] = 0
		for _, a := range c.Activities {
			counts[ActivityKey(a)] = 0
		}
	}
	for _, rec := range ids {
		seen := make(map[string]struct{}, 2*len(rec.Activities))
		for _, a := range rec.Activities {
			seen[CategoryKey(a.Category)] = struct{}{}
			seen[ActivityKey(a.Name)] = struct{}{}
		}
		for key := range seen {
			if _, ok := counts[key]; ok {
				counts[key]++
			}
		}
	}
	out := Annotations{Total: len(ids), Counts: make(map[string]Count, len(counts))}
	for key, n := range counts {
		out.Counts[key] = Count{Matches: n, Percent: Percent(n, out.Total)}
	}
	return out
}

// Merge folds the counts of b into a copy of a. Totals must agree.
func Merge(a, b Annotations) Annotations {
	out := Annotations{Total: a.Total, Counts: make(map[string]Count, len(a.Counts)+len(b.Counts))}
	for k, v := range a.Counts {
		out.Counts[k] = v
	}
	for k, v := range b.Counts {
		out.Counts[k] = v
	}
	return out
}

func distinct[R model.Record](records []R) []R {
	seen := make(map[int]struct{}, len(records))
	out := make([]R, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.RecordID()]; dup {
			continue
		}
		seen[rec.RecordID()] = struct{}{}
		out = append(out, rec)
	}
	return out
}
