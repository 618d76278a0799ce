package filter

import (
	"testing"

	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestActivitySearchOption(t *testing.T) {
	s := NewActivitySearch([]model.CategoryActivities{
		{Category: "Sleep", Activities: []string{"Sleeping", "Sleeplessness"}},
		{Category: "Work", Activities: []string{"Work, main job"}},
		{Category: "Housework & Errands", Activities: []string{"Housework"}},
	})
	sleeper := &model.TimeUseRecord{Activities: []model.Activity{{Name: "Sleeplessness", Category: "Sleep"}}}
	worker := &model.TimeUseRecord{Activities: []model.Activity{{Name: "Work, main job", Category: "Work"}}}
	homemaker := &model.TimeUseRecord{Activities: []model.Activity{{Name: "Housework", Category: "Housework & Errands"}}}

	sleepCategory := &autocomplete.Suggestion{Kind: autocomplete.KindCategory, Label: "Sleep", Category: "Sleep"}
	sleeping := &autocomplete.Suggestion{Kind: autocomplete.KindActivity, Label: "Sleeping", Category: "Sleep"}
	workCategory := &autocomplete.Suggestion{Kind: autocomplete.KindCategory, Label: "Work", Category: "Work"}

	tests := []struct {
		name      string
		query     string
		picked    *autocomplete.Suggestion
		id        string
		sleeper   bool
		worker    bool
		homemaker bool
	}{
		{"empty", "", nil, AllID, true, true, true},
		{"blank", "  ", nil, AllID, true, true, true},
		{"typed substring", "main", nil, "text:main", false, true, false},
		{"typed is case-insensitive", "LESS", nil, "text:less", true, false, false},
		{"typed category name stays substring", "work", nil, "text:work", false, true, true},
		{"typed activity name stays substring", "Sleeping", nil, "text:sleeping", false, false, false},
		{"picked category", "Sleep", sleepCategory, "category:Sleep", true, false, false},
		{"picked work category excludes housework", "Work", workCategory, "category:Work", false, true, false},
		{"picked activity", "Sleeping", sleeping, "activity:Sleeping", false, false, false},
		{"edited after pick", "Slee", sleepCategory, "text:slee", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := s.Option(tt.query, tt.picked)
			assert.Equal(t, tt.id, opt.ID)
			assert.Equal(t, tt.sleeper, opt.Predicate(sleeper))
			assert.Equal(t, tt.worker, opt.Predicate(worker))
			assert.Equal(t, tt.homemaker, opt.Predicate(homemaker))
		})
	}
}
