package filter

import "github.com/penwyp/go-survey-explorer/internal/core/model"

// GroupWageEducation is the education filter of the wage dashboard.
const GroupWageEducation = "filter-educ2"

type earner = *model.WageRecord

func educ2Between(lo, hi int) Predicate[earner] {
	return func(r earner) bool { return r.EDUC2 >= lo && r.EDUC2 <= hi }
}

// WageGroups returns the filter groups of the wage dashboard. Codes follow the
// EDUC2 recoding: 0-3 up to a high school diploma, 4-5 some college or an
// associate's degree, 6 bachelor's, 7-9 graduate degrees.
func WageGroups() []Group[earner] {
	return []Group[earner]{
		{ID: GroupWageEducation, Name: "Education", Options: []Option[earner]{
			AllOption[earner](),
			{ID: "highschool", Label: "High school", Predicate: educ2Between(0, 3)},
			{ID: "some_college", Label: "Some college", Predicate: educ2Between(4, 5)},
			{ID: "college", Label: "College", Predicate: educ2Between(6, 6)},
			{ID: "graduate", Label: "Masters / Ph.D.", Predicate: educ2Between(7, 9)},
		}},
	}
}

// InCategory matches wage records of one occupation category.
func InCategory(code string) Predicate[earner] {
	return func(r earner) bool { return r.CATLY == code }
}
