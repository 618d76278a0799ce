package filter

import (
	"slices"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// Group ids of the time-use dashboard.
const (
	GroupGender     = "filter-gender"
	GroupAge        = "filter-age"
	GroupRace       = "filter-race"
	GroupKids       = "filter-kids"
	GroupEducation  = "filter-edu"
	GroupEmployment = "filter-employment"
	GroupDay        = "filter-day"
	GroupSearch     = "search"
)

var (
	eduHighschoolOrLess = []string{"No education", "Some primary / secondary", "Some high school", "High school"}
	eduBachelors        = "Bachelor's degree"
	eduMastersPhD       = []string{"Master's degree", "Professional degree", "Doctoral degree"}
	weekdays            = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	weekend             = []string{"Saturday", "Sunday"}
)

type person = *model.TimeUseRecord

func opt(id, label string, p Predicate[person]) Option[person] {
	return Option[person]{ID: id, Label: label, Predicate: p}
}

// TimeUseGroups returns the demographic filter rows of the time-use dashboard.
// The search group is not included; see ActivitySearch.
func TimeUseGroups() [][]Group[person] {
	all := AllOption[person]()
	return [][]Group[person]{
		{
			{ID: GroupGender, Name: "Gender", Options: []Option[person]{
				all,
				opt("men", "Men", func(p person) bool { return p.Sex == "Male" }),
				opt("women", "Women", func(p person) bool { return p.Sex == "Female" }),
			}},
			{ID: GroupAge, Name: "Age", Options: []Option[person]{
				all,
				opt("15_24", "15-24", func(p person) bool { return p.Age <= 24 }),
				opt("25_64", "25-64", func(p person) bool { return p.Age >= 25 && p.Age <= 64 }),
				opt("65_plus", "65+", func(p person) bool { return p.Age >= 65 }),
			}},
			{ID: GroupRace, Name: "Race", Options: []Option[person]{
				all,
				opt("white", "White", func(p person) bool { return p.Race == "White" }),
				opt("black", "Black", func(p person) bool { return p.Race == "Black" }),
				opt("other", "Other", func(p person) bool { return p.Race != "White" && p.Race != "Black" }),
			}},
			{ID: GroupKids, Name: "Children", Options: []Option[person]{
				all,
				opt("none", "No", func(p person) bool { return p.NumOwnKids == 0 }),
				opt("1_or_more", "Yes", func(p person) bool { return p.NumOwnKids > 0 }),
			}},
		},
		{
			{ID: GroupEducation, Name: "Education", Options: []Option[person]{
				all,
				opt("highschool", "High school", func(p person) bool { return slices.Contains(eduHighschoolOrLess, p.Education) }),
				opt("college", "College", func(p person) bool { return p.Education == eduBachelors }),
				opt("masters_phd", "Masters / Ph.D.", func(p person) bool { return slices.Contains(eduMastersPhD, p.Education) }),
			}},
			{ID: GroupEmployment, Name: "Employment", Options: []Option[person]{
				all,
				opt("employed", "Employed", func(p person) bool { return p.EmploymentStatus == "Employed" }),
				opt("unemployed", "Unemployed", func(p person) bool { return p.EmploymentStatus == "Unemployed" }),
				opt("not_looking", "Not Looking", func(p person) bool { return p.EmploymentStatus == "Not in labor force" }),
			}},
			{ID: GroupDay, Name: "Day of week", Options: []Option[person]{
				all,
				opt("weekday", "M-F", func(p person) bool { return slices.Contains(weekdays, p.Day) }),
				opt("weekend", "S-S", func(p person) bool { return slices.Contains(weekend, p.Day) }),
			}},
		},
	}
}
