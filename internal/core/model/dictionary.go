package model

import (
	"sort"
	"strconv"
)

// Dictionary maps the wage dataset's codes to labels.
type Dictionary struct {
	Education   map[string]string `json:"EDUC2" yaml:"EDUC2"`
	Occupations map[string]string `json:"OCCLY" yaml:"OCCLY"`
	Categories  map[string]string `json:"CATLY" yaml:"CATLY"`
}

// CodeLabel is a dictionary entry.
type CodeLabel struct {
	Code  string
	Label string
}

// EducationLevels returns education labels ordered by numeric code.
func (d *Dictionary) EducationLevels() []CodeLabel {
	levels := make([]CodeLabel, 0, len(d.Education))
	for code, label := range d.Education {
		levels = append(levels, CodeLabel{Code: code, Label: label})
	}
	sort.Slice(levels, func(i, j int) bool {
		a, errA := strconv.Atoi(levels[i].Code)
		b, errB := strconv.Atoi(levels[j].Code)
		if errA != nil || errB != nil {
			return levels[i].Code < levels[j].Code
		}
		return a < b
	})
	return levels
}

// CategoryList returns occupation categories sorted alphabetically by label.
func (d *Dictionary) CategoryList() []CodeLabel {
	list := make([]CodeLabel, 0, len(d.Categories))
	for code, label := range d.Categories {
		list = append(list, CodeLabel{Code: code, Label: label})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Label == list[j].Label {
			return list[i].Code < list[j].Code
		}
		return list[i].Label < list[j].Label
	})
	return list
}

// Occupation returns the occupation label for code, or the code itself.
func (d *Dictionary) Occupation(code string) string {
	if label, ok := d.Occupations[code]; ok {
		return label
	}
	return code
}

// CategoryActivities groups activity names under their category for search.
type CategoryActivities struct {
	Category   string   `json:"category" yaml:"category"`
	Activities []string `json:"activities" yaml:"activities"`
}
