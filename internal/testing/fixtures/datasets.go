// Package fixtures builds small survey datasets for tests, in memory and on disk.
package fixtures

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zip"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// File names the generator writes; they follow the survey export naming so
// dataset discovery classifies them.
const (
	WageFile       = "wage_asec.csv"
	DictionaryFile = "wage_dictionary.json"
	TimeUseFile    = "timeuse_atus.zip"
	ActivitiesFile = "activities_by_category.yaml"
)

// Wages returns one full-time earner per EDUC2 code, alternating between
// occupation categories "1" and "2".
func Wages(educ ...int) []*model.WageRecord {
	out := make([]*model.WageRecord, len(educ))
	for i, e := range educ {
		cat := strconv.Itoa(i%2 + 1)
		out[i] = &model.WageRecord{
			EDUC2:   e,
			INCWAGE: float64(30000 + 10000*i),
			OCCLY:   cat + "0" + strconv.Itoa(i%3),
			CATLY:   cat,
		}
	}
	return out
}

// Dictionary labels the codes used by Wages.
func Dictionary() *model.Dictionary {
	return &model.Dictionary{
		Education: map[string]string{
			"0": "None", "1": "Grades 1-4", "2": "Grades 5-8", "3": "High school",
			"4": "Some college", "5": "Associate's", "6": "Bachelor's",
			"7": "Master's", "8": "Professional", "9": "Doctorate",
		},
		Occupations: map[string]string{
			"100": "Chief executives", "101": "Managers", "102": "Accountants",
			"200": "Software developers", "201": "Engineers", "202": "Scientists",
		},
		Categories: map[string]string{
			"1": "Management",
			"2": "Computer and Engineering",
		},
	}
}

// Catalog is the activity catalog used by Respondents.
func Catalog() []model.CategoryActivities {
	return []model.CategoryActivities{
		{Category: "Sleep", Activities: []string{"Sleeping"}},
		{Category: "Eating & drinking", Activities: []string{"Eating and drinking"}},
		{Category: "Work", Activities: []string{"Work, main job"}},
		{Category: "Leisure", Activities: []string{"Watching TV", "Playing games"}},
	}
}

var (
	days  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	races = []string{"White", "Black", "Asian"}
)

// Respondents returns n diaries. The first tv respondents watch TV in the
// evening; the others play games. Every diary crosses midnight.
func Respondents(n, tv int) []*model.TimeUseRecord {
	out := make([]*model.TimeUseRecord, n)
	for i := 0; i < n; i++ {
		evening := "Playing games"
		if i < tv {
			evening = "Watching TV"
		}
		sex := "Male"
		if i%2 == 1 {
			sex = "Female"
		}
		out[i] = &model.TimeUseRecord{
			Day:              days[i%len(days)],
			Age:              20 + 7*i%60,
			Sex:              sex,
			Race:             races[i%len(races)],
			MaritalStatus:    "Married",
			NumOwnKids:       i % 3,
			Education:        "Bachelor's degree",
			EmploymentStatus: "Employed",
			FullPart:         "Full time",
			HouseholdSize:    2,
			FamilyIncome:     "$60,000 to $74,999",
			LivingWith:       model.LivingWith{Partner: "Spouse"},
			Activities: []model.Activity{
				{Start: "04:00", Name: "Sleeping", Category: "Sleep"},
				{Start: "07:00", Name: "Eating and drinking", Category: "Eating & drinking"},
				{Start: "08:30", Name: "Work, main job", Category: "Work"},
				{Start: "18:00", Name: evening, Category: "Leisure"},
				{Start: "23:30", Name: "Sleeping", Category: "Sleep"},
			},
		}
	}
	return out
}

// DatasetGenerator writes datasets in the formats the loader reads
type DatasetGenerator struct {
	baseDir string
}

// NewDatasetGenerator creates a new generator writing below baseDir
func NewDatasetGenerator(baseDir string) *DatasetGenerator {
	return &DatasetGenerator{baseDir: baseDir}
}

// WriteWage writes records as CSV and dict as JSON, returning both paths.
func (g *DatasetGenerator) WriteWage(records []*model.WageRecord, dict *model.Dictionary) (string, string, error) {
	var buf bytes.Buffer
	buf.WriteString("EDUC2,INCWAGE,OCCLY,CATLY\n")
	for _, r := range records {
		fmt.Fprintf(&buf, "%d,%s,%s,%s\n", r.EDUC2, strconv.FormatFloat(r.INCWAGE, 'f', -1, 64), r.OCCLY, r.CATLY)
	}
	wagePath, err := g.write(WageFile, buf.Bytes())
	if err != nil {
		return "", "", err
	}
	data, err := sonic.Marshal(dict)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal dictionary: %w", err)
	}
	dictPath, err := g.write(DictionaryFile, data)
	if err != nil {
		return "", "", err
	}
	return wagePath, dictPath, nil
}

// WriteTimeUse writes records as a zipped JSON array and catalog as YAML,
// returning both paths.
func (g *DatasetGenerator) WriteTimeUse(records []*model.TimeUseRecord, catalog []model.CategoryActivities) (string, string, error) {
	data, err := sonic.Marshal(records)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal respondents: %w", err)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("atus.json")
	if err != nil {
		return "", "", err
	}
	if _, err := f.Write(data); err != nil {
		return "", "", err
	}
	if err := zw.Close(); err != nil {
		return "", "", err
	}
	dataPath, err := g.write(TimeUseFile, buf.Bytes())
	if err != nil {
		return "", "", err
	}

	cat, err := yaml.Marshal(catalog)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal catalog: %w", err)
	}
	catPath, err := g.write(ActivitiesFile, cat)
	if err != nil {
		return "", "", err
	}
	return dataPath, catPath, nil
}

// WriteAll writes both dashboards' datasets.
func (g *DatasetGenerator) WriteAll() error {
	if _, _, err := g.WriteWage(Wages(1, 3, 6, 6, 7, 9, 4, 12), Dictionary()); err != nil {
		return err
	}
	_, _, err := g.WriteTimeUse(Respondents(10, 4), Catalog())
	return err
}

func (g *DatasetGenerator) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(g.baseDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
