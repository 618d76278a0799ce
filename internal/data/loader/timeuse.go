package loader

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

type activityRow struct {
	Start    flexString `json:"START"`
	Name     flexString `json:"ACTIVITY3"`
	Category flexString `json:"CATEGORY"`
}

type respondentRow struct {
	Day           flexString       `json:"DAY"`
	Age           flexInt          `json:"AGE"`
	Sex           flexString       `json:"SEX"`
	Race          flexString       `json:"RACE"`
	MaritalStatus flexString       `json:"MARST"`
	NumOwnKids    flexInt          `json:"HH_NUMOWNKIDS"`
	LivingWith    model.LivingWith `json:"LIVING_WITH"`
	Education     flexString       `json:"EDUC"`
	Employment    flexString       `json:"EMPSTAT"`
	FullPart      flexString       `json:"FULLPART"`
	Occupation    flexString       `json:"OCC"`
	HouseholdSize flexInt          `json:"HH_SIZE"`
	FamilyIncome  flexString       `json:"FAMINCOME"`
	Activities    []activityRow    `json:"activities"`
}

// LoadTimeUseRecords reads the time-use respondents from a JSON array at src,
// typically shipped zipped.
func LoadTimeUseRecords(ctx context.Context, src string) ([]*model.TimeUseRecord, error) {
	p, err := Read(ctx, src)
	if err != nil {
		return nil, err
	}
	records, err := ParseTimeUse(p)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	util.LogInfof("Loaded %d time-use respondents from %s", len(records), src)
	return records, nil
}

// ParseTimeUse decodes a time-use payload. Activity intervals keep their raw
// START strings; offsets are filled in by timeline normalization.
func ParseTimeUse(p *Payload) ([]*model.TimeUseRecord, error) {
	if p.Format != FormatJSON {
		return nil, fmt.Errorf("%w: %s for time-use data", ErrUnsupportedFormat, p.Format)
	}
	var rows []respondentRow
	if err := sonic.Unmarshal(p.Data, &rows); err != nil {
		return nil, fmt.Errorf("decode time-use json: %w", err)
	}
	records := make([]*model.TimeUseRecord, len(rows))
	for i, r := range rows {
		rec := &model.TimeUseRecord{
			Day:              string(r.Day),
			Age:              int(r.Age),
			Sex:              string(r.Sex),
			Race:             string(r.Race),
			MaritalStatus:    string(r.MaritalStatus),
			NumOwnKids:       int(r.NumOwnKids),
			LivingWith:       r.LivingWith,
			Education:        string(r.Education),
			EmploymentStatus: string(r.Employment),
			FullPart:         string(r.FullPart),
			Occupation:       string(r.Occupation),
			HouseholdSize:    int(r.HouseholdSize),
			FamilyIncome:     string(r.FamilyIncome),
			Activities:       make([]model.Activity, len(r.Activities)),
		}
		for j, a := range r.Activities {
			rec.Activities[j] = model.Activity{
				Num:      j,
				Start:    string(a.Start),
				Name:     string(a.Name),
				Category: string(a.Category),
			}
		}
		records[i] = rec
	}
	return records, nil
}
