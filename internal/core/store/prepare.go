package store

import (
	"math"

	"github.com/penwyp/go-survey-explorer/internal/core/jitter"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/timeline"
)

// TopCodeWage caps INCWAGE at ceiling.
func TopCodeWage(ceiling float64) Preparer[*model.WageRecord] {
	return func(r *model.WageRecord) error {
		r.INCWAGE = math.Min(r.INCWAGE, ceiling)
		return nil
	}
}

// JitterEducation draws the record's education-axis offset once, as scale * N(0,1).
func JitterEducation(src jitter.Source, scale float64) Preparer[*model.WageRecord] {
	return func(r *model.WageRecord) error {
		r.EduJitter = scale * src.Normal(r.ID)
		return nil
	}
}

// NormalizeTimeline lays the diary out on the two-day window.
func NormalizeTimeline(w timeline.Window) Preparer[*model.TimeUseRecord] {
	return func(r *model.TimeUseRecord) error {
		return timeline.Normalize(r.Activities, w)
	}
}
