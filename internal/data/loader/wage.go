package loader

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

var wageColumns = []string{"EDUC2", "INCWAGE", "OCCLY", "CATLY"}

// LoadWageRecords reads the wage dataset from src. CSV, JSON and xlsx
// payloads are accepted, optionally compressed.
func LoadWageRecords(ctx context.Context, src string) ([]*model.WageRecord, error) {
	p, err := Read(ctx, src)
	if err != nil {
		return nil, err
	}
	records, err := ParseWage(p)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	util.LogInfof("Loaded %d wage records from %s", len(records), src)
	return records, nil
}

// ParseWage decodes a wage payload.
func ParseWage(p *Payload) ([]*model.WageRecord, error) {
	switch p.Format {
	case FormatCSV:
		t, err := readCSV(p.Data)
		if err != nil {
			return nil, err
		}
		return wageFromTable(t)
	case FormatXLSX:
		t, err := readWorkbook(p.Data)
		if err != nil {
			return nil, err
		}
		return wageFromTable(t)
	case FormatJSON:
		return wageFromJSON(p.Data)
	}
	return nil, fmt.Errorf("%w: %s for wage data", ErrUnsupportedFormat, p.Format)
}

func wageFromTable(t *table) ([]*model.WageRecord, error) {
	if len(t.header) == 0 {
		return nil, nil
	}
	cols, err := t.columns(wageColumns...)
	if err != nil {
		return nil, err
	}
	records := make([]*model.WageRecord, 0, len(t.rows))
	for i, row := range t.rows {
		educ, err := strconv.Atoi(cell(row, cols["EDUC2"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: EDUC2: %w", i+2, err)
		}
		wage, err := strconv.ParseFloat(cell(row, cols["INCWAGE"]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: INCWAGE: %w", i+2, err)
		}
		records = append(records, &model.WageRecord{
			EDUC2:   educ,
			INCWAGE: wage,
			OCCLY:   cell(row, cols["OCCLY"]),
			CATLY:   cell(row, cols["CATLY"]),
		})
	}
	return records, nil
}

type wageRow struct {
	EDUC2   flexInt    `json:"EDUC2"`
	INCWAGE flexFloat  `json:"INCWAGE"`
	OCCLY   flexString `json:"OCCLY"`
	CATLY   flexString `json:"CATLY"`
}

func wageFromJSON(data []byte) ([]*model.WageRecord, error) {
	var rows []wageRow
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode wage json: %w", err)
	}
	records := make([]*model.WageRecord, len(rows))
	for i, r := range rows {
		records[i] = &model.WageRecord{
			EDUC2:   int(r.EDUC2),
			INCWAGE: float64(r.INCWAGE),
			OCCLY:   string(r.OCCLY),
			CATLY:   string(r.CATLY),
		}
	}
	return records, nil
}
