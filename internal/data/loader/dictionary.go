package loader

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// LoadDictionary reads the wage code dictionary (JSON or YAML).
func LoadDictionary(ctx context.Context, src string) (*model.Dictionary, error) {
	p, err := Read(ctx, src)
	if err != nil {
		return nil, err
	}
	var dict model.Dictionary
	if err := decodeDocument(p, &dict); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", src, err)
	}
	util.LogDebug(fmt.Sprintf("Loaded dictionary %s: %d education levels, %d occupations, %d categories",
		src, len(dict.Education), len(dict.Occupations), len(dict.Categories)))
	return &dict, nil
}

// LoadCategoryActivities reads the category → activities grouping used by
// the activity search (JSON or YAML).
func LoadCategoryActivities(ctx context.Context, src string) ([]model.CategoryActivities, error) {
	p, err := Read(ctx, src)
	if err != nil {
		return nil, err
	}
	var groups []model.CategoryActivities
	if err := decodeDocument(p, &groups); err != nil {
		return nil, fmt.Errorf("parse activity catalog %s: %w", src, err)
	}
	util.LogDebug(fmt.Sprintf("Loaded %d activity categories from %s", len(groups), src))
	return groups, nil
}

func decodeDocument(p *Payload, v interface{}) error {
	switch p.Format {
	case FormatJSON:
		return sonic.Unmarshal(p.Data, v)
	case FormatYAML:
		return yaml.Unmarshal(p.Data, v)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, p.Format)
}
