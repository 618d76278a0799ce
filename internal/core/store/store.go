package store

import (
	"fmt"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
)

// Loadable is a record whose identifier can be assigned at load.
type Loadable interface {
	model.Record
	SetRecordID(id int)
}

// Preparer applies a one-time coercion or derivation to a record during load.
type Preparer[R Loadable] func(r R) error

// Store holds the preprocessed dataset. After Load returns it is read-only:
// filtering produces new slices and never touches the store.
type Store[R Loadable] struct {
	records []R
	byID    map[int]R
}

// Load assigns ids in input order, runs every preparer on every record and
// seals the result.
func Load[R Loadable](rows []R, prepare ...Preparer[R]) (*Store[R], error) {
	s := &Store[R]{
		records: make([]R, 0, len(rows)),
		byID:    make(map[int]R, len(rows)),
	}
	for i, r := range rows {
		r.SetRecordID(i)
		for _, p := range prepare {
			if err := p(r); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		s.records = append(s.records, r)
		s.byID[i] = r
	}
	return s, nil
}

// All returns the records in load order. The slice is a copy; the records are shared.
func (s *Store[R]) All() []R {
	if s == nil {
		return nil
	}
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// ByID returns the record with id.
func (s *Store[R]) ByID(id int) (R, bool) {
	var zero R
	if s == nil {
		return zero, false
	}
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of records.
func (s *Store[R]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Filter returns the records matching pred, in load order.
func (s *Store[R]) Filter(pred func(R) bool) []R {
	if s == nil {
		return nil
	}
	out := make([]R, 0, len(s.records))
	for _, r := range s.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
