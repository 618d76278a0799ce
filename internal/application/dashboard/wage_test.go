package dashboard

import (
	"testing"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/core/filter"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWage(t *testing.T, educ ...int) (*Wage, *scene.ManualClock) {
	t.Helper()
	cfg, clock := testConfig(t)
	w, err := NewWage(cfg, fixtures.Wages(educ...), fixtures.Dictionary())
	require.NoError(t, err)
	clock.Add(time.Second)
	w.Settle()
	return w, clock
}

func TestNewWageBindsAll(t *testing.T) {
	w, _ := newTestWage(t, 1, 6, 12)

	snap := w.Snapshot()
	assert.Equal(t, KindWage, snap.Kind)
	assert.Equal(t, 3, snap.Results)
	assert.ElementsMatch(t, []int{0, 1, 2}, recordIDs(live(snap, model.StateSelected)))
	assert.Equal(t, AllKey, w.Selection().Selected)
	for _, e := range snap.Elements {
		assert.Equal(t, 1.0, e.Opacity)
		assert.Equal(t, pointRadius, e.R)
	}

	require.Len(t, snap.Lists, 3)
	assert.Equal(t, "All Occupations", snap.Lists[0].Label)
	assert.Equal(t, model.StateSelected, snap.Lists[0].State)
	assert.Equal(t, 3, snap.Lists[0].Badge.Matches)
	assert.Equal(t, 100, snap.Lists[0].Badge.Percent)
	assert.Len(t, snap.XAxis, 10)
	assert.NotEmpty(t, snap.YAxis)
}

func TestWageEducationFilter(t *testing.T) {
	w, clock := newTestWage(t, 1, 6, 12)

	res, err := w.Dispatch(Event{Kind: EventFilter, Group: filter.GroupWageEducation, Option: "college"})
	require.NoError(t, err)
	assert.True(t, res.Refiltered)

	snap := w.Snapshot()
	assert.Equal(t, 1, snap.Results)
	assert.Equal(t, []int{1}, recordIDs(live(snap, model.StateSelected)))

	var fading int
	for _, e := range snap.Elements {
		if e.Fading {
			fading++
		}
	}
	assert.Equal(t, 2, fading)

	var found bool
	for _, f := range snap.Filters {
		for _, o := range f.Options {
			if f.ID == filter.GroupWageEducation && o.ID == "college" {
				found = true
				assert.True(t, o.Active)
				assert.Equal(t, 1, o.Badge.Matches)
				assert.Equal(t, 100, o.Badge.Percent)
			}
		}
	}
	assert.True(t, found)

	clock.Add(time.Second)
	w.Settle()
	assert.Len(t, w.Snapshot().Elements, 1)
}

func TestWageHoverCategory(t *testing.T) {
	w, clock := newTestWage(t, 1, 6, 12)

	_, err := w.Dispatch(Event{Kind: EventMouseover, Key: "2"})
	require.NoError(t, err)
	clock.Add(time.Second)
	w.Settle()

	snap := w.Snapshot()
	assert.Equal(t, []int{1}, recordIDs(live(snap, model.StateMouseover)))
	assert.Len(t, live(snap, model.StateBackground), 3)
	assert.Empty(t, live(snap, model.StateSelected))

	_, err = w.Dispatch(Event{Kind: EventMouseout})
	require.NoError(t, err)
	clock.Add(time.Second)
	w.Settle()

	snap = w.Snapshot()
	assert.Len(t, live(snap, model.StateSelected), 3)
	assert.Empty(t, live(snap, model.StateMouseover))
	assert.Empty(t, live(snap, model.StateBackground))
}

func TestWageSelectCategory(t *testing.T) {
	w, clock := newTestWage(t, 1, 6, 12)

	_, err := w.Dispatch(Event{Kind: EventSelect, Key: "1"})
	require.NoError(t, err)
	clock.Add(time.Second)
	w.Settle()

	snap := w.Snapshot()
	assert.Equal(t, "1", w.Selection().Selected)
	assert.ElementsMatch(t, []int{0, 2}, recordIDs(live(snap, model.StateSelected)))
	assert.Len(t, snap.Elements, 2)
	for _, c := range snap.Lists {
		if c.Key == "1" {
			assert.Equal(t, model.StateSelected, c.State)
			assert.Equal(t, 2, c.Badge.Matches)
			assert.Equal(t, 67, c.Badge.Percent)
		}
	}
}

func TestWageRejectsUnknownInput(t *testing.T) {
	w, _ := newTestWage(t, 1, 6)

	_, err := w.Dispatch(Event{Kind: EventSelect, Key: "nope"})
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = w.Dispatch(Event{Kind: EventFilter, Group: "filter-nope", Option: "x"})
	assert.ErrorIs(t, err, filter.ErrUnknownGroup)

	_, err = w.Dispatch(Event{Kind: EventScroll})
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	_, err = w.Dispatch(Event{Kind: "drag"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = w.Dispatch(Event{Kind: EventElementOver, ElementID: 999})
	assert.ErrorIs(t, err, binder.ErrNoElement)
}

func TestWageElementHoverMovesInfobox(t *testing.T) {
	w, _ := newTestWage(t, 1, 6, 12)
	elems := w.Snapshot().Elements
	require.Len(t, elems, 3)
	a, b := elems[0], elems[1]

	_, err := w.Dispatch(Event{Kind: EventElementOver, ElementID: a.ID})
	require.NoError(t, err)
	_, err = w.Dispatch(Event{Kind: EventElementOver, ElementID: b.ID})
	require.NoError(t, err)

	snap := w.Snapshot()
	for _, e := range snap.Elements {
		switch e.ID {
		case a.ID:
			assert.False(t, e.Hovered)
			assert.Equal(t, pointRadius, e.R)
		case b.ID:
			assert.True(t, e.Hovered)
			assert.Equal(t, float64(pointRadiusHovered), e.R)
		}
	}
	require.Len(t, snap.Overlays, 1)
	assert.Equal(t, "Occupation", snap.Overlays[0].Title)
	rec := fixtures.Wages(1, 6, 12)[b.RecordID]
	assert.Equal(t, fixtures.Dictionary().Occupation(rec.OCCLY), snap.Overlays[0].Lines[0])

	_, err = w.Dispatch(Event{Kind: EventElementOut, ElementID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, w.Snapshot().Overlays)
}

func TestWageHoverDroppedWhenElementFades(t *testing.T) {
	w, _ := newTestWage(t, 1, 6, 12)
	var target ElementView
	for _, e := range w.Snapshot().Elements {
		if e.RecordID == 0 {
			target = e
		}
	}
	_, err := w.Dispatch(Event{Kind: EventElementOver, ElementID: target.ID})
	require.NoError(t, err)
	require.Len(t, w.Snapshot().Overlays, 1)

	_, err = w.Dispatch(Event{Kind: EventFilter, Group: filter.GroupWageEducation, Option: "college"})
	require.NoError(t, err)
	assert.Empty(t, w.Snapshot().Overlays)
}

func TestWageOutOfRangeEducation(t *testing.T) {
	assert.Equal(t, eduTicks[6], eduPosition(6))
	assert.Equal(t, 12.0, eduPosition(12))
	assert.Equal(t, eduDomain[1], eduPosition(40))
	assert.Equal(t, eduDomain[0], eduPosition(-3))
}

func TestWageResize(t *testing.T) {
	w, _ := newTestWage(t, 1, 6)
	before := w.Snapshot().Elements[0].X

	_, err := w.Dispatch(Event{Kind: EventResize, Width: 480, Height: 300})
	require.NoError(t, err)
	snap := w.Snapshot()
	assert.Equal(t, 480.0, snap.Width)
	assert.NotEqual(t, before, snap.Elements[0].X)

	_, err = w.Dispatch(Event{Kind: EventResize, Width: 800})
	require.NoError(t, err)
	snap = w.Snapshot()
	assert.Equal(t, 800.0, snap.Width)
	assert.Equal(t, 300.0, snap.Height)

	_, err = w.Dispatch(Event{Kind: EventResize})
	assert.Error(t, err)
	_, err = w.Dispatch(Event{Kind: EventResize, Width: -1, Height: 200})
	assert.Error(t, err)
}
