package scene

import (
	"testing"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFadeInAndOut(t *testing.T) {
	clock := NewManualClock(epoch)
	g := New(clock)

	e := g.Create(7, model.StateSelected)
	assert.Equal(t, 0.0, e.Opacity)
	g.FadeIn(e, 100*time.Millisecond, Linear)
	assert.True(t, e.Transitioning())

	g.Advance(clock.Add(50 * time.Millisecond))
	assert.InDelta(t, 0.5, e.Opacity, 1e-9)
	g.Advance(clock.Add(60 * time.Millisecond))
	assert.Equal(t, 1.0, e.Opacity)
	assert.False(t, e.Transitioning())

	g.FadeOut(e, 100*time.Millisecond, EaseInCubic)
	assert.True(t, e.Fading)
	assert.Empty(t, g.Live(model.StateSelected))
	assert.Equal(t, 1, g.Len())

	removed := g.Advance(clock.Add(100 * time.Millisecond))
	assert.Equal(t, []int{e.ID}, removed)
	assert.Equal(t, 0, g.Len())
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	g := New(nil)
	e := g.Create(1, model.StateMouseover)
	g.FadeIn(e, 0, nil)
	assert.Equal(t, 1.0, e.Opacity)

	g.FadeOut(e, 0, nil)
	assert.Equal(t, 0, g.Len())
}

func TestRetagIncludesFading(t *testing.T) {
	clock := NewManualClock(epoch)
	g := New(clock)
	a := g.Create(1, model.StateSelected)
	b := g.Create(2, model.StateSelected)
	g.FadeOut(b, time.Second, nil)

	assert.Equal(t, 2, g.Retag(model.StateSelected, model.StateBackground))
	assert.Equal(t, model.StateBackground, a.Tag)
	assert.Equal(t, model.StateBackground, b.Tag)
	assert.Len(t, g.Live(model.StateBackground), 1)
}

func TestEasing(t *testing.T) {
	for _, ease := range []Ease{EaseInCubic, EaseOutCubic, Linear} {
		assert.InDelta(t, 0, ease(0), 1e-9)
		assert.InDelta(t, 1, ease(1), 1e-9)
	}
	assert.Less(t, EaseInCubic(0.5), 0.5)
	assert.Greater(t, EaseOutCubic(0.5), 0.5)
}

func TestOverlaysAreIdempotent(t *testing.T) {
	g := New(nil)
	assert.False(t, g.RemoveOverlay("infobox"))

	g.SetOverlay(Overlay{Name: "infobox", Title: "first"})
	g.SetOverlay(Overlay{Name: "infobox", Title: "second"})
	g.SetOverlay(Overlay{Name: "label", Title: "x"})

	overlays := g.Overlays()
	require.Len(t, overlays, 2)
	assert.Equal(t, "second", overlays[0].Title)
	assert.Equal(t, "label", overlays[1].Name)

	assert.True(t, g.RemoveOverlay("infobox"))
	assert.False(t, g.RemoveOverlay("infobox"))
	assert.Len(t, g.Overlays(), 1)
}

func TestFind(t *testing.T) {
	g := New(nil)
	e := g.Create(3, model.StateSelected)
	got, ok := g.Find(e.ID)
	require.True(t, ok)
	assert.Same(t, e, got)
	_, ok = g.Find(e.ID + 1)
	assert.False(t, ok)

	g.Reset()
	assert.Equal(t, 0, g.Len())
}
