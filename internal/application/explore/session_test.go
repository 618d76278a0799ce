package explore

import (
	"testing"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/presentation/interaction"
	"github.com/penwyp/go-survey-explorer/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*dashboard.Manager, *scene.ManualClock) {
	t.Helper()
	clock := scene.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := &dashboard.Config{SubsampleRate: 1, PageSize: 3, Clock: clock}
	require.NoError(t, cfg.Validate())

	m := dashboard.NewManager()
	w, err := dashboard.NewWage(cfg, fixtures.Wages(1, 6, 12), fixtures.Dictionary())
	require.NoError(t, err)
	m.Set(w)
	tu, err := dashboard.NewTimeUse(cfg, fixtures.Respondents(10, 4), fixtures.Catalog())
	require.NoError(t, err)
	m.Set(tu)
	clock.Add(time.Second)
	return m, clock
}

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Key: r, Type: interaction.KeyChar}
}

func key(t interaction.KeyType) interaction.KeyEvent {
	return interaction.KeyEvent{Type: t}
}

func TestSessionQuit(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := NewSession(m, dashboard.KindWage)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Handle(char('q')), ErrQuit)
	assert.ErrorIs(t, s.Handle(key(interaction.KeyCtrlC)), ErrQuit)

	_, err = NewSession(m, "histogram")
	assert.ErrorIs(t, err, dashboard.ErrUnknownDashboard)
	_, err = NewSession(dashboard.NewManager(), "")
	assert.ErrorIs(t, err, dashboard.ErrUnknownDashboard)
}

func TestSessionWageKeys(t *testing.T) {
	m, clock := newTestManager(t)
	s, err := NewSession(m, dashboard.KindWage)
	require.NoError(t, err)

	require.NoError(t, s.Handle(key(interaction.KeyDown)))
	snap := s.View().Snapshot
	assert.Equal(t, model.StateMouseover, snap.Lists[1].State)

	require.NoError(t, s.Handle(key(interaction.KeyEnter)))
	clock.Add(time.Second)
	snap = s.View().Snapshot
	assert.Equal(t, model.StateSelected, snap.Lists[1].State)

	require.NoError(t, s.Handle(char('l')))
	snap = s.View().Snapshot
	assert.Len(t, snap.Overlays, 1)

	require.NoError(t, s.Handle(char('1')))
	view := s.View()
	assert.Equal(t, "Education: High school", view.Status)
	assert.Empty(t, view.Snapshot.Overlays)
}

func TestSessionTimeUseSearch(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := NewSession(m, dashboard.KindTimeUse)
	require.NoError(t, err)

	require.NoError(t, s.Handle(char('/')))
	assert.True(t, s.View().Typing)
	for _, r := range "tvx" {
		require.NoError(t, s.Handle(char(r)))
	}
	require.NoError(t, s.Handle(key(interaction.KeyBackspace)))
	assert.Equal(t, "tv", s.View().Snapshot.Search.Query)
	assert.Equal(t, 4, s.View().Snapshot.Results)

	require.NoError(t, s.Handle(key(interaction.KeyDown)))
	require.NoError(t, s.Handle(key(interaction.KeyDown)))
	require.NoError(t, s.Handle(key(interaction.KeyEnter)))
	view := s.View()
	assert.False(t, view.Typing)
	assert.Equal(t, "Watching TV", view.Snapshot.Search.Query)
	assert.Equal(t, "4 results", view.Status)
}

func TestSessionTimeUseScrollAndHover(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := NewSession(m, dashboard.KindTimeUse)
	require.NoError(t, err)
	assert.Equal(t, 3, s.View().Snapshot.Page.Shown)

	require.NoError(t, s.Handle(key(interaction.KeyDown)))
	assert.Equal(t, 3, s.View().Snapshot.Page.Shown)
	require.NoError(t, s.Handle(key(interaction.KeyDown)))
	assert.Equal(t, 6, s.View().Snapshot.Page.Shown)

	require.NoError(t, s.Handle(key(interaction.KeyPageDown)))
	assert.Equal(t, 9, s.View().Snapshot.Page.Shown)

	require.NoError(t, s.Handle(key(interaction.KeyRight)))
	require.NoError(t, s.Handle(key(interaction.KeyRight)))
	snap := s.View().Snapshot
	require.Len(t, snap.Overlays, 2)
	assert.Equal(t, "Eating and drinking", snap.Overlays[0].Title)

	require.NoError(t, s.Handle(key(interaction.KeyEscape)))
	assert.Empty(t, s.View().Snapshot.Overlays)

	require.NoError(t, s.Handle(key(interaction.KeyTab)))
	assert.Equal(t, dashboard.KindWage, s.Kind())
}

func TestSessionTimeUseCursorSkipsFadingRows(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := NewSession(m, dashboard.KindTimeUse)
	require.NoError(t, err)

	require.NoError(t, s.Handle(char('/')))
	for _, r := range "playing" {
		require.NoError(t, s.Handle(char(r)))
	}
	require.NoError(t, s.Handle(key(interaction.KeyEscape)))
	require.False(t, s.View().Typing)

	// The clock is not advanced, so filtered-out rows are still fading.
	snap := s.View().Snapshot
	var live []int
	fading := 0
	for _, e := range snap.Elements {
		if e.Fading {
			fading++
			continue
		}
		live = append(live, e.ID)
	}
	require.NotZero(t, fading)
	require.NotEmpty(t, live)

	require.NoError(t, s.Handle(key(interaction.KeyRight)))
	snap = s.View().Snapshot
	assert.NotEmpty(t, snap.Overlays)
	for _, e := range snap.Elements {
		if e.Hovered {
			assert.False(t, e.Fading)
			assert.Equal(t, live[0], e.ID)
		}
	}
}
