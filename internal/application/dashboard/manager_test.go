package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerUnknownDashboard(t *testing.T) {
	m := NewManager()
	_, err := m.Dispatch(KindWage, Event{Kind: EventMouseout})
	assert.ErrorIs(t, err, ErrUnknownDashboard)
	_, err = m.Snapshot(KindWage)
	assert.ErrorIs(t, err, ErrUnknownDashboard)
	assert.Empty(t, m.Kinds())
}

func TestManagerLoadError(t *testing.T) {
	m := NewManager()
	m.SetError(KindTimeUse, errors.New("no time-use dataset"))

	_, err := m.Dispatch(KindTimeUse, Event{Kind: EventScroll})
	assert.ErrorIs(t, err, ErrNotLoaded)

	snap, err := m.Snapshot(KindTimeUse)
	require.NoError(t, err)
	assert.Equal(t, "no time-use dataset", snap.LoadError)
	assert.Equal(t, []Kind{KindTimeUse}, m.Kinds())
}

func TestManagerKeepsDashboardAfterFailedReload(t *testing.T) {
	w, _ := newTestWage(t, 1, 6, 12)
	m := NewManager()
	m.Set(w)
	assert.False(t, m.LastUpdate(KindWage).IsZero())

	m.SetError(KindWage, errors.New("bad row"))
	snap, err := m.Snapshot(KindWage)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Results)
	assert.Equal(t, "bad row", snap.LoadError)

	_, err = m.Dispatch(KindWage, Event{Kind: EventSelect, Key: "2"})
	require.NoError(t, err)

	m.Set(w)
	assert.NoError(t, m.LoadError(KindWage))
	assert.Equal(t, []Kind{KindWage}, m.Kinds())
}
