package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Manager owns the dashboards and serializes every access to them
type Manager struct {
	mu sync.Mutex

	dashboards map[Kind]Dashboard
	loadErrors map[Kind]error

	// Metadata
	lastUpdate map[Kind]time.Time
}

// NewManager creates an empty Manager
func NewManager() *Manager {
	return &Manager{
		dashboards: make(map[Kind]Dashboard),
		loadErrors: make(map[Kind]error),
		lastUpdate: make(map[Kind]time.Time),
	}
}

// Set installs or replaces a dashboard and clears its load error
func (m *Manager) Set(d Dashboard) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dashboards[d.Kind()] = d
	delete(m.loadErrors, d.Kind())
	m.lastUpdate[d.Kind()] = time.Now()
}

// SetError records a load failure. A previously loaded dashboard is kept
// so a failed reload does not blank the view.
func (m *Manager) SetError(kind Kind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadErrors[kind] = err
}

// Kinds returns every dashboard kind that is loaded or failed to load
func (m *Manager) Kinds() []Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[Kind]struct{})
	for k := range m.dashboards {
		seen[k] = struct{}{}
	}
	for k := range m.loadErrors {
		seen[k] = struct{}{}
	}
	kinds := make([]Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// LoadError returns the last load failure of kind, if any
func (m *Manager) LoadError(kind Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadErrors[kind]
}

// LastUpdate returns when kind was last (re)loaded
func (m *Manager) LastUpdate(kind Kind) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastUpdate[kind]
}

func (m *Manager) get(kind Kind) (Dashboard, error) {
	d, ok := m.dashboards[kind]
	if ok {
		return d, nil
	}
	if err, failed := m.loadErrors[kind]; failed {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotLoaded, kind, err)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDashboard, kind)
}

// Dispatch settles pending transitions and applies ev to the dashboard
func (m *Manager) Dispatch(kind Kind, ev Event) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.get(kind)
	if err != nil {
		return Result{}, err
	}
	d.Settle()
	return d.Dispatch(ev)
}

// Snapshot settles pending transitions and returns the dashboard state.
// A dashboard that never loaded yields a snapshot carrying the load error.
func (m *Manager) Snapshot(kind Kind) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.get(kind)
	if err != nil {
		if loadErr, failed := m.loadErrors[kind]; failed {
			return Snapshot{Kind: kind, LoadError: loadErr.Error()}, nil
		}
		return Snapshot{}, err
	}
	d.Settle()
	snap := d.Snapshot()
	if loadErr, failed := m.loadErrors[kind]; failed {
		snap.LoadError = loadErr.Error()
	}
	return snap, nil
}
