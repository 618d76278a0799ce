package commands

import (
	"time"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
)

const settleTimeout = 5 * time.Second

// settled returns the snapshot of kind once every transition has finished.
// The dashboards run on the wall clock, so this waits out the fades.
func settled(m *dashboard.Manager, kind dashboard.Kind) (dashboard.Snapshot, error) {
	deadline := time.Now().Add(settleTimeout)
	for {
		snap, err := m.Snapshot(kind)
		if err != nil || !transitioning(snap) || time.Now().After(deadline) {
			return snap, err
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func transitioning(snap dashboard.Snapshot) bool {
	for _, e := range snap.Elements {
		if e.Fading || e.Opacity < 1 {
			return true
		}
	}
	return false
}
