package dashboard

import (
	"testing"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) (*Config, *scene.ManualClock) {
	t.Helper()
	clock := scene.NewManualClock(epoch)
	cfg := &Config{
		DataDir:       t.TempDir(),
		SubsampleRate: 1,
		FadeDuration:  100 * time.Millisecond,
		Clock:         clock,
	}
	require.NoError(t, cfg.Validate())
	return cfg, clock
}

// live returns the non-fading elements of snap tagged tag.
func live(snap Snapshot, tag model.VisualState) []ElementView {
	var out []ElementView
	for _, e := range snap.Elements {
		if e.Tag == tag && !e.Fading {
			out = append(out, e)
		}
	}
	return out
}

func recordIDs(elems []ElementView) []int {
	ids := make([]int, len(elems))
	for i, e := range elems {
		ids[i] = e.RecordID
	}
	return ids
}
