package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 0.8, cfg.CompletionThreshold)
	assert.Equal(t, 300*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 0.3, cfg.SubsampleRate)
	assert.Equal(t, uint64(DefaultJitterSeed), cfg.JitterSeed)
	assert.Equal(t, 200000.0, cfg.WageCeiling)
	assert.Equal(t, ":7428", cfg.Listen)
	assert.IsType(t, scene.SystemClock{}, cfg.Clock)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/data
sources:
  wage_data: https://example.org/asec.csv
page_size: 20
fade_duration: 150ms
subsample_rate: 1
watch: true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "https://example.org/asec.csv", cfg.Sources.WageData)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 1.0, cfg.SubsampleRate)
	assert.True(t, cfg.Watch)
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative page size", Config{PageSize: -1}},
		{"threshold above one", Config{CompletionThreshold: 1.5}},
		{"negative fade", Config{FadeDuration: -time.Second}},
		{"subsample above one", Config{SubsampleRate: 2}},
		{"negative ceiling", Config{WageCeiling: -5}},
		{"negative size", Config{Width: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
