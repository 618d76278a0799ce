package dashboard

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/data/scanner"
)

// Config contains configuration for the dashboards
type Config struct {
	// Dataset locations; empty entries are discovered in DataDir
	DataDir string          `yaml:"data_dir"`
	Sources scanner.Sources `yaml:"sources"`

	// Binding settings
	PageSize            int           `yaml:"page_size"`
	CompletionThreshold float64       `yaml:"completion_threshold"`
	FadeDuration        time.Duration `yaml:"fade_duration"`

	// Wage dataset preprocessing
	SubsampleRate float64 `yaml:"subsample_rate"`
	JitterScale   float64 `yaml:"jitter_scale"`
	JitterSeed    uint64  `yaml:"jitter_seed"`
	WageCeiling   float64 `yaml:"wage_ceiling"`

	// Canvas size before the first resize
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Server settings
	Listen string `yaml:"listen"`
	Watch  bool   `yaml:"watch"`

	// Clock drives transitions; nil means the wall clock
	Clock scene.Clock `yaml:"-"`
}

// DefaultJitterSeed keeps jitter stable across runs unless configured.
const DefaultJitterSeed = 109787

// Validate fills defaults and rejects impossible values
func (c *Config) Validate() error {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.PageSize == 0 {
		c.PageSize = 50
	}
	if c.CompletionThreshold == 0 {
		c.CompletionThreshold = 0.8
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 300 * time.Millisecond
	}
	if c.SubsampleRate == 0 {
		c.SubsampleRate = 0.3
	}
	if c.JitterScale == 0 {
		c.JitterScale = 0.15
	}
	if c.JitterSeed == 0 {
		c.JitterSeed = DefaultJitterSeed
	}
	if c.WageCeiling == 0 {
		c.WageCeiling = 200000
	}
	if c.Width == 0 {
		c.Width = 960
	}
	if c.Height == 0 {
		c.Height = 600
	}
	if c.Listen == "" {
		c.Listen = ":7428"
	}
	if c.Clock == nil {
		c.Clock = scene.SystemClock{}
	}

	if c.PageSize < 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.CompletionThreshold < 0 || c.CompletionThreshold > 1 {
		return fmt.Errorf("completion_threshold must be within (0, 1], got %v", c.CompletionThreshold)
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("fade_duration must not be negative, got %v", c.FadeDuration)
	}
	if c.SubsampleRate < 0 || c.SubsampleRate > 1 {
		return fmt.Errorf("subsample_rate must be within (0, 1], got %v", c.SubsampleRate)
	}
	if c.WageCeiling < 0 {
		return fmt.Errorf("wage_ceiling must be positive, got %v", c.WageCeiling)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Width, c.Height)
	}
	return nil
}

// LoadConfig reads a YAML config file. A missing path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
