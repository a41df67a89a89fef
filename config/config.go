// Package config loads the doodle settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/geom"
	"github.com/inkrank/doodle/schedule"
)

const (
	EnvConfig     = "DOODLE_CONFIG"
	EnvURL        = "DOODLE_CLASSIFIER_URL"
	EnvSecret     = "DOODLE_CLASSIFIER_SECRET"
	EnvLabels     = "DOODLE_LABELS"
	EnvDebounceMS = "DOODLE_DEBOUNCE_MS"
)

type Canvas struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	LineWidth float64 `yaml:"line_width"`
	Margin    float64 `yaml:"margin"`
}

type Classifier struct {
	URL     string        `yaml:"url"`
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
	Labels  string        `yaml:"labels"`
	// BatchSize bounds concurrent requests of the file classifier.
	BatchSize int64 `yaml:"batch_size"`
}

type Chart struct {
	TopK    int      `yaml:"top_k"`
	Palette []string `yaml:"palette"`
}

type Config struct {
	Canvas          Canvas        `yaml:"canvas"`
	Classifier      Classifier    `yaml:"classifier"`
	Chart           Chart         `yaml:"chart"`
	Debounce        time.Duration `yaml:"debounce"`
	HistoryMaxDepth int           `yaml:"history_max_depth"`
}

// Default draws 4px ink on a 280px canvas with a 20px crop margin, a
// 140ms quiet period and a five slice chart.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:     canvas.DefaultWidth,
			Height:    canvas.DefaultHeight,
			LineWidth: canvas.DefaultLineWidth,
			Margin:    geom.DefaultMargin,
		},
		Classifier: Classifier{
			URL:       "http://localhost:5000",
			Timeout:   10 * time.Second,
			BatchSize: 3,
		},
		Chart: Chart{
			TopK:    chart.TopK,
			Palette: append([]string(nil), chart.DefaultPalette...),
		},
		Debounce: schedule.DefaultDelay,
	}
}

// Load reads path (if not empty) over the defaults, then applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("can't read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("can't parse config %s: %w", path, err)
		}
		if cfg.Classifier.Labels != "" && !filepath.IsAbs(cfg.Classifier.Labels) {
			cfg.Classifier.Labels = filepath.Join(filepath.Dir(path), cfg.Classifier.Labels)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvURL); v != "" {
		c.Classifier.URL = v
	}
	if v := os.Getenv(EnvSecret); v != "" {
		c.Classifier.Secret = v
	}
	if v := os.Getenv(EnvLabels); v != "" {
		c.Classifier.Labels = v
	}
	if v := os.Getenv(EnvDebounceMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounceMS, err)
		}
		c.Debounce = time.Duration(ms) * time.Millisecond
	}
	return nil
}

func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d is invalid", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive")
	}
	if c.Canvas.Margin < 0 {
		return fmt.Errorf("margin must not be negative")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.Chart.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	for _, p := range c.Chart.Palette {
		if _, err := chart.ParseHex(p); err != nil {
			return err
		}
	}
	if c.Classifier.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	return nil
}
