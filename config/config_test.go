package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 280, cfg.Canvas.Width)
	assert.Equal(t, 20.0, cfg.Canvas.Margin)
	assert.Equal(t, 140*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 5, cfg.Chart.TopK)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doodle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
canvas:
  width: 400
  height: 300
debounce: 200ms
classifier:
  url: http://inference:9000
  labels: vocab.txt
chart:
  top_k: 3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Canvas.Width)
	assert.Equal(t, 300, cfg.Canvas.Height)
	assert.Equal(t, 4.0, cfg.Canvas.LineWidth, "unset keys keep defaults")
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "http://inference:9000", cfg.Classifier.URL)
	assert.Equal(t, filepath.Join(dir, "vocab.txt"), cfg.Classifier.Labels)
	assert.Equal(t, 3, cfg.Chart.TopK)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvURL, "http://env:1234")
	t.Setenv(EnvSecret, "s3cret")
	t.Setenv(EnvDebounceMS, "50")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env:1234", cfg.Classifier.URL)
	assert.Equal(t, "s3cret", cfg.Classifier.Secret)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)

	t.Setenv(EnvDebounceMS, "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Chart.Palette = []string{"red"}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Debounce = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
