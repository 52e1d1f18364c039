package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	require.NoError(t, m.Load())

	assert.FileExists(t, filepath.Join(dir, ".fr0st", "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".fr0st", ".gitignore"))
	assert.Equal(t, DefaultConfig(), m.Get())
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".fr0st"), 0o755))
	t.Setenv("FR0ST_TEST_OUT", "/tmp/flames")

	yaml := `default_backend: sketch
poll_interval: 25ms
render:
  threads: 2
output_dir: ${FR0ST_TEST_OUT}/out
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fr0st", "config.yaml"), []byte(yaml), 0o644))

	m := NewManager(dir)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "sketch", cfg.DefaultBackend)
	assert.Equal(t, 25*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 2, cfg.Render.Threads)
	assert.Equal(t, 640, cfg.Render.Width, "unset keys keep defaults")
	assert.Equal(t, "/tmp/flames/out", cfg.OutputDir)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".fr0st"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fr0st", "config.yaml"), []byte("log_level: loud\n"), 0o644))

	err := NewManager(dir).Load()
	assert.ErrorContains(t, err, "invalid log level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no backend", func(c *Config) { c.DefaultBackend = "" }, "default_backend is required"},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }, "poll interval"},
		{"negative reload delay", func(c *Config) { c.ReloadDelay = -time.Second }, "reload delay"},
		{"zero quality", func(c *Config) { c.Preview.Quality = 0 }, "quality must be positive"},
		{"empty preview", func(c *Config) { c.Preview.Width = 0 }, "preview size"},
		{"tiny thumbnail", func(c *Config) { c.Thumbnail.Size = 0 }, "thumbnail size"},
		{"no threads", func(c *Config) { c.Render.Threads = 0 }, "render threads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSet(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	require.NoError(t, m.Load())

	require.NoError(t, m.Set("render.threads", "8"))
	require.NoError(t, m.Set("poll_interval", "5ms"))
	assert.Error(t, m.Set("render.threads", "lots"))
	assert.Error(t, m.Set("render.threads", "0"))
	assert.ErrorContains(t, m.Set("nope", "x"), "unknown config key")

	reloaded := NewManager(dir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 8, reloaded.Get().Render.Threads)
	assert.Equal(t, 5*time.Millisecond, reloaded.Get().PollInterval)
}

func TestExpandString(t *testing.T) {
	t.Setenv("FR0ST_TEST_VAR", "value")

	assert.Equal(t, "value", expandString("$FR0ST_TEST_VAR"))
	assert.Equal(t, "a-value-b", expandString("a-${FR0ST_TEST_VAR}-b"))
	assert.Equal(t, "$FR0ST_UNSET_VAR", expandString("$FR0ST_UNSET_VAR"))
}
