package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvLensA, "")
	t.Setenv(EnvLensB, "")
	t.Setenv(EnvLogLevel, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "lens_a.yaml", cfg.LensA)
	assert.Equal(t, "lens_b.yaml", cfg.LensB)
	assert.False(t, cfg.Watch)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Debounce)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "serieslens.yaml")

	cfg := DefaultConfig()
	cfg.LensA = "data/a.csv"
	cfg.Watch = true
	cfg.Debounce = Duration(time.Second)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "serieslens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lens_b: b.json\ndebounce: 1s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lens_a.yaml", cfg.LensA)
	assert.Equal(t, "b.json", cfg.LensB)
	assert.Equal(t, Duration(time.Second), cfg.Debounce)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "serieslens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debounce: soon\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLensA, "env-a.yaml")
	t.Setenv(EnvLensB, "env-b.yaml")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-a.yaml", cfg.LensA)
	assert.Equal(t, "env-b.yaml", cfg.LensB)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty lens a", func(c *Config) { c.LensA = "" }, "lens_a"},
		{"empty lens b", func(c *Config) { c.LensB = "" }, "lens_b"},
		{"zero debounce", func(c *Config) { c.Debounce = 0 }, "debounce"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
