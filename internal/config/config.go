// Package config loads the serieslens configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvLensA    = "SERIESLENS_LENS_A"
	EnvLensB    = "SERIESLENS_LENS_B"
	EnvLogLevel = "SERIESLENS_LOG_LEVEL"
)

// Config holds the runtime settings.
type Config struct {
	LensA    string   `yaml:"lens_a"`
	LensB    string   `yaml:"lens_b"`
	Watch    bool     `yaml:"watch"`
	Debounce Duration `yaml:"debounce"`
	LogLevel string   `yaml:"log_level"`
}

// Duration is a time.Duration written as "250ms" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LensA:    "lens_a.yaml",
		LensB:    "lens_b.yaml",
		Watch:    false,
		Debounce: Duration(250 * time.Millisecond),
		LogLevel: "info",
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLensA); v != "" {
		c.LensA = v
	}
	if v := os.Getenv(EnvLensB); v != "" {
		c.LensB = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.LensA == "" {
		return fmt.Errorf("lens_a path is required")
	}
	if c.LensB == "" {
		return fmt.Errorf("lens_b path is required")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", time.Duration(c.Debounce))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
