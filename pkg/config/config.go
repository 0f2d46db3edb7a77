// Package config loads and validates vlanscout run configuration.
// Flag and environment resolution happens in the command layer; this
// package owns file loading, defaults, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scoutnetworks/vlanscout/pkg/util"
)

// Defaults applied when neither flags, environment, nor the config
// file provide a value.
const (
	DefaultRangeStart     = 600
	DefaultRangeEnd       = 699
	DefaultTimeoutSeconds = 30
	DefaultWorkers        = 1
)

// Config holds one run's settings.
type Config struct {
	// Host is the Catalyst Center hostname or URL.
	Host string `yaml:"host"`

	// Username and Password authenticate against the controller.
	// A password in a config file is a lab convenience; prefer the
	// environment or the interactive prompt elsewhere.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// RangeStart and RangeEnd bound the VLAN scan, inclusive.
	RangeStart int `yaml:"range_start"`
	RangeEnd   int `yaml:"range_end"`

	// TimeoutSeconds bounds each API call.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Insecure disables TLS certificate verification.
	Insecure bool `yaml:"insecure"`

	// Workers is the number of concurrent per-device VLAN fetches.
	Workers int `yaml:"workers"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vlanscout.yaml"
	}
	return filepath.Join(home, ".vlanscout", "config.yaml")
}

// Load reads the config file from the default location. A missing
// file yields defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(DefaultPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFrom reads the config file at path. Unlike Load, a missing file
// is an error since the user named it explicitly.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RangeStart == 0 {
		c.RangeStart = DefaultRangeStart
	}
	if c.RangeEnd == 0 {
		c.RangeEnd = DefaultRangeEnd
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate checks the assembled configuration after flag, environment,
// and prompt resolution. A start above end is allowed and scans an
// empty range.
func (c *Config) Validate() error {
	var b util.ValidationBuilder
	b.Add(c.Host != "", "host is required")
	b.Add(c.Username != "", "username is required")
	b.Add(c.Password != "", "password is required")

	if err := util.ValidateVLANID(c.RangeStart); err != nil {
		b.AddErrorf("range start: %v", err)
	}
	if err := util.ValidateVLANID(c.RangeEnd); err != nil {
		b.AddErrorf("range end: %v", err)
	}

	b.Add(c.TimeoutSeconds > 0, "timeout must be positive")
	b.Add(c.Workers >= 1, "workers must be at least 1")

	return b.Build()
}

// RequestTimeout returns the per-call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
