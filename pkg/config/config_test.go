package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scoutnetworks/vlanscout/pkg/util"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
host: sandboxdnac.cisco.com
username: devnetuser
password: Cisco123!
range_start: 100
range_end: 199
timeout_seconds: 10
insecure: true
workers: 4
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Host != "sandboxdnac.cisco.com" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Username != "devnetuser" || cfg.Password != "Cisco123!" {
		t.Errorf("credentials = %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.RangeStart != 100 || cfg.RangeEnd != 199 {
		t.Errorf("range = %d-%d, want 100-199", cfg.RangeStart, cfg.RangeEnd)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
	if !cfg.Insecure {
		t.Error("Insecure = false, want true")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestLoadFromDefaults(t *testing.T) {
	path := writeConfig(t, `host: dnac.example.com`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.RangeStart != DefaultRangeStart || cfg.RangeEnd != DefaultRangeEnd {
		t.Errorf("range = %d-%d, want defaults %d-%d",
			cfg.RangeStart, cfg.RangeEnd, DefaultRangeStart, DefaultRangeEnd)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.Insecure {
		t.Error("Insecure = true, want false")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	path := writeConfig(t, "host: [unclosed")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("err = %v, want parse context", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Host:           "dnac.example.com",
		Username:       "admin",
		Password:       "secret",
		RangeStart:     600,
		RangeEnd:       699,
		TimeoutSeconds: 30,
		Workers:        1,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"reversed range allowed", func(c *Config) { c.RangeStart = 699; c.RangeEnd = 600 }, ""},
		{"missing host", func(c *Config) { c.Host = "" }, "host is required"},
		{"missing username", func(c *Config) { c.Username = "" }, "username is required"},
		{"missing password", func(c *Config) { c.Password = "" }, "password is required"},
		{"range start too low", func(c *Config) { c.RangeStart = 0 }, "range start"},
		{"range end too high", func(c *Config) { c.RangeEnd = 4095 }, "range end"},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, "timeout must be positive"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, util.ErrValidationFailed) {
				t.Errorf("err does not unwrap to ErrValidationFailed: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Config{TimeoutSeconds: 30, Workers: 1, RangeStart: 600, RangeEnd: 699}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *util.ValidationError", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("got %d errors, want 3 (host, username, password): %v", len(verr.Errors), verr.Errors)
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 45}
	if got := cfg.RequestTimeout(); got != 45*time.Second {
		t.Errorf("RequestTimeout() = %v, want 45s", got)
	}
}
