package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scoutnetworks/vlanscout/pkg/config"
	"github.com/scoutnetworks/vlanscout/pkg/creds"
	"github.com/scoutnetworks/vlanscout/pkg/dnac"
	"github.com/scoutnetworks/vlanscout/pkg/util"
)

// Environment variables recognized alongside flags. Credentials have
// their own pair in pkg/creds.
const (
	envHost     = "VLANSCOUT_HOST"
	envInsecure = "VLANSCOUT_INSECURE"
)

// resolveConfig assembles the effective run configuration and validates
// it. Precedence per field: flag > environment > config file > default.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	if err := fillCredentials(cmd.Context(), cfg, opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildConfig loads the config file and layers flag and environment
// values over it. Credentials are resolved separately so the
// interactive prompt runs only after everything else came up empty.
func buildConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := loadConfigFile(cmd, opts)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("host") {
		cfg.Host = opts.host
	} else if v := os.Getenv(envHost); v != "" {
		cfg.Host = v
	}

	if cmd.Flags().Changed("insecure") {
		cfg.Insecure = opts.insecure
	} else if v := os.Getenv(envInsecure); v != "" {
		cfg.Insecure = parseBool(v)
	}

	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = opts.timeout
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}

	if err := resolveRange(cmd, opts, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.LoadFrom(opts.configPath)
	}
	return config.Load()
}

// resolveRange applies --range or --start/--end to cfg. The two forms
// are mutually exclusive.
func resolveRange(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) error {
	rangeSet := cmd.Flags().Changed("range")
	boundsSet := cmd.Flags().Changed("start") || cmd.Flags().Changed("end")
	if rangeSet && boundsSet {
		return fmt.Errorf("--range and --start/--end are mutually exclusive")
	}

	if rangeSet {
		start, end, err := util.ParseVLANBounds(opts.rangeSpec)
		if err != nil {
			return fmt.Errorf("invalid --range: %w", err)
		}
		cfg.RangeStart, cfg.RangeEnd = start, end
		return nil
	}

	if cmd.Flags().Changed("start") {
		cfg.RangeStart = opts.start
	}
	if cmd.Flags().Changed("end") {
		cfg.RangeEnd = opts.end
	}
	return nil
}

// fillCredentials resolves the API credentials: flags, then environment,
// then the config file, then an interactive prompt when stdin is a TTY.
func fillCredentials(ctx context.Context, cfg *config.Config, opts *rootOptions) error {
	have, err := creds.Chain{
		creds.Static{Username: opts.username, Password: opts.password},
		creds.Env{},
		creds.Static{Username: cfg.Username, Password: cfg.Password},
		creds.Terminal{},
	}.Fill(ctx, creds.Credentials{})
	if err != nil {
		return fmt.Errorf("resolving credentials: %w", err)
	}
	cfg.Username = have.Username
	cfg.Password = have.Password
	return nil
}

// connect builds the API client and authenticates.
func connect(ctx context.Context, cfg *config.Config) (*dnac.Client, string, error) {
	client, err := dnac.NewClient(dnac.Config{
		Host:     cfg.Host,
		Insecure: cfg.Insecure,
		Timeout:  cfg.RequestTimeout(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := client.Authenticate(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, "", fmt.Errorf("authentication: %w", err)
	}
	util.Debugf("authenticated to %s", cfg.Host)
	return client, token, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
