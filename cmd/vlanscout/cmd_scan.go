package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoutnetworks/vlanscout/pkg/scan"
)

// runScan drives the whole pipeline: resolve config, authenticate,
// enumerate devices, fetch VLAN tables, aggregate, report. Per-device
// fetch failures end up in the summary; only configuration, auth, and
// inventory errors abort the run.
func runScan(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	client, token, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Target: %s\n", cfg.Host)
	fmt.Fprintf(out, "Range: VLANs %d-%d\n\n", cfg.RangeStart, cfg.RangeEnd)

	devices, err := client.ListDevices(ctx, token)
	if err != nil {
		return fmt.Errorf("enumerating devices: %w", err)
	}
	if len(devices) == 0 {
		fmt.Fprintln(out, "No devices in inventory")
		return nil
	}

	scanner := &scan.Scanner{
		Fetcher:  client,
		Token:    token,
		Workers:  cfg.Workers,
		Progress: &scan.ConsoleProgress{W: out},
	}
	results := scanner.Scan(ctx, devices)

	scan.Aggregate(results, cfg.RangeStart, cfg.RangeEnd).Render(out)
	return nil
}
