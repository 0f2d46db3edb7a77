package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoutnetworks/vlanscout/pkg/cli"
)

func newDevicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the controller's device inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			devices, err := client.ListDevices(ctx, token)
			if err != nil {
				return fmt.Errorf("enumerating devices: %w", err)
			}
			if len(devices) == 0 {
				fmt.Fprintln(out, "No devices in inventory")
				return nil
			}

			tbl := cli.NewTableWriter(out, "HOSTNAME", "MANAGEMENT IP", "TYPE", "ID")
			for _, d := range devices {
				tbl.Row(d.Hostname, d.ManagementIP, d.Type, d.ID)
			}
			tbl.Flush()
			return nil
		},
	}
}
