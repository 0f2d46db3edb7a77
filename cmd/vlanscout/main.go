// Vlanscout - Catalyst Center VLAN Range Scanner
//
// A read-only CLI that reports which VLAN IDs in a range are in use
// across the device inventory of a Cisco Catalyst Center controller:
//   - Authenticates once and reuses the session token
//   - Walks the managed device inventory
//   - Fetches each device's VLAN table, optionally in parallel
//   - Prints per-device matches and a range-wide summary
//
// Examples:
//
//	vlanscout --host sandboxdnac.cisco.com                # scan the default range 600-699
//	vlanscout --range 100-199                             # scan an explicit range
//	vlanscout --start 600 --end 610 --workers 4           # bounds form, 4 parallel fetches
//	vlanscout devices                                     # list the inventory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scoutnetworks/vlanscout/pkg/config"
	"github.com/scoutnetworks/vlanscout/pkg/util"
	"github.com/scoutnetworks/vlanscout/pkg/version"
)

// rootOptions holds flag values shared by the root scan and its
// subcommands. Effective values come from buildConfig, which layers
// flags over environment, config file, and defaults.
type rootOptions struct {
	host       string
	username   string
	password   string
	rangeSpec  string
	start      int
	end        int
	timeout    int
	workers    int
	insecure   bool
	configPath string
	verbose    bool
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vlanscout",
		Short: "Catalyst Center VLAN range scanner",
		Long: `Vlanscout reports which VLAN IDs in a range are already in use across
the device inventory of a Cisco Catalyst Center controller.

It authenticates once, walks the inventory, fetches each device's VLAN
table, and prints per-device matches plus a range-wide summary. All
operations are read-only.

  vlanscout --host sandboxdnac.cisco.com       # scan the default range 600-699
  vlanscout --range 100-199                    # scan an explicit range
  vlanscout --start 600 --end 610 --workers 4  # bounds form, 4 parallel fetches
  vlanscout devices                            # list the inventory`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Quiet by default, verbose on -v
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			return util.SetLogLevel(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.host, "host", "", "Catalyst Center host or URL (or VLANSCOUT_HOST)")
	pf.StringVarP(&opts.username, "username", "u", "", "API username (or VLANSCOUT_USERNAME)")
	pf.StringVarP(&opts.password, "password", "p", "", "API password (or VLANSCOUT_PASSWORD)")
	pf.IntVar(&opts.timeout, "timeout", config.DefaultTimeoutSeconds, "request timeout in seconds")
	pf.BoolVarP(&opts.insecure, "insecure", "k", false, "skip TLS certificate verification (or VLANSCOUT_INSECURE)")
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.vlanscout/config.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	cmd.Flags().StringVar(&opts.rangeSpec, "range", "", `VLAN range to check: "start-end" or a single ID`)
	cmd.Flags().IntVar(&opts.start, "start", config.DefaultRangeStart, "first VLAN ID of the range")
	cmd.Flags().IntVar(&opts.end, "end", config.DefaultRangeEnd, "last VLAN ID of the range")
	cmd.Flags().IntVar(&opts.workers, "workers", config.DefaultWorkers, "concurrent VLAN fetches")

	cmd.AddCommand(
		newDevicesCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				if version.Version == "dev" {
					fmt.Println("vlanscout dev build (use 'make build' for version info)")
				} else {
					fmt.Printf("vlanscout %s (%s)\n", version.Version, version.GitCommit)
				}
			},
		},
	)

	return cmd, opts
}

func main() {
	rootCmd, _ := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
