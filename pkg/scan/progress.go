package scan

import (
	"fmt"
	"io"
	"os"

	"github.com/scoutnetworks/vlanscout/pkg/cli"
	"github.com/scoutnetworks/vlanscout/pkg/dnac"
)

// ProgressReporter receives lifecycle callbacks during a scan.
type ProgressReporter interface {
	ScanStart(devices []dnac.Device)
	DeviceDone(result DeviceVLANs, index, total int)
	ScanEnd(results []DeviceVLANs)
}

// ConsoleProgress is an append-only terminal progress reporter. It
// never uses ANSI cursor rewriting, so output is safe for pipes, CI,
// and scrollback buffers.
type ConsoleProgress struct {
	W io.Writer

	dotWidth int
}

// NewConsoleProgress creates a ConsoleProgress writing to stdout.
func NewConsoleProgress() *ConsoleProgress {
	return &ConsoleProgress{W: os.Stdout}
}

func (p *ConsoleProgress) ScanStart(devices []dnac.Device) {
	if len(devices) == 0 {
		return
	}

	// Compute max hostname length for dot padding
	maxName := 0
	for _, d := range devices {
		if len(d.Hostname) > maxName {
			maxName = len(d.Hostname)
		}
	}
	p.dotWidth = maxName + 6

	fmt.Fprintf(p.W, "Checking %d devices\n\n", len(devices))
}

func (p *ConsoleProgress) DeviceDone(result DeviceVLANs, index, total int) {
	tag := fmt.Sprintf("[%d/%d]", index+1, total)
	padded := cli.DotPad(result.Device.Hostname, p.dotWidth)

	switch {
	case result.Err != nil:
		fmt.Fprintf(p.W, "  %-7s %s %s\n", tag, padded, cli.Red("ERROR"))
		fmt.Fprintf(p.W, "          %s\n", cli.Dim(result.Err.Error()))
	case len(result.VLANs) == 0:
		fmt.Fprintf(p.W, "  %-7s %s %s\n", tag, padded, cli.Dim("no vlans"))
	default:
		fmt.Fprintf(p.W, "  %-7s %s %s  (%d vlans)\n", tag, padded, cli.Green("OK"), len(result.VLANs))
	}
}

func (p *ConsoleProgress) ScanEnd(results []DeviceVLANs) {
	errs := 0
	for _, r := range results {
		if r.Err != nil {
			errs++
		}
	}
	if errs > 0 {
		fmt.Fprintf(p.W, "\n%s\n", cli.Yellow(fmt.Sprintf("%d of %d devices could not be checked", errs, len(results))))
	}
}
