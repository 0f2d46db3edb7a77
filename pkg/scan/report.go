package scan

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/scoutnetworks/vlanscout/pkg/dnac"
	"github.com/scoutnetworks/vlanscout/pkg/util"
)

// Render writes the human-readable report: banner, per-device matches,
// then a summary block. The summary always states how many devices
// could not be checked so the reader can judge completeness.
func (r *RangeResult) Render(w io.Writer) {
	banner := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintf(w, "VLAN RANGE CHECK RESULTS (%d-%d)\n", r.Start, r.End)
	fmt.Fprintf(w, "%s\n", banner)

	switch {
	case r.EmptyRange():
		fmt.Fprintf(w, "\nRange %d-%d selects no VLAN IDs; nothing to check.\n\n", r.Start, r.End)
	case len(r.PerDevice) == 0:
		fmt.Fprintf(w, "\nNo VLANs in the range %d-%d found on any monitored devices.\n", r.Start, r.End)
		fmt.Fprintf(w, "All VLANs in this range are available for use!\n\n")
	default:
		fmt.Fprintf(w, "\nFound VLANs in range %d-%d on the following devices:\n\n", r.Start, r.End)
		for _, dm := range r.PerDevice {
			fmt.Fprintf(w, "%s (%s)\n", dm.Device.Hostname, dm.Device.ManagementIP)
			for _, v := range dm.VLANs {
				if v.Name != "" {
					fmt.Fprintf(w, "   • VLAN %d: %s\n", v.ID, v.Name)
				} else {
					fmt.Fprintf(w, "   • VLAN %d\n", v.ID)
				}
			}
			fmt.Fprintf(w, "   Count: %d VLANs\n\n", len(dm.VLANs))
		}
	}

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "   • Devices checked: %d\n", r.DevicesChecked)
	if len(r.PerDevice) > 0 {
		fmt.Fprintf(w, "   • Devices with VLANs in range: %d\n", len(r.PerDevice))
		fmt.Fprintf(w, "   • Total VLANs found in range: %d\n", r.TotalMatches)
		fmt.Fprintf(w, "   • VLAN IDs in use: %s\n", idList(r.MatchedIDs))
	}
	if !r.EmptyRange() {
		fmt.Fprintf(w, "   • Available VLANs in range: %d\n", len(r.AvailableIDs))
		if len(r.AvailableIDs) > 0 {
			fmt.Fprintf(w, "   • Available VLAN IDs: %s\n", idList(r.AvailableIDs))
		}
	}
	if r.DeviceErrors > 0 {
		fmt.Fprintf(w, "   • Devices that could not be checked: %d (%s)\n", r.DeviceErrors, r.errorBreakdown())
	}
	if r.SkippedRecords > 0 {
		fmt.Fprintf(w, "   • VLAN records skipped for unparsable IDs: %d\n", r.SkippedRecords)
	}
}

// idList renders VLAN IDs in compact range notation with spaced commas.
func idList(ids []int) string {
	return strings.ReplaceAll(util.CompactRange(ids), ",", ", ")
}

// errorBreakdown formats the per-reason error counts in a stable order.
func (r *RangeResult) errorBreakdown() string {
	reasons := make([]string, 0, len(r.ErrorsByReason))
	for reason := range r.ErrorsByReason {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, fmt.Sprintf("%s: %d", reason, r.ErrorsByReason[dnac.Reason(reason)]))
	}
	return strings.Join(parts, ", ")
}
