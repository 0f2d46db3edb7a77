package scan

import (
	"errors"
	"sort"

	"github.com/scoutnetworks/vlanscout/pkg/dnac"
)

// DeviceMatches pairs a device with its VLANs inside the scan range,
// in the order the device reported them.
type DeviceMatches struct {
	Device dnac.Device
	VLANs  []dnac.VLAN
}

// RangeResult is the aggregated outcome of one scan.
type RangeResult struct {
	Start int
	End   int

	// PerDevice lists only devices with at least one match, in scan
	// order. Every VLAN in it satisfies Start <= ID <= End.
	PerDevice []DeviceMatches

	// MatchedIDs is the sorted set union of matched VLAN IDs across
	// all devices.
	MatchedIDs []int

	// AvailableIDs is the sorted remainder of [Start, End] once
	// MatchedIDs are removed. Empty when Start > End.
	AvailableIDs []int

	// DevicesChecked counts every device the scan attempted,
	// including ones that errored.
	DevicesChecked int

	TotalMatches int

	// DeviceErrors counts devices whose VLAN fetch failed, broken
	// down by reason in ErrorsByReason.
	DeviceErrors   int
	ErrorsByReason map[dnac.Reason]int

	// SkippedRecords counts VLAN entries dropped for unparsable IDs.
	SkippedRecords int
}

// EmptyRange reports whether the requested bounds select no IDs.
func (r *RangeResult) EmptyRange() bool {
	return r.Start > r.End
}

// Aggregate filters raw scan results to the inclusive range
// [start, end] and computes the summary sets. A start above end is an
// empty range: nothing matches and nothing is available.
func Aggregate(results []DeviceVLANs, start, end int) *RangeResult {
	res := &RangeResult{
		Start:          start,
		End:            end,
		PerDevice:      []DeviceMatches{},
		MatchedIDs:     []int{},
		AvailableIDs:   []int{},
		ErrorsByReason: map[dnac.Reason]int{},
	}

	matched := make(map[int]bool)
	for _, r := range results {
		res.DevicesChecked++
		res.SkippedRecords += r.Skipped

		if r.Err != nil {
			res.DeviceErrors++
			res.ErrorsByReason[errReason(r.Err)]++
			continue
		}

		var hits []dnac.VLAN
		for _, v := range r.VLANs {
			if v.ID >= start && v.ID <= end {
				hits = append(hits, v)
				matched[v.ID] = true
			}
		}
		if len(hits) > 0 {
			res.PerDevice = append(res.PerDevice, DeviceMatches{Device: r.Device, VLANs: hits})
			res.TotalMatches += len(hits)
		}
	}

	for id := range matched {
		res.MatchedIDs = append(res.MatchedIDs, id)
	}
	sort.Ints(res.MatchedIDs)

	for id := start; id <= end; id++ {
		if !matched[id] {
			res.AvailableIDs = append(res.AvailableIDs, id)
		}
	}

	return res
}

// errReason classifies a per-device error for the summary breakdown.
// Untyped errors are transport failures in practice.
func errReason(err error) dnac.Reason {
	var apiErr *dnac.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return dnac.ReasonNetwork
}
