package scan

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/scoutnetworks/vlanscout/pkg/dnac"
)

var (
	sw1 = dnac.Device{ID: "dev-1", Hostname: "sw1.demo.local", ManagementIP: "10.10.20.175", Type: "Cisco Catalyst 9300 Switch"}
	sw2 = dnac.Device{ID: "dev-2", Hostname: "sw2.demo.local", ManagementIP: "10.10.20.176", Type: "Cisco Catalyst 9300 Switch"}
	sw3 = dnac.Device{ID: "dev-3", Hostname: "sw3.demo.local", ManagementIP: "10.10.20.177", Type: "Cisco Catalyst 9300 Switch"}
)

func TestAggregate(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{
			{ID: 1, Name: "default"},
			{ID: 602, Name: "GUEST_NET"},
			{ID: 610, Name: "IOT_SENSORS"},
		}},
		{Device: sw2, VLANs: []dnac.VLAN{
			{ID: 599, Name: "below"},
			{ID: 602, Name: "GUEST_NET"},
			{ID: 699, Name: "LAB_EDGE"},
			{ID: 700, Name: "above"},
		}},
	}

	res := Aggregate(results, 600, 699)

	if res.DevicesChecked != 2 {
		t.Errorf("DevicesChecked = %d, want 2", res.DevicesChecked)
	}
	if res.TotalMatches != 4 {
		t.Errorf("TotalMatches = %d, want 4", res.TotalMatches)
	}

	wantPerDevice := []DeviceMatches{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 602, Name: "GUEST_NET"}, {ID: 610, Name: "IOT_SENSORS"}}},
		{Device: sw2, VLANs: []dnac.VLAN{{ID: 602, Name: "GUEST_NET"}, {ID: 699, Name: "LAB_EDGE"}}},
	}
	if !reflect.DeepEqual(res.PerDevice, wantPerDevice) {
		t.Errorf("PerDevice = %+v, want %+v", res.PerDevice, wantPerDevice)
	}

	wantMatched := []int{602, 610, 699}
	if !reflect.DeepEqual(res.MatchedIDs, wantMatched) {
		t.Errorf("MatchedIDs = %v, want %v", res.MatchedIDs, wantMatched)
	}

	if len(res.AvailableIDs) != 97 {
		t.Errorf("len(AvailableIDs) = %d, want 97", len(res.AvailableIDs))
	}
	if res.DeviceErrors != 0 {
		t.Errorf("DeviceErrors = %d, want 0", res.DeviceErrors)
	}
}

func TestAggregateBoundariesInclusive(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 599}, {ID: 600}, {ID: 699}, {ID: 700}}},
	}

	res := Aggregate(results, 600, 699)

	want := []int{600, 699}
	if !reflect.DeepEqual(res.MatchedIDs, want) {
		t.Errorf("MatchedIDs = %v, want %v", res.MatchedIDs, want)
	}
}

// Matched and available IDs must partition the requested range: no
// overlap, no gaps.
func TestAggregatePartition(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 602}, {ID: 603}, {ID: 604}, {ID: 610}}},
		{Device: sw2, VLANs: []dnac.VLAN{{ID: 603}, {ID: 698}, {ID: 699}}},
	}

	res := Aggregate(results, 600, 699)

	seen := make(map[int]int)
	for _, id := range res.MatchedIDs {
		seen[id]++
	}
	for _, id := range res.AvailableIDs {
		seen[id]++
	}

	for id := 600; id <= 699; id++ {
		if seen[id] != 1 {
			t.Errorf("VLAN %d appears %d times across matched+available, want exactly 1", id, seen[id])
		}
	}
	if len(seen) != 100 {
		t.Errorf("partition covers %d IDs, want 100", len(seen))
	}
}

func TestAggregateNoDevices(t *testing.T) {
	res := Aggregate(nil, 600, 699)

	if res.DevicesChecked != 0 {
		t.Errorf("DevicesChecked = %d, want 0", res.DevicesChecked)
	}
	if len(res.PerDevice) != 0 {
		t.Errorf("PerDevice = %+v, want empty", res.PerDevice)
	}
	if len(res.MatchedIDs) != 0 {
		t.Errorf("MatchedIDs = %v, want empty", res.MatchedIDs)
	}
	if len(res.AvailableIDs) != 100 {
		t.Errorf("len(AvailableIDs) = %d, want full range of 100", len(res.AvailableIDs))
	}
}

func TestAggregateEmptyRange(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 602}, {ID: 650}}},
	}

	res := Aggregate(results, 699, 600)

	if !res.EmptyRange() {
		t.Error("EmptyRange() = false, want true")
	}
	if len(res.MatchedIDs) != 0 {
		t.Errorf("MatchedIDs = %v, want empty", res.MatchedIDs)
	}
	if len(res.AvailableIDs) != 0 {
		t.Errorf("AvailableIDs = %v, want empty", res.AvailableIDs)
	}
	if res.DevicesChecked != 1 {
		t.Errorf("DevicesChecked = %d, want 1", res.DevicesChecked)
	}
}

func TestAggregateErrorIsolation(t *testing.T) {
	fetchErr := &dnac.APIError{Op: "device-vlans", Device: "dev-2", Reason: dnac.ReasonServer,
		Err: fmt.Errorf("unexpected status 500")}
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 602, Name: "GUEST_NET"}}},
		{Device: sw2, Err: fetchErr},
		{Device: sw3, VLANs: []dnac.VLAN{{ID: 699, Name: "LAB_EDGE"}}},
	}

	res := Aggregate(results, 600, 699)

	if res.DevicesChecked != 3 {
		t.Errorf("DevicesChecked = %d, want 3", res.DevicesChecked)
	}
	if res.DeviceErrors != 1 {
		t.Errorf("DeviceErrors = %d, want 1", res.DeviceErrors)
	}
	if got := res.ErrorsByReason[dnac.ReasonServer]; got != 1 {
		t.Errorf("ErrorsByReason[server-error] = %d, want 1", got)
	}
	if len(res.PerDevice) != 2 {
		t.Fatalf("len(PerDevice) = %d, want 2", len(res.PerDevice))
	}
	if res.PerDevice[0].Device.ID != "dev-1" || res.PerDevice[1].Device.ID != "dev-3" {
		t.Errorf("PerDevice devices = %s, %s", res.PerDevice[0].Device.ID, res.PerDevice[1].Device.ID)
	}

	want := []int{602, 699}
	if !reflect.DeepEqual(res.MatchedIDs, want) {
		t.Errorf("MatchedIDs = %v, want %v", res.MatchedIDs, want)
	}
}

func TestAggregateUntypedError(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, Err: errors.New("connection reset")},
	}

	res := Aggregate(results, 600, 699)

	if got := res.ErrorsByReason[dnac.ReasonNetwork]; got != 1 {
		t.Errorf("ErrorsByReason[network] = %d, want 1", got)
	}
}

func TestAggregateSkippedRecords(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 602}}, Skipped: 2},
		{Device: sw2, Skipped: 1},
	}

	res := Aggregate(results, 600, 699)

	if res.SkippedRecords != 3 {
		t.Errorf("SkippedRecords = %d, want 3", res.SkippedRecords)
	}
}

func TestAggregateDeviceWithoutMatchesOmitted(t *testing.T) {
	results := []DeviceVLANs{
		{Device: sw1, VLANs: []dnac.VLAN{{ID: 1}, {ID: 100}}},
		{Device: sw2, VLANs: []dnac.VLAN{{ID: 650}}},
	}

	res := Aggregate(results, 600, 699)

	if len(res.PerDevice) != 1 {
		t.Fatalf("len(PerDevice) = %d, want 1", len(res.PerDevice))
	}
	if res.PerDevice[0].Device.ID != "dev-2" {
		t.Errorf("PerDevice[0] = %s, want dev-2", res.PerDevice[0].Device.ID)
	}
	if res.DevicesChecked != 2 {
		t.Errorf("DevicesChecked = %d, want 2", res.DevicesChecked)
	}
}
