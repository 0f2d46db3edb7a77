// Package scan drives per-device VLAN collection, range filtering, and
// report rendering for a device inventory.
package scan

import (
	"context"
	"sync"

	"github.com/scoutnetworks/vlanscout/pkg/dnac"
	"github.com/scoutnetworks/vlanscout/pkg/util"
)

// VLANFetcher retrieves one device's VLAN table. *dnac.Client
// implements it.
type VLANFetcher interface {
	DeviceVLANs(ctx context.Context, token, deviceID string) ([]dnac.VLAN, int, error)
}

// DeviceVLANs is one device's raw fetch outcome. Err is set on a
// per-device failure; the device then contributes zero VLANs.
type DeviceVLANs struct {
	Device  dnac.Device
	VLANs   []dnac.VLAN
	Skipped int // records dropped for unparsable VLAN IDs
	Err     error
}

// Scanner fetches VLAN tables for a device inventory. Per-device
// failures are recorded in the results, never returned as an error;
// the scan always covers the whole inventory.
type Scanner struct {
	Fetcher VLANFetcher
	Token   string

	// Workers is the number of concurrent fetches. Zero or one
	// fetches sequentially.
	Workers int

	// Progress receives lifecycle callbacks (optional). DeviceDone
	// arrives in device order regardless of worker count.
	Progress ProgressReporter
}

// Scan fetches every device's VLAN table and returns results in
// device order.
func (s *Scanner) Scan(ctx context.Context, devices []dnac.Device) []DeviceVLANs {
	if s.Progress != nil {
		s.Progress.ScanStart(devices)
	}

	results := make([]DeviceVLANs, len(devices))
	if s.Workers <= 1 {
		for i, dev := range devices {
			results[i] = s.fetchOne(ctx, dev)
			if s.Progress != nil {
				s.Progress.DeviceDone(results[i], i, len(devices))
			}
		}
	} else {
		s.scanParallel(ctx, devices, results)
	}

	if s.Progress != nil {
		s.Progress.ScanEnd(results)
	}
	return results
}

func (s *Scanner) scanParallel(ctx context.Context, devices []dnac.Device, results []DeviceVLANs) {
	sem := make(chan struct{}, s.Workers)
	var wg sync.WaitGroup

	// done and next deliver DeviceDone callbacks in device order even
	// though fetches complete out of order.
	var mu sync.Mutex
	done := make([]bool, len(devices))
	next := 0

	for i, dev := range devices {
		wg.Add(1)
		go func(i int, dev dnac.Device) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.fetchOne(ctx, dev)

			if s.Progress == nil {
				return
			}
			mu.Lock()
			done[i] = true
			for next < len(devices) && done[next] {
				s.Progress.DeviceDone(results[next], next, len(devices))
				next++
			}
			mu.Unlock()
		}(i, dev)
	}
	wg.Wait()
}

func (s *Scanner) fetchOne(ctx context.Context, dev dnac.Device) DeviceVLANs {
	vlans, skipped, err := s.Fetcher.DeviceVLANs(ctx, s.Token, dev.ID)
	if err != nil {
		util.WithDevice(dev.Hostname).Warnf("vlan fetch failed: %v", err)
		return DeviceVLANs{Device: dev, Err: err}
	}
	if skipped > 0 {
		util.WithDevice(dev.Hostname).Warnf("%d vlan records had unparsable ids", skipped)
	}
	return DeviceVLANs{Device: dev, VLANs: vlans, Skipped: skipped}
}
