package dnac

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/scoutnetworks/vlanscout/pkg/util"
)

// Device is one managed device from the controller's inventory.
type Device struct {
	ID           string
	Hostname     string
	ManagementIP string
	Type         string
}

type deviceRecord struct {
	ID           string `json:"id"`
	Hostname     string `json:"hostname"`
	ManagementIP string `json:"managementIpAddress"`
	Type         string `json:"type"`
}

type deviceEnvelope struct {
	Response []deviceRecord `json:"response"`
}

// ListDevices returns the controller's device inventory, in server
// order. Devices without an ID are dropped with a warning since no
// per-device query can be issued for them.
func (c *Client) ListDevices(ctx context.Context, token string) ([]Device, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+devicesPath, nil)
	if err != nil {
		return nil, &APIError{Op: "list-devices", Reason: ReasonNetwork, Err: err}
	}
	req.Header.Set("X-Auth-Token", token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: "list-devices", Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, "list-devices", ""); err != nil {
		return nil, err
	}

	var envelope deviceEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &APIError{Op: "list-devices", Reason: ReasonMalformed, Status: resp.StatusCode,
			Err: fmt.Errorf("decoding device list: %w", err)}
	}

	devices := make([]Device, 0, len(envelope.Response))
	for _, rec := range envelope.Response {
		if rec.ID == "" {
			util.WithDevice(orUnknown(rec.Hostname)).Warn("device has no id, skipping")
			continue
		}
		devices = append(devices, Device{
			ID:           rec.ID,
			Hostname:     orUnknown(rec.Hostname),
			ManagementIP: orUnknown(rec.ManagementIP),
			Type:         orUnknown(rec.Type),
		})
	}
	return devices, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
