package dnac

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// VLAN is one VLAN configured on a device.
type VLAN struct {
	ID   int
	Name string
}

// vlanRecord mirrors the wire fields across controller releases. The
// VLAN ID arrives as vlanNumber, vlanId, or id depending on version,
// sometimes as a quoted numeric string. The name arrives as vlanName
// or name and may be absent.
type vlanRecord struct {
	VlanNumber flexInt `json:"vlanNumber"`
	VlanID     flexInt `json:"vlanId"`
	ID         flexInt `json:"id"`
	VlanName   string  `json:"vlanName"`
	Name       string  `json:"name"`
}

type vlanEnvelope struct {
	Response []vlanRecord `json:"response"`
}

// DeviceVLANs returns the VLANs configured on one device, plus a count
// of records skipped because no integer VLAN ID could be parsed from
// them. Skipped records are a data-quality signal, never an error.
func (c *Client) DeviceVLANs(ctx context.Context, token, deviceID string) ([]VLAN, int, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	path := devicesPath + "/" + url.PathEscape(deviceID) + "/vlan"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, &APIError{Op: "device-vlans", Device: deviceID, Reason: ReasonNetwork, Err: err}
	}
	req.Header.Set("X-Auth-Token", token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &APIError{Op: "device-vlans", Device: deviceID, Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, "device-vlans", deviceID); err != nil {
		return nil, 0, err
	}

	var envelope vlanEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, 0, &APIError{Op: "device-vlans", Device: deviceID, Reason: ReasonMalformed, Status: resp.StatusCode,
			Err: fmt.Errorf("decoding vlan list: %w", err)}
	}

	vlans := make([]VLAN, 0, len(envelope.Response))
	skipped := 0
	for _, rec := range envelope.Response {
		id, ok := rec.vlanID()
		if !ok {
			skipped++
			continue
		}
		vlans = append(vlans, VLAN{ID: id, Name: rec.vlanName()})
	}
	return vlans, skipped, nil
}

// vlanID picks the record's VLAN ID. The first field present on the
// wire wins; a present but unparsable value disqualifies the record
// rather than falling through to the next field.
func (r *vlanRecord) vlanID() (int, bool) {
	for _, f := range []flexInt{r.VlanNumber, r.VlanID, r.ID} {
		if f.present {
			return f.value, f.ok
		}
	}
	return 0, false
}

func (r *vlanRecord) vlanName() string {
	if r.VlanName != "" {
		return r.VlanName
	}
	return r.Name
}

// flexInt decodes a JSON value that may be a number or a quoted numeric
// string. Unparsable values leave ok false instead of failing the whole
// response.
type flexInt struct {
	value   int
	ok      bool
	present bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	f.present = true
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.value = n
	f.ok = true
	return nil
}
