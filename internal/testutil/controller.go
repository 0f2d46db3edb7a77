// Package testutil provides a fake Catalyst Center API server for
// package tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Controller is an in-process fake of the Catalyst Center endpoints
// vlanscout consumes. Configure its fields before Start; inventory and
// VLAN records are raw JSON objects so tests can shape wire-level edge
// cases freely.
type Controller struct {
	// Username and Password are accepted by the token endpoint.
	Username string
	Password string

	// Token is issued on successful authentication and required on
	// intent API calls.
	Token string

	// Devices is served by the inventory endpoint.
	Devices []map[string]any

	// VLANs maps device ID to the records served by the vlan endpoint.
	VLANs map[string][]map[string]any

	// Forced statuses. Zero means normal behavior.
	AuthStatus    int
	DevicesStatus int
	VLANStatus    map[string]int // keyed by device ID

	mu        sync.Mutex
	authCalls int
	vlanCalls []string
}

// NewController returns a controller preloaded with sandbox-style
// credentials and an empty inventory.
func NewController() *Controller {
	return &Controller{
		Username: "devnetuser",
		Password: "Cisco123!",
		Token:    "test-token-1",
		VLANs:    map[string][]map[string]any{},
	}
}

// Start serves the controller over plain HTTP and returns its base
// URL. The server shuts down with the test.
func (c *Controller) Start(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /dna/system/api/v1/auth/token", c.handleAuth)
	mux.HandleFunc("GET /dna/intent/api/v1/network-device", c.handleDevices)
	mux.HandleFunc("GET /dna/intent/api/v1/network-device/{id}/vlan", c.handleVLANs)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// AuthCalls reports how many times the token endpoint was hit.
func (c *Controller) AuthCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authCalls
}

// VLANCalls returns the device IDs queried for VLANs, in request order.
func (c *Controller) VLANCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.vlanCalls...)
}

func (c *Controller) handleAuth(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.authCalls++
	c.mu.Unlock()

	if c.AuthStatus != 0 {
		w.WriteHeader(c.AuthStatus)
		return
	}
	user, pass, ok := r.BasicAuth()
	if !ok || user != c.Username || pass != c.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"Token": c.Token})
}

func (c *Controller) handleDevices(w http.ResponseWriter, r *http.Request) {
	if !c.authorized(w, r) {
		return
	}
	if c.DevicesStatus != 0 {
		w.WriteHeader(c.DevicesStatus)
		return
	}
	writeJSON(w, map[string]any{"response": c.Devices})
}

func (c *Controller) handleVLANs(w http.ResponseWriter, r *http.Request) {
	if !c.authorized(w, r) {
		return
	}

	id := r.PathValue("id")
	c.mu.Lock()
	c.vlanCalls = append(c.vlanCalls, id)
	c.mu.Unlock()

	if status := c.VLANStatus[id]; status != 0 {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, map[string]any{"response": c.VLANs[id]})
}

func (c *Controller) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-Auth-Token") != c.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Device builds an inventory record.
func Device(id, hostname, ip, devType string) map[string]any {
	return map[string]any{
		"id":                  id,
		"hostname":            hostname,
		"managementIpAddress": ip,
		"type":                devType,
	}
}

// VLAN builds a VLAN record the way current controllers emit it.
func VLAN(id int, name string) map[string]any {
	return map[string]any{"vlanNumber": id, "vlanName": name}
}
