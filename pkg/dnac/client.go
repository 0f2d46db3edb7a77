// Package dnac is a minimal read-only client for the Cisco Catalyst
// Center (formerly DNA Center) northbound REST API. It covers the three
// calls vlanscout needs: token issuance, device inventory, and
// per-device VLAN listings. No retries; every call is a single attempt
// bounded by the configured timeout.
package dnac

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each API call when Config.Timeout is unset.
	DefaultTimeout = 30 * time.Second

	authPath    = "/dna/system/api/v1/auth/token"
	devicesPath = "/dna/intent/api/v1/network-device"
)

// Config holds configuration for a Catalyst Center client.
type Config struct {
	// Host is the controller hostname, with an optional scheme.
	// Bare hostnames get https://.
	Host string

	// Insecure disables TLS certificate verification. Sandbox
	// controllers ship self-signed certificates.
	Insecure bool

	// Timeout bounds each API call (defaults to DefaultTimeout).
	Timeout time.Duration

	// HTTPClient overrides the HTTP client (optional).
	HTTPClient *http.Client
}

// Client calls the Catalyst Center API. Methods are stateless and safe
// for concurrent use; the caller holds the token between calls.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("dnac: host is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.Insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		httpClient = &http.Client{Transport: transport}
	}

	baseURL := cfg.Host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		timeout: cfg.Timeout,
	}, nil
}

// callCtx derives the per-call timeout context.
func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// checkStatus maps a non-2xx status to a typed error. A 404 on a
// per-device call means the device does not expose that resource.
func checkStatus(status int, op, device string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &APIError{Op: op, Device: device, Reason: ReasonUnauthorized, Status: status,
			Err: fmt.Errorf("token rejected (status %d)", status)}
	case status == http.StatusNotFound && device != "":
		return &APIError{Op: op, Device: device, Reason: ReasonNotSupported, Status: status,
			Err: fmt.Errorf("resource not available (status %d)", status)}
	default:
		return &APIError{Op: op, Device: device, Reason: ReasonServer, Status: status,
			Err: fmt.Errorf("unexpected status %d", status)}
	}
}
