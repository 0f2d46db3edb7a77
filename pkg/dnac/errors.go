package dnac

import "fmt"

// Reason classifies why an API call failed, for error summaries.
type Reason string

const (
	ReasonUnauthorized Reason = "unauthorized"
	ReasonNetwork      Reason = "network"
	ReasonMalformed    Reason = "malformed-response"
	ReasonNotSupported Reason = "not-supported"
	ReasonServer       Reason = "server-error"
)

// AuthError represents a failed token request. Always fatal.
type AuthError struct {
	Reason Reason
	Status int // HTTP status, or 0 when the request never completed
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("dnac: auth: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError represents a failed intent API call.
type APIError struct {
	Op     string // "list-devices", "device-vlans"
	Device string // device ID for per-device calls, "" otherwise
	Reason Reason
	Status int // HTTP status, or 0 when the request never completed
	Err    error
}

func (e *APIError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("dnac: %s %s: %v", e.Op, e.Device, e.Err)
	}
	return fmt.Sprintf("dnac: %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
