package dnac

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// authResponse is the token endpoint's body. The field is capitalized
// on the wire.
type authResponse struct {
	Token string `json:"Token"`
}

// Authenticate exchanges username and password for a session token via
// HTTP Basic auth. The token authorizes all subsequent intent API calls
// and is never persisted.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath, nil)
	if err != nil {
		return "", &AuthError{Reason: ReasonNetwork, Err: err}
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &AuthError{Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &AuthError{Reason: ReasonUnauthorized, Status: resp.StatusCode,
			Err: fmt.Errorf("invalid credentials (status %d)", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", &AuthError{Reason: ReasonServer, Status: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &AuthError{Reason: ReasonMalformed, Status: resp.StatusCode,
			Err: fmt.Errorf("decoding token response: %w", err)}
	}
	if body.Token == "" {
		return "", &AuthError{Reason: ReasonMalformed, Status: resp.StatusCode,
			Err: fmt.Errorf("no token in response")}
	}
	return body.Token, nil
}
