package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate exchanges credentials for a bearer token. The endpoint answers
// with the bare token; JSON string bodies and {"access_token": ...} objects
// are unwrapped as well. A 401 here is a failed login, not an ended session,
// so the unauthorized interceptor is skipped.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	ctx = context.WithValue(ctx, skipUnauthorizedKey{}, true)

	raw, err := c.do(ctx, http.MethodPost, c.authEndpoint, nil, credentials{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	return tokenFromBody(raw), nil
}

func tokenFromBody(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{':
		var payload struct {
			AccessToken string `json:"access_token"`
			Token       string `json:"token"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if payload.AccessToken != "" {
				return payload.AccessToken
			}
			return payload.Token
		}
	}
	return string(trimmed)
}
