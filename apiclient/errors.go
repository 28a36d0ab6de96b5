package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// APIError is a non-2xx answer from the CRM API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: ErrorMessage(body, http.StatusText(status))}
}

// ErrorMessage extracts the human readable message from an error body. The
// backend uses "message"; gateways and the identity provider use "error" and
// "error_description". Short plain-text bodies are used verbatim.
func ErrorMessage(body []byte, fallback string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}

	if trimmed[0] == '{' {
		var payload struct {
			Message          string `json:"message"`
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.ErrorDescription != "":
				return payload.ErrorDescription
			case payload.Error != "":
				return payload.Error
			}
		}
		return fallback
	}

	if text := string(trimmed); len(text) <= 200 && !strings.ContainsAny(text, "<>") {
		return text
	}
	return fallback
}

func decode(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(raw, out), "[apiclient.decode] response")
}
