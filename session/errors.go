package session

import (
	"github.com/jrsteele09/go-crm-workspace/apiclient"
	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
)

// AuthError is the single normalized error returned by a failed login. Message
// is suitable for showing next to the login form.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// newAuthError prefers the server supplied message over the raw error text.
func newAuthError(err error) *AuthError {
	var apiErr *apiclient.APIError
	if crmerrors.As(err, &apiErr) && apiErr.Message != "" {
		return &AuthError{Message: apiErr.Message, Err: err}
	}
	return &AuthError{Message: err.Error(), Err: err}
}
