package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed covers transport failures and unexpected statuses.
	ErrRequestFailed = errors.New("api: request failed")
	// ErrInvalidCredentials is a 401 from the login endpoint.
	ErrInvalidCredentials = errors.New("api: invalid credentials")
	// ErrSessionExpired is a 401 from any authenticated endpoint.
	ErrSessionExpired = errors.New("api: session expired")
	// ErrNotFound is a 404 for an id lookup.
	ErrNotFound = errors.New("api: not found")
)

// StatusError wraps ErrRequestFailed with the offending status and the
// backend's error message when one was decodable.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: http %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}
