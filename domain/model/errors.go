package model

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotFound signals resolution of an unknown or revoked guest
	// token. A valid outcome, distinct from a transport failure.
	ErrTokenNotFound = errors.New("guest token not found")

	// ErrMissingToken signals a request with no token in the path.
	ErrMissingToken = errors.New("missing token")

	// ErrTenantNotFound signals that no install record exists for a client key.
	ErrTenantNotFound = errors.New("tenant not found")
)

// StoreError wraps a failed settings-store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("settings store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// RemoteAPIError wraps a non-2xx response or transport failure from the chat
// platform's REST API.
type RemoteAPIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat api: %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("chat api: %s: %v", e.Op, e.Err)
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }
