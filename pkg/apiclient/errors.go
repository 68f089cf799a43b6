package apiclient

import (
	"errors"
	"fmt"
)

// ErrAuthorizationExpired is returned after the backend rejected the
// bearer credential. By the time a caller sees it the session has already
// been invalidated; it is not meant for inline display.
var ErrAuthorizationExpired = errors.New("apiclient: authorization expired")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("apiclient: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("apiclient: %s %s: status %d", e.Method, e.Path, e.Status)
}
