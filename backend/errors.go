package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable covers transport failures, timeouts, and non-200 responses.
// Callers treat it identically to a backend-reported failure.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a failure the backend reported itself (status != 1). Message,
// when set, is the backend's user-facing explanation.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s failed", e.Op)
	}
	return fmt.Sprintf("backend %s failed: %s", e.Op, e.Message)
}

// UserMessage extracts the backend-supplied failure message from err, if
// any, so handlers can surface it verbatim.
func UserMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
