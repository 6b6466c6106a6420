package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tabz/internal/client/session"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAuthMissing is session.ErrAuthMissing, re-exported for callers
	// that only import this package.
	ErrAuthMissing = session.ErrAuthMissing
)

// HTTPError is returned when the backend answers outside the 2xx range.
// Body holds the parsed JSON payload, or the raw text when the body was not
// JSON, or nil when it was empty.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       any
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	switch b := e.Body.(type) {
	case nil:
	case string:
		if b != "" {
			msg += ": " + b
		}
	case json.RawMessage:
		msg += ": " + string(b)
	default:
		msg += fmt.Sprintf(": %v", b)
	}
	return msg
}

// Is lets 401 and 403 responses match ErrUnauthorized.
func (e *HTTPError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// NetworkError is a transport failure: no response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets transport failures match ErrUnavailable.
func (e *NetworkError) Is(target error) bool {
	return target == ErrUnavailable
}
