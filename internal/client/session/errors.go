package session

import "errors"

// ErrAuthMissing is returned when an authenticated request has no usable
// bearer token after hydration.
var ErrAuthMissing = errors.New("auth token missing: login required")
