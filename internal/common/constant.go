// Package common contains shared constants and sentinel errors used across
// TABZ client components.
package common

import (
	"strings"
	"time"
)

// DefaultBaseURL is the compiled-in backend origin used when neither an
// override, the environment nor the persisted store provides one.
const DefaultBaseURL = "http://127.0.0.1:3000"

// Keys of the persisted session state.
const (
	TokenKey   = "TABZ_AUTH_TOKEN"
	BaseURLKey = "TABZ_API_BASE_URL"
)

// Outbound HTTP header names.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-Id"
	DevUserIDHeader     = "x-user-id"
)

// DefaultHydrationTimeout is how long native builds wait for persisted state
// before the hydration gate fails open.
const DefaultHydrationTimeout = 3 * time.Second

// Platform selects the storage and hydration rules of a build.
type Platform string

const (
	// PlatformWeb keeps state in memory only and never fails open.
	PlatformWeb Platform = "web"
	// PlatformNative persists state to disk and fails open after a timeout.
	PlatformNative Platform = "native"
)

// ParsePlatform returns the platform named by s, or false if s names none.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformWeb:
		return PlatformWeb, true
	case PlatformNative:
		return PlatformNative, true
	default:
		return "", false
	}
}
