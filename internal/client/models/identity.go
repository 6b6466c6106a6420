package models

import "strings"

type IdentityStatus string

const (
	IdentityRequired IdentityStatus = "required"
	IdentityStarted  IdentityStatus = "started"
	IdentityPending  IdentityStatus = "pending"
	IdentityVerified IdentityStatus = "verified"
	IdentityFailed   IdentityStatus = "failed"
)

// NormalizeIdentityStatus maps the backend status onto the five states the
// client renders. Anything unrecognised is treated as IdentityRequired.
func NormalizeIdentityStatus(s string) IdentityStatus {
	switch v := IdentityStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case IdentityStarted, IdentityPending, IdentityVerified, IdentityFailed:
		return v
	default:
		return IdentityRequired
	}
}

type Identity struct {
	Status     IdentityStatus `json:"status"`
	SessionURL string         `json:"sessionUrl,omitempty"`
}
