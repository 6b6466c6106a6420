// Package models holds the wire types exchanged with the TABZ backend.
//
// Field names follow the backend's JSON. Numeric identifiers are int64;
// money is always integer cents.
package models

import "strings"

// Roles the backend issues in the token's role claim.
const (
	RoleBuyer = "buyer"
	RoleOwner = "owner"
	RoleStaff = "staff"
	RoleVenue = "venue"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse accepts the token under any of the field names the backend
// has used over time.
type LoginResponse struct {
	AccessToken      string `json:"access_token,omitempty"`
	AccessTokenCamel string `json:"accessToken,omitempty"`
	Token            string `json:"token,omitempty"`
}

// BearerToken returns the first non-blank token field.
func (r LoginResponse) BearerToken() string {
	for _, t := range []string{r.AccessToken, r.AccessTokenCamel, r.Token} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// Me is the caller identity reported by /auth/me.
type Me struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
