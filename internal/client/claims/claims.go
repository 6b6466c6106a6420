// Package claims decodes the payload of a bearer token without verifying
// its signature.
//
// The result is advisory. It lets the client pick which screens or commands
// to offer (buyer, owner, staff) and nothing more: the backend re-checks
// every request it receives, and a forged or stale token decoded here grants
// nothing there.
package claims

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded, untrusted view of a token payload.
type Claims struct {
	Subject   string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Raw       map[string]any
}

// Expired reports whether the token carries an expiry at or before now.
// Tokens without an exp claim never expire from the client's point of view.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

var parser = jwt.NewParser()

// Decode returns the claims carried in the middle segment of token, or nil
// when that segment is missing or is not a base64url JSON object. A broken
// header or signature segment does not prevent decoding.
func Decode(token string) (c *Claims) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	defer func() {
		if recover() != nil {
			c = nil
		}
	}()

	mc := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, mc)
	// An unknown or missing alg header leaves the payload decoded; only the
	// signature check would need it.
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		mc = payloadOnly(token)
	}
	if len(mc) == 0 {
		return nil
	}

	c = &Claims{
		Subject: stringClaim(mc["sub"]),
		Email:   stringClaim(mc["email"]),
		Role:    stringClaim(mc["role"]),
		Raw:     map[string]any(mc),
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

func payloadOnly(token string) jwt.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil
	}
	raw, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}
	var mc jwt.MapClaims
	if err := json.Unmarshal(raw, &mc); err != nil {
		return nil
	}
	return mc
}

func stringClaim(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// NormalizeRole lower-cases and trims a role name.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
