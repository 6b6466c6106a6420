package claims

import (
	"errors"
	"fmt"
)

var ErrRoleMismatch = errors.New("role mismatch")

// RoleMismatchError reports a failed role guard. Actual is empty when no
// token or no decodable claims were available.
type RoleMismatchError struct {
	Expected string
	Actual   string
}

func (e *RoleMismatchError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "none"
	}
	return fmt.Sprintf("role mismatch: expected %q, got %q", e.Expected, actual)
}

func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}

// RequireRole decodes token and checks that its role claim equals expected
// after normalization. It returns the decoded claims on success.
func RequireRole(token, expected string) (*Claims, error) {
	want := NormalizeRole(expected)
	c := Decode(token)
	if c == nil {
		return nil, &RoleMismatchError{Expected: want}
	}
	got := NormalizeRole(c.Role)
	if got != want {
		return c, &RoleMismatchError{Expected: want, Actual: got}
	}
	return c, nil
}
