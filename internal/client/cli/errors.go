package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/claims"
	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/common"
)

// describeError turns a service error into a line for the terminal.
func describeError(err error) string {
	var (
		roleErr *claims.RoleMismatchError
		netErr  *client.NetworkError
		httpErr *client.HTTPError
	)

	switch {
	case errors.Is(err, client.ErrAuthMissing):
		return "not logged in (use 'login')"
	case errors.As(err, &roleErr):
		return fmt.Sprintf("this command needs a %s account", roleErr.Expected)
	case errors.Is(err, client.ErrUnauthorized):
		return "session rejected by the backend; log in again"
	case errors.As(err, &netErr):
		return "backend unreachable: " + netErr.Err.Error()
	case errors.As(err, &httpErr):
		return fmt.Sprintf("backend returned %d: %s", httpErr.StatusCode, bodyMessage(httpErr))
	case errors.Is(err, common.ErrorNotFound):
		return "nothing found"
	default:
		return err.Error()
	}
}

// bodyMessage picks the backend's error message out of an error body.
func bodyMessage(e *client.HTTPError) string {
	switch b := e.Body.(type) {
	case string:
		if s := strings.TrimSpace(b); s != "" {
			return s
		}
	case json.RawMessage:
		var v struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &v) == nil {
			if v.Error != "" {
				return v.Error
			}
			if v.Message != "" {
				return v.Message
			}
		}
		return string(b)
	}
	return http.StatusText(e.StatusCode)
}
