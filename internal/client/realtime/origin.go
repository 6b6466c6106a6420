package realtime

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/common"
)

// NormalizeOrigin reduces baseURL to scheme://host[:port], dropping any
// path. A missing scheme is inferred as https on web and http on native.
func NormalizeOrigin(baseURL string, platform common.Platform) (string, error) {
	raw := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if raw == "" {
		return "", common.ErrEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		scheme := "http://"
		if platform == common.PlatformWeb {
			scheme = "https://"
		}
		raw = scheme + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url %q has no host", baseURL)
	}
	return strings.ToLower(u.Scheme) + "://" + u.Host, nil
}

// socketURL turns an http(s) origin into the Engine.IO websocket endpoint.
func socketURL(origin string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/socket.io/"
	u.RawQuery = url.Values{"EIO": {"4"}, "transport": {"websocket"}}.Encode()
	return u.String(), nil
}
