package filex

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedURI = errors.New("unsupported file uri")

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// PathFromURI resolves a local file reference. Plain paths are returned as
// is; file:// URIs are converted to a path. Other schemes are rejected.
func PathFromURI(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedURI)
	}
	if !strings.Contains(uri, "://") {
		return uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURI, u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

// OpenURI opens the file a PathFromURI reference points to.
func OpenURI(uri string) (*os.File, error) {
	path, err := PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
