package client

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/filex"
)

var ErrEmptyUpload = errors.New("upload has neither reader nor uri")

// Upload describes a file to send as a multipart part. Either Reader is set
// (in-memory content) or URI names a local file such as file:///path/a.png.
type Upload struct {
	Reader      io.Reader
	URI         string
	Name        string
	ContentType string
}

func (u Upload) open() (io.ReadCloser, string, error) {
	name := strings.TrimSpace(u.Name)

	if u.Reader != nil {
		if name == "" {
			name = "upload"
		}
		return io.NopCloser(u.Reader), name, nil
	}

	if strings.TrimSpace(u.URI) == "" {
		return nil, "", ErrEmptyUpload
	}
	f, err := filex.OpenURI(u.URI)
	if err != nil {
		return nil, "", err
	}
	if name == "" {
		name = filepath.Base(f.Name())
	}
	return f, name, nil
}
