package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
	"github.com/dmitrijs2005/tabz/internal/netx"
)

// TokenSource is the part of a session the executor depends on.
type TokenSource interface {
	BaseURL() string
	WaitHydrated(ctx context.Context) error
	ResolveToken(ctx context.Context) (string, error)
}

type ExecutorOptions struct {
	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client
	// Timeout bounds a single request. Zero leaves it to the transport.
	Timeout time.Duration
	// DevUserID is sent as x-user-id when set. Development backends only.
	DevUserID string
	Logger    logging.Logger
}

// Executor performs authenticated JSON requests against the session's
// current base URL.
type Executor struct {
	tokens    TokenSource
	http      *http.Client
	devUserID string
	log       logging.Logger
}

func NewExecutor(tokens TokenSource, opts ExecutorOptions) *Executor {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Executor{
		tokens:    tokens,
		http:      hc,
		devUserID: strings.TrimSpace(opts.DevUserID),
		log:       log.With("component", "executor"),
	}
}

// Get issues an authenticated GET and returns the unwrapped payload.
func (e *Executor) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return e.send(ctx, http.MethodGet, path, nil, true)
}

// Post issues an authenticated POST with body encoded as JSON. A nil body
// is sent as {}.
func (e *Executor) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return e.send(ctx, http.MethodPost, path, jsonBody(body), true)
}

// Patch issues an authenticated PATCH with a JSON body.
func (e *Executor) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return e.send(ctx, http.MethodPatch, path, jsonBody(body), true)
}

// GetAnonymous issues a GET without an Authorization header.
func (e *Executor) GetAnonymous(ctx context.Context, path string) (json.RawMessage, error) {
	return e.send(ctx, http.MethodGet, path, nil, false)
}

// PostAnonymous issues a POST without an Authorization header. It still
// waits for hydration so the persisted base URL is in effect.
func (e *Executor) PostAnonymous(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return e.send(ctx, http.MethodPost, path, jsonBody(body), false)
}

// PostMultipart uploads a single file part named field.
func (e *Executor) PostMultipart(ctx context.Context, path, field string, up Upload) (json.RawMessage, error) {
	r, name, err := up.open()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", http.MethodPost, path, err)
	}
	defer r.Close()

	buf, contentType, err := netx.MultipartBody(field, name, up.ContentType, r)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", http.MethodPost, path, err)
	}
	return e.send(ctx, http.MethodPost, path, &payload{reader: buf, contentType: contentType}, true)
}

type payload struct {
	value       any
	reader      io.Reader
	contentType string
}

func jsonBody(v any) *payload {
	if v == nil {
		v = struct{}{}
	}
	return &payload{value: v, contentType: "application/json"}
}

func (p *payload) body() (io.Reader, error) {
	if p.reader != nil {
		return p.reader, nil
	}
	b, err := json.Marshal(p.value)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func (e *Executor) send(ctx context.Context, method, path string, p *payload, auth bool) (json.RawMessage, error) {
	if err := e.tokens.WaitHydrated(ctx); err != nil {
		return nil, err
	}

	var token string
	if auth {
		t, err := e.tokens.ResolveToken(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	var body io.Reader
	if p != nil {
		b, err := p.body()
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		body = b
	}

	url := strings.TrimRight(e.tokens.BaseURL(), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set(common.RequestIDHeader, requestID)
	if p != nil {
		req.Header.Set("Content-Type", p.contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	if e.devUserID != "" {
		req.Header.Set(common.DevUserIDHeader, e.devUserID)
	}

	e.log.Debug(ctx, "api request", "method", method, "url", url, "request_id", requestID)

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	parsed := parseBody(data)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{Method: method, Path: path, StatusCode: resp.StatusCode}
		if parsed != nil {
			herr.Body = parsed
		} else if text := strings.TrimSpace(string(data)); text != "" {
			herr.Body = text
		}
		e.log.Debug(ctx, "api error", "method", method, "url", url, "status", resp.StatusCode, "request_id", requestID)
		return nil, herr
	}

	return Unwrap(parsed), nil
}

// parseBody returns data as JSON, or nil when it is empty or not JSON.
func parseBody(data []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil
	}
	return json.RawMessage(trimmed)
}
