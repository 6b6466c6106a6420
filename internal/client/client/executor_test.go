package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tabz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tabz/internal/client/session"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

// recorder captures every request a test server receives.
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req.Clone(context.Background()))
	r.bodies = append(r.bodies, body)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func (r *recorder) last() (*http.Request, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.requests)
	return r.requests[n-1], r.bodies[n-1]
}

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, rec
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func hydratedSession(t *testing.T, baseURL, token string) *session.Session {
	t.Helper()
	ctx := context.Background()
	s := session.New(metadata.NewMemoryRepository(), session.Options{DefaultBaseURL: baseURL})
	if token != "" {
		require.NoError(t, s.SetAuthToken(ctx, token))
	}
	require.NoError(t, s.Hydrate(ctx))
	return s
}

func TestExecutor_Get_SendsHeaders(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, `{"value":{"balanceCents":500}}`))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{DevUserID: "42"})

	raw, err := exec.Get(context.Background(), "/wallet/summary")
	require.NoError(t, err)
	assert.JSONEq(t, `{"balanceCents":500}`, string(raw))

	req, _ := rec.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/wallet/summary", req.URL.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", req.Header.Get("Pragma"))
	assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
	assert.Equal(t, "42", req.Header.Get("x-user-id"))
	assert.Empty(t, req.Header.Get("Content-Type"))
}

func TestExecutor_Post_EncodesJSON(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusCreated, `{"id":9}`))
	exec := NewExecutor(hydratedSession(t, ts.URL+"/", "tok"), ExecutorOptions{})

	raw, err := exec.Post(context.Background(), "/store-items/order", map[string]int{"itemId": 3, "quantity": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9}`, string(raw))

	req, body := rec.last()
	assert.Equal(t, "/store-items/order", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("x-user-id"))
	assert.JSONEq(t, `{"itemId":3,"quantity":2}`, string(body))
}

func TestExecutor_Post_NilBodyIsEmptyObject(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, ``))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	raw, err := exec.Post(context.Background(), "/wallet/cashouts/1/retry", nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, body := rec.last()
	assert.JSONEq(t, `{}`, string(body))
}

func TestExecutor_NonJSONSuccessIsNull(t *testing.T) {
	ts, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "OK")
	})
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	raw, err := exec.Get(context.Background(), "/anything")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestExecutor_Unauthorized_NotRetried(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusUnauthorized, `{"message":"Unauthorized"}`))
	exec := NewExecutor(hydratedSession(t, ts.URL, "expired"), ExecutorOptions{})

	_, err := exec.Get(context.Background(), "/wallet/summary")
	require.Error(t, err)

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusUnauthorized, herr.StatusCode)
	assert.Equal(t, http.MethodGet, herr.Method)
	assert.Equal(t, "/wallet/summary", herr.Path)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, string(herr.Body.(json.RawMessage)))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "GET /wallet/summary failed: 401")

	assert.Equal(t, 1, rec.count())
}

func TestExecutor_HTTPError_TextBody(t *testing.T) {
	ts, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	_, err := exec.Get(context.Background(), "/x")
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "boom", herr.Body)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "boom")
}

func TestExecutor_Forbidden_MatchesUnauthorized(t *testing.T) {
	ts, _ := newServer(t, jsonHandler(http.StatusForbidden, ``))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	_, err := exec.Get(context.Background(), "/x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Nil(t, herr.Body)
}

func TestExecutor_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	exec := NewExecutor(hydratedSession(t, url, "tok"), ExecutorOptions{})
	_, err := exec.Get(context.Background(), "/x")

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "/x", nerr.Path)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestExecutor_WebAuthMissingSendsNothing(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, `{}`))
	ctx := context.Background()

	s := session.New(metadata.NewMemoryRepository(), session.Options{DefaultBaseURL: ts.URL})
	exec := NewExecutor(s, ExecutorOptions{})

	errCh := make(chan error, 1)
	go func() {
		_, err := exec.Get(ctx, "/wallet/summary")
		errCh <- err
	}()

	select {
	case <-errCh:
		t.Fatal("request finished before hydration")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, s.Hydrate(ctx))

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrAuthMissing)
	case <-time.After(time.Second):
		t.Fatal("request never completed")
	}
	assert.Equal(t, 0, rec.count())
}

func TestExecutor_WaitHonoursContext(t *testing.T) {
	s := session.New(metadata.NewMemoryRepository(), session.Options{})
	exec := NewExecutor(s, ExecutorOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := exec.Get(ctx, "/x")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutor_PostAnonymous_NoAuthorization(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, `{"access_token":"abc"}`))
	exec := NewExecutor(hydratedSession(t, ts.URL, ""), ExecutorOptions{})

	raw, err := exec.PostAnonymous(context.Background(), "/auth/login", map[string]string{"email": "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"abc"}`, string(raw))

	req, _ := rec.last()
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestExecutor_DoesNotLogToken(t *testing.T) {
	ts, _ := newServer(t, jsonHandler(http.StatusOK, `{}`))
	var buf bytes.Buffer
	exec := NewExecutor(hydratedSession(t, ts.URL, "super-secret"), ExecutorOptions{Logger: logging.New(&buf, "debug")})

	_, err := exec.Get(context.Background(), "/auth/me")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/auth/me")
	assert.NotContains(t, buf.String(), "super-secret")
}

func multipartPart(t *testing.T, req *http.Request, body []byte) (*multipart.Part, string) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	part, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).NextPart()
	require.NoError(t, err)
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	return part, string(data)
}

func TestExecutor_PostMultipart_Reader(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, `{"ok":true}`))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	_, err := exec.PostMultipart(context.Background(), "/profiles/me/avatar", "file", Upload{
		Reader:      strings.NewReader("img"),
		Name:        "me.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	req, body := rec.last()
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	part, data := multipartPart(t, req, body)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "me.jpg", part.FileName())
	assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))
	assert.Equal(t, "img", data)
}

func TestExecutor_PostMultipart_URI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	ts, rec := newServer(t, jsonHandler(http.StatusOK, ``))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	_, err := exec.PostMultipart(context.Background(), "/profiles/me/cover", "file", Upload{URI: "file://" + filepath.ToSlash(path)})
	require.NoError(t, err)

	req, body := rec.last()
	part, data := multipartPart(t, req, body)
	assert.Equal(t, "cover.png", part.FileName())
	assert.Equal(t, "png", data)
}

func TestExecutor_PostMultipart_EmptyUpload(t *testing.T) {
	ts, rec := newServer(t, jsonHandler(http.StatusOK, ``))
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	_, err := exec.PostMultipart(context.Background(), "/profiles/me/cover", "file", Upload{})
	require.ErrorIs(t, err, ErrEmptyUpload)
	assert.Equal(t, 0, rec.count())
}

func TestExecutor_ConcurrentRequestsShareSession(t *testing.T) {
	var hits atomic.Int32
	ts, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `[]`)
	})
	exec := NewExecutor(hydratedSession(t, ts.URL, "tok"), ExecutorOptions{})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := exec.Get(context.Background(), "/store-items"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(8), hits.Load())
}
