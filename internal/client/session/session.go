// Package session holds the client's process-wide session state: the active
// backend origin, the bearer token, and the hydration gate that keeps
// requests from running before persisted state is loaded.
//
// A Session is built once at startup and handed to whatever issues requests.
// All methods are safe for concurrent use; writes are last-writer-wins.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tabz/internal/client/claims"
	"github.com/dmitrijs2005/tabz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

// Options configures a Session.
type Options struct {
	// DefaultBaseURL is the last-resort origin. Empty means common.DefaultBaseURL.
	DefaultBaseURL string
	// EnvBaseURL is the environment-supplied override, ranked above the
	// persisted value.
	EnvBaseURL string
	// FailOpenTimeout releases the gate if hydration has not finished in
	// time. Zero waits for hydration indefinitely; web builds must use zero.
	FailOpenTimeout time.Duration
	// AllowFallback enables FallbackToken when no real token exists. Only
	// honoured for local development on native builds.
	AllowFallback bool
	FallbackToken string
	Logger        logging.Logger
}

type Session struct {
	store metadata.Repository
	gate  *Gate
	opts  Options
	log   logging.Logger

	mu         sync.RWMutex
	baseURL    string
	overridden bool
	token      string
}

// New creates a Session over store and arms the fail-open timer when
// opts.FailOpenTimeout is positive.
func New(store metadata.Repository, opts Options) *Session {
	opts.DefaultBaseURL = strings.TrimSpace(opts.DefaultBaseURL)
	if opts.DefaultBaseURL == "" {
		opts.DefaultBaseURL = common.DefaultBaseURL
	}
	opts.EnvBaseURL = strings.TrimSpace(opts.EnvBaseURL)
	opts.FallbackToken = strings.TrimSpace(opts.FallbackToken)

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	s := &Session{
		store:   store,
		gate:    NewGate(),
		opts:    opts,
		log:     log.With("component", "session"),
		baseURL: opts.DefaultBaseURL,
	}
	s.gate.ArmTimeout(opts.FailOpenTimeout)
	return s
}

// Gate exposes the hydration barrier.
func (s *Session) Gate() *Gate {
	return s.gate
}

// BaseURL returns the active origin. It is never empty.
func (s *Session) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.baseURL == "" {
		return s.opts.DefaultBaseURL
	}
	return s.baseURL
}

// SetBaseURL makes url the active origin for this process and persists it
// best-effort. Blank input is ignored. A persistence failure is logged and
// otherwise swallowed: the in-memory value stays authoritative.
func (s *Session) SetBaseURL(ctx context.Context, url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		s.log.Debug(ctx, "ignoring empty base url")
		return
	}

	s.mu.Lock()
	s.baseURL = url
	s.overridden = true
	s.mu.Unlock()

	if err := s.store.Set(ctx, common.BaseURLKey, []byte(url)); err != nil {
		s.log.Warn(ctx, "persisting base url failed", logging.Err(err))
	}
}

// HydrateBaseURL resolves the origin from, in order, an explicit SetBaseURL
// in this process, the environment override, the persisted value and the
// default, and returns it. Calling it again is harmless.
func (s *Session) HydrateBaseURL(ctx context.Context) (string, error) {
	persisted, err := s.store.Get(ctx, common.BaseURLKey)
	if err != nil {
		s.log.Warn(ctx, "reading persisted base url failed", logging.Err(err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = s.resolveBaseURLLocked(string(persisted))
	return s.baseURL, err
}

func (s *Session) resolveBaseURLLocked(persisted string) string {
	if s.overridden && s.baseURL != "" {
		return s.baseURL
	}
	for _, candidate := range []string{s.opts.EnvBaseURL, strings.TrimSpace(persisted)} {
		if candidate != "" {
			return candidate
		}
	}
	return s.opts.DefaultBaseURL
}

// AuthToken returns the in-memory token and whether one is set.
func (s *Session) AuthToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetAuthToken trims token and makes it current; a blank token clears the
// session. The in-memory update always takes effect. The returned error only
// reports the persistence step.
func (s *Session) SetAuthToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.ClearAuthToken(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Set(ctx, common.TokenKey, []byte(token)); err != nil {
		s.log.Warn(ctx, "persisting auth token failed", logging.Err(err))
		return err
	}
	return nil
}

// ClearAuthToken forgets the token in memory and in the store.
func (s *Session) ClearAuthToken(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, common.TokenKey); err != nil {
		s.log.Warn(ctx, "clearing persisted auth token failed", logging.Err(err))
		return err
	}
	return nil
}

// Hydrate loads the persisted base URL and token, commits both at once, and
// releases the gate. The gate is released even when the store fails, in
// which case the session continues with whatever is already in memory.
func (s *Session) Hydrate(ctx context.Context) error {
	defer s.gate.Release(GateReleasedByHydration)

	persistedURL, urlErr := s.store.Get(ctx, common.BaseURLKey)
	persistedToken, tokenErr := s.store.Get(ctx, common.TokenKey)
	err := errors.Join(urlErr, tokenErr)
	if err != nil {
		s.log.Warn(ctx, "session hydration incomplete", logging.Err(err))
	}

	s.mu.Lock()
	s.baseURL = s.resolveBaseURLLocked(string(persistedURL))
	if s.token == "" && tokenErr == nil {
		s.token = strings.TrimSpace(string(persistedToken))
	}
	s.mu.Unlock()

	_, hasToken := s.AuthToken()
	s.log.Debug(ctx, "session hydrated", "base_url", s.BaseURL(), "has_token", hasToken)
	return err
}

// WaitHydrated blocks until the gate is released or ctx is done.
func (s *Session) WaitHydrated(ctx context.Context) error {
	return s.gate.Wait(ctx)
}

// ResolveToken waits for hydration and returns the bearer token to send.
// Without a token it returns the development fallback when that is enabled,
// and ErrAuthMissing otherwise.
func (s *Session) ResolveToken(ctx context.Context) (string, error) {
	if err := s.WaitHydrated(ctx); err != nil {
		return "", err
	}
	if token, ok := s.AuthToken(); ok {
		return token, nil
	}
	if s.opts.AllowFallback && s.opts.FallbackToken != "" {
		s.log.Warn(ctx, "no session token; using development fallback credential")
		return s.opts.FallbackToken, nil
	}
	return "", ErrAuthMissing
}

// Claims decodes the current token. The result is advisory only.
func (s *Session) Claims() *claims.Claims {
	token, _ := s.AuthToken()
	return claims.Decode(token)
}

// RequireRole checks the current token's role claim for UI gating.
func (s *Session) RequireRole(expected string) (*claims.Claims, error) {
	token, _ := s.AuthToken()
	return claims.RequireRole(token, expected)
}
