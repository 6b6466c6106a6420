package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/claims"
	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

// TokenStore is the session surface the services need.
type TokenStore interface {
	SetAuthToken(ctx context.Context, token string) error
	ClearAuthToken(ctx context.Context) error
	Claims() *claims.Claims
	RequireRole(expected string) (*claims.Claims, error)
}

// AuthService defines authentication operations.
//
// Contract:
//   - Login: exchange credentials for a token and make it current.
//   - Logout: forget the token in memory and on disk.
//   - WhoAmI: ask the backend who the token belongs to.
//   - RequireRole: advisory role check on the current token.
//   - Ping: check backend reachability.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*claims.Claims, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*models.Me, error)
	RequireRole(role string) (*claims.Claims, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	tokens TokenStore
	log    logging.Logger
}

func NewAuthService(c client.Client, tokens TokenStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, tokens: tokens, log: log.With("service", "auth")}
}

// Login authenticates and stores the returned token. A failure to persist
// the token is logged; the session still uses it for this run.
func (a *authService) Login(ctx context.Context, email, password string) (*claims.Claims, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.tokens.SetAuthToken(ctx, token); err != nil {
		a.log.Warn(ctx, "token not persisted; session will not survive restart", logging.Err(err))
	}

	c := a.tokens.Claims()
	if c != nil {
		a.log.Info(ctx, "logged in", "subject", c.Subject, "role", c.Role)
	}
	return c, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.tokens.ClearAuthToken(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) (*models.Me, error) {
	return a.client.Me(ctx)
}

func (a *authService) RequireRole(role string) (*claims.Claims, error) {
	return a.tokens.RequireRole(role)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
