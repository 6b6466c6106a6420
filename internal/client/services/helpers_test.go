package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tabz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tabz/internal/client/session"
)

func mintToken(t *testing.T, sub, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "role": role, "email": sub + "@tabz.app"})
	s, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

func newSession(t *testing.T, token string) (*session.Session, *metadata.MemoryRepository) {
	t.Helper()
	repo := metadata.NewMemoryRepository()
	s := session.New(repo, session.Options{})
	if token != "" {
		require.NoError(t, s.SetAuthToken(context.Background(), token))
	}
	require.NoError(t, s.Hydrate(context.Background()))
	return s, repo
}
