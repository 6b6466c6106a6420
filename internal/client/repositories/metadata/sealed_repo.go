package metadata

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/cryptox"
)

// SaltKey holds the per-store argon2 salt in the wrapped repository.
const SaltKey = "__salt"

var ErrReservedKey = errors.New("reserved metadata key")

// SealedRepository encrypts values before handing them to the wrapped
// repository. Keys are stored in clear; each value is bound to its key.
type SealedRepository struct {
	inner  Repository
	secret []byte

	mu  sync.Mutex
	key []byte
}

func NewSealedRepository(inner Repository, secret []byte) *SealedRepository {
	return &SealedRepository{inner: inner, secret: append([]byte(nil), secret...)}
}

func (r *SealedRepository) storeKey(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.key != nil {
		return r.key, nil
	}

	salt, err := r.inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := r.inner.Set(ctx, SaltKey, salt); err != nil {
			return nil, err
		}
	}

	r.key = cryptox.DeriveStoreKey(r.secret, salt)
	return r.key, nil
}

func (r *SealedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == SaltKey {
		return nil, ErrReservedKey
	}
	raw, err := r.inner.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}
	k, err := r.storeKey(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := cryptox.Open(raw, k, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata[%s]: %w", key, err)
	}
	return plain, nil
}

func (r *SealedRepository) Set(ctx context.Context, key string, value []byte) error {
	if key == SaltKey {
		return ErrReservedKey
	}
	k, err := r.storeKey(ctx)
	if err != nil {
		return err
	}
	sealed, err := cryptox.Seal(value, k, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to seal metadata[%s]: %w", key, err)
	}
	return r.inner.Set(ctx, key, sealed)
}

func (r *SealedRepository) Delete(ctx context.Context, key string) error {
	if key == SaltKey {
		return ErrReservedKey
	}
	return r.inner.Delete(ctx, key)
}

func (r *SealedRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	delete(all, SaltKey)
	if len(all) == 0 {
		return all, nil
	}

	k, err := r.storeKey(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(all))
	for key, raw := range all {
		plain, err := cryptox.Open(raw, k, []byte(key))
		if err != nil {
			return nil, fmt.Errorf("failed to open metadata[%s]: %w", key, err)
		}
		out[key] = plain
	}
	return out, nil
}

// Clear removes every entry including the salt, so the next write starts a
// fresh key.
func (r *SealedRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.inner.Clear(ctx); err != nil {
		return err
	}
	r.key = nil
	return nil
}
