// Package metadata persists the small set of string keys the client keeps
// between runs (auth token, base URL override).
//
// Three implementations are provided:
//
//   - MemoryRepository: process-local, used by the web platform.
//   - SQLiteRepository: durable, used by the native platform.
//   - SealedRepository: wraps another Repository and encrypts every value.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) when
// the key is absent; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
