// Package cryptox seals small values at rest for the native session store.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/tabz/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the AES-256 key length produced by DeriveStoreKey.
const KeySize = 32

// SaltSize is the recommended salt length for DeriveStoreKey.
const SaltSize = 16

var ErrSealedTooShort = errors.New("sealed value too short")

// DeriveStoreKey stretches a store secret into an AES-256 key with argon2id.
func DeriveStoreKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under key. The random nonce is
// prepended to the returned ciphertext. additional is authenticated but not
// encrypted; the session store passes the entry key so values cannot be
// swapped between keys.
func Seal(plaintext, key, additional []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, additional), nil
}

// Open reverses Seal.
func Open(sealed, key, additional []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, ErrSealedTooShort
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, additional)
}
