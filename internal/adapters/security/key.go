package security

import (
	"StegoGuard/internal/core/domain"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the size of a signing key (AES-128).
const KeySize = 16

// keyInfo binds derived keys to this use.
var keyInfo = []byte("stegoguard signature key v1")

// GenerateKey returns a fresh random key. Call it once per process.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: could not generate key: %v", domain.ErrCrypto, err)
	}
	return key, nil
}

// DeriveKey stretches a shared secret into a signing key so that every
// instance configured with the same secret reads the same signatures.
func DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", domain.ErrCrypto)
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, keyInfo), key); err != nil {
		return nil, fmt.Errorf("%w: could not derive key: %v", domain.ErrCrypto, err)
	}
	return key, nil
}
