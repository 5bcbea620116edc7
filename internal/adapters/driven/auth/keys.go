package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keySize is the required key size for AES-256 and HS256 signing keys
const keySize = 32

// HKDF info labels. Each purpose gets an independent key from one secret.
const (
	purposeStateSigning = "cma-core/oauth-state/v1"
	purposeCookieSeal   = "cma-core/token-cookie/v1"
)

// ErrWeakSecret is returned when the application secret is too short.
var ErrWeakSecret = errors.New("application secret must be at least 32 bytes")

// Keys holds the per-purpose keys derived from the application secret.
type Keys struct {
	StateSigning []byte
	CookieSeal   []byte
}

// DeriveKeys expands secret into independent keys with HKDF-SHA256.
func DeriveKeys(secret string) (*Keys, error) {
	if len(secret) < keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrWeakSecret, len(secret))
	}

	state, err := derive(secret, purposeStateSigning)
	if err != nil {
		return nil, err
	}
	seal, err := derive(secret, purposeCookieSeal)
	if err != nil {
		return nil, err
	}
	return &Keys{StateSigning: state, CookieSeal: seal}, nil
}

func derive(secret, purpose string) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
