package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure Sealer implements driven.TokenSealer
var _ driven.TokenSealer = (*Sealer)(nil)

const (
	// sealVersion is the version byte for the sealed blob format.
	sealVersion = 0x01

	// nonceSize is the AES-GCM nonce size (12 bytes is standard)
	nonceSize = 12
)

var (
	// ErrInvalidKeySize is returned when the sealing key is not 32 bytes.
	ErrInvalidKeySize = errors.New("sealing key must be 32 bytes")

	// ErrInvalidBlobSize is returned when the sealed blob is too small.
	ErrInvalidBlobSize = errors.New("sealed blob is too small")

	// ErrUnsupportedVersion is returned when the blob version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported sealed blob version")

	// ErrDecryptionFailed is returned when decryption fails (wrong key or corrupted data).
	ErrDecryptionFailed = errors.New("failed to open sealed blob")
)

// Sealer encrypts token pairs with AES-256-GCM for browser-side storage.
// The sealed format is base64url(version(1) || nonce(12) || ciphertext(N)).
type Sealer struct {
	gcm cipher.AEAD
}

// NewSealer creates a new sealer with the given 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Sealer{gcm: gcm}, nil
}

// Seal encrypts the token pair into a cookie-safe string.
func (s *Sealer) Seal(token *domain.TokenPair) (string, error) {
	if token == nil {
		return "", domain.ErrUnauthenticated
	}
	plaintext, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("marshal token: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := s.gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 1+nonceSize+len(ciphertext))
	blob[0] = sealVersion
	copy(blob[1:1+nonceSize], nonce)
	copy(blob[1+nonceSize:], ciphertext)

	return base64.RawURLEncoding.EncodeToString(blob), nil
}

// Open decrypts a value produced by Seal.
// Every failure is reported as domain.ErrUnauthenticated.
func (s *Sealer) Open(sealed string) (*domain.TokenPair, error) {
	blob, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrUnauthenticated, err)
	}
	token, err := s.open(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return token, nil
}

func (s *Sealer) open(blob []byte) (*domain.TokenPair, error) {
	minSize := 1 + nonceSize + s.gcm.Overhead()
	if len(blob) < minSize {
		return nil, ErrInvalidBlobSize
	}

	if blob[0] != sealVersion {
		return nil, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, blob[0])
	}

	nonce := blob[1 : 1+nonceSize]
	ciphertext := blob[1+nonceSize:]

	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	var token domain.TokenPair
	if err := json.Unmarshal(plaintext, &token); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &token, nil
}
