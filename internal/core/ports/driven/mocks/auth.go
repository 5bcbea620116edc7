package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure the mocks implement their ports
var (
	_ driven.StateCodec  = (*MockStateCodec)(nil)
	_ driven.TokenSealer = (*MockTokenSealer)(nil)
)

// MockStateCodec encodes state as base64 JSON with no signature.
// NOT secure - only for testing.
type MockStateCodec struct {
	// Now controls expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// NewMockStateCodec creates a new MockStateCodec
func NewMockStateCodec() *MockStateCodec {
	return &MockStateCodec{Now: time.Now}
}

type mockState struct {
	domain.StatePayload
	Exp int64 `json:"exp"`
}

// Encode returns base64 JSON of the payload and its expiry
func (m *MockStateCodec) Encode(payload domain.StatePayload, ttl time.Duration) (string, error) {
	data, err := json.Marshal(mockState{StatePayload: payload, Exp: m.now().Add(ttl).Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a value produced by Encode
func (m *MockStateCodec) Decode(state string) (*domain.StatePayload, error) {
	data, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return nil, domain.ErrInvalidState
	}
	var s mockState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, domain.ErrInvalidState
	}
	if m.now().Unix() > s.Exp {
		return nil, domain.ErrInvalidState
	}
	return &s.StatePayload, nil
}

func (m *MockStateCodec) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// MockTokenSealer stores tokens as base64 JSON in the clear.
// NOT secure - only for testing.
type MockTokenSealer struct{}

// NewMockTokenSealer creates a new MockTokenSealer
func NewMockTokenSealer() *MockTokenSealer {
	return &MockTokenSealer{}
}

func (m *MockTokenSealer) Seal(token *domain.TokenPair) (string, error) {
	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockTokenSealer) Open(sealed string) (*domain.TokenPair, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	var token domain.TokenPair
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &token, nil
}
