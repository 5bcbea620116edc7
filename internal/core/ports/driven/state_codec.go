package driven

import (
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// StateCodec serializes the authorization recovery payload into the OAuth
// state parameter. Encodings must be URL safe and tamper-evident so the
// value survives arbitrary redirect chains with no server-side storage.
type StateCodec interface {
	// Encode returns the state value for payload, valid for ttl.
	Encode(payload domain.StatePayload, ttl time.Duration) (string, error)

	// Decode verifies and parses a state value.
	// Returns domain.ErrInvalidState for anything corrupted, forged or expired.
	Decode(state string) (*domain.StatePayload, error)
}
