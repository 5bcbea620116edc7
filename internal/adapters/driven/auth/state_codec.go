package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure StateCodec implements driven.StateCodec
var _ driven.StateCodec = (*StateCodec)(nil)

// stateIssuer scopes state tokens so no other JWT signed with the key is accepted
const stateIssuer = "cma-core/oauth-state"

// stateClaims wraps domain.StatePayload for JWT compatibility
type stateClaims struct {
	Verifier string `json:"v"`
	ReturnTo string `json:"r,omitempty"`
	jwt.RegisteredClaims
}

// StateCodec carries the PKCE verifier and return path in an HS256-signed JWT.
// The JWT compact form is URL safe, so it can be used as the state parameter as-is.
type StateCodec struct {
	key []byte
	now func() time.Time
}

// NewStateCodec creates a state codec with the given signing key
func NewStateCodec(key []byte) *StateCodec {
	return &StateCodec{key: key, now: time.Now}
}

// Encode signs payload with an expiry of ttl from now
func (c *StateCodec) Encode(payload domain.StatePayload, ttl time.Duration) (string, error) {
	now := c.now()
	claims := stateClaims{
		Verifier: payload.Verifier,
		ReturnTo: payload.ReturnTo,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    stateIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry and returns the payload
func (c *StateCodec) Decode(state string) (*domain.StatePayload, error) {
	if state == "" {
		return nil, domain.ErrInvalidState
	}

	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}

	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidState
	}

	payload := &domain.StatePayload{Verifier: claims.Verifier, ReturnTo: claims.ReturnTo}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}
