package driven

import "github.com/custodia-labs/cma-core/internal/core/domain"

// TokenSealer turns a TokenPair into an opaque value a browser can hold
// (e.g. a cookie) and back. Tokens are never persisted server-side.
type TokenSealer interface {
	Seal(token *domain.TokenPair) (string, error)

	// Open returns domain.ErrUnauthenticated if the value cannot be opened.
	Open(sealed string) (*domain.TokenPair, error)
}
