package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// TokenCookieName holds the sealed design provider tokens
const TokenCookieName = "cma_design_token"

// TokenStore keeps the design provider tokens in a sealed, HTTP-only cookie.
// Nothing is persisted server-side; logging out or losing the cookie ends
// the session.
type TokenStore struct {
	sealer driven.TokenSealer
	secure bool
	now    func() time.Time
}

// NewTokenStore creates a TokenStore. secure should be true whenever the
// service is reachable over HTTPS.
func NewTokenStore(sealer driven.TokenSealer, secure bool) *TokenStore {
	return &TokenStore{
		sealer: sealer,
		secure: secure,
		now:    time.Now,
	}
}

// Set seals token into the response cookie.
// The cookie expires with the access token; without a reported expiry it
// lives for the browser session.
func (s *TokenStore) Set(w http.ResponseWriter, token *domain.TokenPair) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("empty token: %w", domain.ErrInvalidRequest)
	}
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	cookie := s.cookie(sealed)
	if !token.ExpiresAt.IsZero() {
		cookie.Expires = token.ExpiresAt
		cookie.MaxAge = int(token.ExpiresAt.Sub(s.now()).Seconds())
		if cookie.MaxAge <= 0 {
			cookie.MaxAge = -1
		}
	}
	http.SetCookie(w, cookie)
	return nil
}

// Get returns the caller's tokens, or domain.ErrUnauthenticated when the
// cookie is absent, tampered with or expired.
func (s *TokenStore) Get(r *http.Request) (*domain.TokenPair, error) {
	c, err := r.Cookie(TokenCookieName)
	if err != nil || c.Value == "" {
		return nil, domain.ErrUnauthenticated
	}
	token, err := s.sealer.Open(c.Value)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if token.Expired(s.now()) {
		return nil, domain.ErrUnauthenticated
	}
	return token, nil
}

// Clear removes the cookie from the browser
func (s *TokenStore) Clear(w http.ResponseWriter) {
	c := s.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (s *TokenStore) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
