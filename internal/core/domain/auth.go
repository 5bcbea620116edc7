package domain

import (
	"strings"
	"time"
)

// AuthSession is the context of a single authorization attempt.
// State is the only durable carrier; nothing is stored server-side.
type AuthSession struct {
	PKCEVerifier  string
	PKCEChallenge string
	ReturnTo      string
	State         string
}

// StatePayload is the recovery payload serialized into the OAuth state parameter.
type StatePayload struct {
	Verifier string `json:"v"`
	ReturnTo string `json:"r"`
}

// Validate checks the payload structure after decoding untrusted input.
func (p *StatePayload) Validate() error {
	if p == nil || p.Verifier == "" {
		return ErrInvalidState
	}
	// RFC 7636: 43-128 characters
	if len(p.Verifier) < 43 || len(p.Verifier) > 128 {
		return ErrInvalidState
	}
	if p.ReturnTo != "" && !IsLocalPath(p.ReturnTo) {
		return ErrInvalidState
	}
	return nil
}

// TokenPair is the OAuth material owned by one browser session.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is unusable at now.
// A zero ExpiresAt means the provider did not report an expiry.
func (t *TokenPair) Expired(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt)
}

// IsLocalPath reports whether p is an absolute path on this host.
// Protocol-relative ("//host"), scheme-bearing and control-character values
// are rejected; browsers strip tabs from Location, turning "/\t/host" into "//host".
func IsLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	if strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	for i := 0; i < len(p); i++ {
		if c := p[i]; c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
