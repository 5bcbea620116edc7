package driving

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// AuthFlowService handles the design provider OAuth2 + PKCE flow.
// It is stateless: the PKCE verifier and return path travel in the state parameter.
type AuthFlowService interface {
	// BeginAuthorization builds the provider authorization URL for a new attempt.
	// returnTo is where the browser goes once the flow completes.
	BeginAuthorization(ctx context.Context, returnTo string) (*AuthorizeResponse, error)

	// CompleteAuthorization handles the provider callback.
	// It decodes the state, exchanges the code and returns the tokens and the
	// original destination.
	CompleteAuthorization(ctx context.Context, req CallbackRequest) (*CallbackResponse, error)
}

// AuthorizeResponse contains the authorization URL.
// @Description Response containing the OAuth authorization URL
type AuthorizeResponse struct {
	// AuthorizationURL is the URL to redirect the browser to.
	AuthorizationURL string `json:"authorization_url" example:"https://www.canva.com/api/oauth/authorize?client_id=..."`

	// ExpiresAt is when the state stops being accepted.
	ExpiresAt string `json:"expires_at" example:"2026-01-15T10:10:00Z"`
}

// CallbackRequest represents the OAuth callback from the provider.
// @Description OAuth callback parameters from provider redirect
type CallbackRequest struct {
	Code             string `json:"code" example:"abc123"`
	State            string `json:"state" example:"eyJhbGciOi..."`
	Error            string `json:"error,omitempty" example:"access_denied"`
	ErrorDescription string `json:"error_description,omitempty" example:"The user denied access"`
}

// CallbackResponse is the result of a completed authorization.
type CallbackResponse struct {
	Token    *domain.TokenPair
	ReturnTo string
}

// OAuthError represents an OAuth-specific error.
// Code is safe to show to the browser; Err carries the domain error.
type OAuthError struct {
	Code        string `json:"error" example:"invalid_state"`
	Description string `json:"error_description" example:"The state parameter is invalid or expired"`
	Err         error  `json:"-"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

func (e *OAuthError) Unwrap() error {
	return e.Err
}

// Common OAuth error codes
const (
	OAuthCodeInvalidState   = "invalid_state"
	OAuthCodeExchangeFailed = "exchange_failed"
	OAuthCodeMissingCode    = "missing_code"
	OAuthCodeUnavailable    = "provider_unavailable"
)
