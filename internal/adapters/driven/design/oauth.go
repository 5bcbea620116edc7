package design

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure Authorizer implements driven.DesignAuthorizer
var _ driven.DesignAuthorizer = (*Authorizer)(nil)

// OAuthConfig holds the OAuth client registration with the design provider.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	Scopes       []string
}

// Authorizer runs the authorization-code + PKCE flow through golang.org/x/oauth2.
type Authorizer struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewAuthorizer creates an authorizer. httpClient may be nil.
func NewAuthorizer(cfg OAuthConfig, httpClient *http.Client) *Authorizer {
	return &Authorizer{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
				// The provider expects client_secret_basic.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
		},
		httpClient: httpClient,
	}
}

// AuthCodeURL builds the provider authorization URL with an S256 challenge.
func (a *Authorizer) AuthCodeURL(state, verifier string) string {
	return a.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange trades the code and verifier for tokens.
func (a *Authorizer) Exchange(ctx context.Context, code, verifier string) (*domain.TokenPair, error) {
	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}

	tok, err := a.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, mapExchangeError(err)
	}

	return &domain.TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

func mapExchangeError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if re.Response != nil && re.Response.StatusCode >= 500 {
			return fmt.Errorf("token endpoint status %d: %w", re.Response.StatusCode, domain.ErrUpstreamUnavailable)
		}
		code := re.ErrorCode
		if code == "" {
			code = "unknown_error"
		}
		return fmt.Errorf("%s: %w", code, domain.ErrTokenExchange)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("token endpoint: %w: %v", domain.ErrUpstreamUnavailable, err)
}
