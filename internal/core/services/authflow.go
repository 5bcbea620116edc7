package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Ensure authFlowService implements AuthFlowService
var _ driving.AuthFlowService = (*authFlowService)(nil)

// DefaultStateTTL is how long an authorization attempt stays valid.
const DefaultStateTTL = 10 * time.Minute

// AuthFlowServiceConfig holds configuration for the auth flow service.
type AuthFlowServiceConfig struct {
	// Authorizer builds authorization URLs and exchanges codes.
	Authorizer driven.DesignAuthorizer

	// StateCodec carries the PKCE verifier through the state parameter.
	StateCodec driven.StateCodec

	// DefaultReturnTo is used when the caller supplies no usable return path.
	// Example: "/dashboard"
	DefaultReturnTo string

	// StateTTL overrides DefaultStateTTL.
	StateTTL time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

type authFlowService struct {
	authorizer      driven.DesignAuthorizer
	codec           driven.StateCodec
	defaultReturnTo string
	stateTTL        time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// NewAuthFlowService creates a new auth flow service.
func NewAuthFlowService(cfg AuthFlowServiceConfig) driving.AuthFlowService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = DefaultStateTTL
	}
	if cfg.DefaultReturnTo == "" {
		cfg.DefaultReturnTo = "/"
	}
	return &authFlowService{
		authorizer:      cfg.Authorizer,
		codec:           cfg.StateCodec,
		defaultReturnTo: cfg.DefaultReturnTo,
		stateTTL:        cfg.StateTTL,
		logger:          cfg.Logger,
		now:             cfg.Now,
	}
}

// BeginAuthorization generates PKCE credentials, packs the verifier into
// the state and returns the provider authorization URL.
func (s *authFlowService) BeginAuthorization(ctx context.Context, returnTo string) (*driving.AuthorizeResponse, error) {
	session := s.newSession(returnTo)

	state, err := s.codec.Encode(domain.StatePayload{
		Verifier: session.PKCEVerifier,
		ReturnTo: session.ReturnTo,
	}, s.stateTTL)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	session.State = state

	return &driving.AuthorizeResponse{
		AuthorizationURL: s.authorizer.AuthCodeURL(session.State, session.PKCEVerifier),
		ExpiresAt:        s.now().Add(s.stateTTL).UTC().Format(time.RFC3339),
	}, nil
}

func (s *authFlowService) newSession(returnTo string) *domain.AuthSession {
	if !domain.IsLocalPath(returnTo) {
		if returnTo != "" {
			s.logger.Warn("rejected non-local return path", "return_to", returnTo)
		}
		returnTo = s.defaultReturnTo
	}
	verifier := oauth2.GenerateVerifier()
	return &domain.AuthSession{
		PKCEVerifier:  verifier,
		PKCEChallenge: oauth2.S256ChallengeFromVerifier(verifier),
		ReturnTo:      returnTo,
	}
}

// CompleteAuthorization validates the state and exchanges the code for tokens.
func (s *authFlowService) CompleteAuthorization(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	if req.Error != "" {
		return nil, &driving.OAuthError{
			Code:        req.Error,
			Description: req.ErrorDescription,
		}
	}

	payload, err := s.codec.Decode(req.State)
	if err != nil {
		return nil, &driving.OAuthError{
			Code:        driving.OAuthCodeInvalidState,
			Description: "The state parameter is invalid or expired",
			Err:         domain.ErrInvalidState,
		}
	}
	if err := payload.Validate(); err != nil {
		return nil, &driving.OAuthError{
			Code:        driving.OAuthCodeInvalidState,
			Description: "The state parameter is malformed",
			Err:         err,
		}
	}

	if req.Code == "" {
		return nil, &driving.OAuthError{
			Code:        driving.OAuthCodeMissingCode,
			Description: "The authorization code is missing",
			Err:         domain.ErrInvalidRequest,
		}
	}

	token, err := s.authorizer.Exchange(ctx, req.Code, payload.Verifier)
	if err != nil {
		s.logger.Error("token exchange failed", "error", err)
		code := driving.OAuthCodeExchangeFailed
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			code = driving.OAuthCodeUnavailable
		}
		return nil, &driving.OAuthError{
			Code:        code,
			Description: "Failed to exchange authorization code",
			Err:         err,
		}
	}

	returnTo := payload.ReturnTo
	if returnTo == "" {
		returnTo = s.defaultReturnTo
	}
	return &driving.CallbackResponse{Token: token, ReturnTo: returnTo}, nil
}
