package driven

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// DesignAuthorizer performs the OAuth2 authorization-code + PKCE
// exchange with the design provider.
type DesignAuthorizer interface {
	// AuthCodeURL returns the provider authorization URL.
	// The caller supplies the opaque state and the PKCE verifier;
	// the S256 challenge is derived from the verifier.
	AuthCodeURL(state, verifier string) string

	// Exchange trades an authorization code and its PKCE verifier for tokens.
	// Returns domain.ErrTokenExchange when the provider rejects the exchange.
	Exchange(ctx context.Context, code, verifier string) (*domain.TokenPair, error)
}

// DesignAPI is the bearer-authenticated REST surface of the design provider.
// Implementations map provider responses onto domain errors:
// 401 -> domain.ErrUnauthenticated, 4xx -> domain.ErrInvalidRequest / domain.ErrNotFound,
// network and 5xx -> domain.ErrUpstreamUnavailable.
type DesignAPI interface {
	// CreateExport submits an export job for a design.
	CreateExport(ctx context.Context, accessToken, designID string, format domain.ExportFormat) (*domain.ExportJob, error)

	// GetExport fetches the current status of an export job. One request, no waiting.
	GetExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error)

	// SearchBrandTemplates searches the template catalog.
	// The continuation token is forwarded verbatim.
	SearchBrandTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error)
}
