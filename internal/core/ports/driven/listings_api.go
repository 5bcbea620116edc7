package driven

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// ListingsAPI is the third-party real-estate search API.
// Every method issues exactly one outbound request. Failures are reported
// as domain.ErrUpstreamUnavailable.
type ListingsAPI interface {
	Search(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error)
	GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error)
	SimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error)
	AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error)
}
