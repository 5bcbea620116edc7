package driving

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// ListingsService queries the listings API and derives market statistics.
type ListingsService interface {
	SearchListings(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error)
	MarketStats(ctx context.Context, req MarketStatsRequest) (*MarketStatsResponse, error)
	GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error)
	GetSimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error)
	AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error)
}

// MarketStatsRequest asks for sold and active statistics over a rolling window.
type MarketStatsRequest struct {
	City         string `json:"city" validate:"required_without=Area"`
	Area         string `json:"area,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Months       int    `json:"months" validate:"gte=1,lte=60"`
}

// MarketStatsResponse is the statistics for a window anchored at call time.
// @Description Market statistics for a location
type MarketStatsResponse struct {
	DateRange  domain.DateRange        `json:"date_range"`
	Statistics domain.MarketStatistics `json:"statistics"`
}
