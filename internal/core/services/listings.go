package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Ensure listingsService implements ListingsService
var _ driving.ListingsService = (*listingsService)(nil)

const (
	// MinAutocompleteLength is the shortest prefix sent upstream.
	MinAutocompleteLength = 2

	// MaxResultsPerPage caps a single search page.
	MaxResultsPerPage = 100

	// DefaultStatsMonths is the window used when a stats request gives none.
	DefaultStatsMonths = 12
)

// Statistics requested for the sold and active halves of MarketStats.
var (
	SoldStatistics   = []string{"avg-soldPrice", "med-soldPrice", "avg-daysOnMarket", "med-daysOnMarket"}
	ActiveStatistics = []string{"avg-listPrice", "med-listPrice"}
)

// ListingsServiceConfig holds configuration for the listings service.
type ListingsServiceConfig struct {
	API    driven.ListingsAPI
	Logger *slog.Logger
	Now    func() time.Time
}

type listingsService struct {
	api    driven.ListingsAPI
	logger *slog.Logger
	now    func() time.Time
}

// NewListingsService creates a new listings service.
func NewListingsService(cfg ListingsServiceConfig) driving.ListingsService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &listingsService{
		api:    cfg.API,
		logger: cfg.Logger,
		now:    cfg.Now,
	}
}

// SearchListings runs a normalized search.
func (s *listingsService) SearchListings(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error) {
	if err := q.DateRange.Validate(); err != nil {
		return nil, fmt.Errorf("date range: %w", err)
	}
	if q.ResultsPerPage < 0 || q.PageNum < 0 {
		return nil, fmt.Errorf("negative paging: %w", domain.ErrInvalidRequest)
	}
	if q.ResultsPerPage > MaxResultsPerPage {
		q.ResultsPerPage = MaxResultsPerPage
	}

	result, err := s.api.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return result, nil
}

// MarketStats computes sold and active statistics for the trailing window.
// The two searches run concurrently; either failing fails the whole call.
func (s *listingsService) MarketStats(ctx context.Context, req driving.MarketStatsRequest) (*driving.MarketStatsResponse, error) {
	city := strings.TrimSpace(req.City)
	area := strings.TrimSpace(req.Area)
	if city == "" && area == "" {
		return nil, fmt.Errorf("city or area is required: %w", domain.ErrInvalidRequest)
	}
	months := req.Months
	if months == 0 {
		months = DefaultStatsMonths
	}
	if months < 0 {
		return nil, fmt.Errorf("months must be positive: %w", domain.ErrInvalidRequest)
	}

	window := domain.LastMonths(s.now(), months)

	base := domain.ListingsQuery{IncludeListings: false}
	if city != "" {
		base.Cities = []string{city}
	}
	if area != "" {
		base.Areas = []string{area}
	}
	if pt := strings.TrimSpace(req.PropertyType); pt != "" {
		base.PropertyTypes = []string{pt}
	}

	sold := base
	sold.Statuses = []string{domain.ListingStatusUnlisted}
	sold.LastStatuses = []string{domain.LastStatusSold}
	sold.DateRange = window
	sold.Statistics = SoldStatistics

	active := base
	active.Statuses = []string{domain.ListingStatusActive}
	active.Statistics = ActiveStatistics

	var soldRes, activeRes *domain.ListingsResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.api.Search(gctx, sold)
		if err != nil {
			return fmt.Errorf("sold search: %w", err)
		}
		soldRes = r
		return nil
	})
	g.Go(func() error {
		r, err := s.api.Search(gctx, active)
		if err != nil {
			return fmt.Errorf("active search: %w", err)
		}
		activeRes = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := make(map[string]domain.Aggregate, len(soldRes.Statistics)+len(activeRes.Statistics))
	for k, v := range activeRes.Statistics {
		metrics[k] = v
	}
	for k, v := range soldRes.Statistics {
		metrics[k] = v
	}

	s.logger.Debug("market stats computed",
		"city", city, "area", area, "start", window.Start, "end", window.End,
		"sold", soldRes.Count, "active", activeRes.Count)

	return &driving.MarketStatsResponse{
		DateRange: window,
		Statistics: domain.MarketStatistics{
			SoldCount:   soldRes.Count,
			ActiveCount: activeRes.Count,
			Metrics:     metrics,
		},
	}, nil
}

// GetListing fetches one listing by MLS number.
func (s *listingsService) GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error) {
	if strings.TrimSpace(mlsNumber) == "" {
		return nil, fmt.Errorf("mls number is required: %w", domain.ErrInvalidRequest)
	}
	listing, err := s.api.GetListing(ctx, mlsNumber, boardID)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", mlsNumber, err)
	}
	return listing, nil
}

// GetSimilarListings returns comparables for a listing.
func (s *listingsService) GetSimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error) {
	if strings.TrimSpace(mlsNumber) == "" {
		return nil, fmt.Errorf("mls number is required: %w", domain.ErrInvalidRequest)
	}
	if opts.Radius < 0 {
		return nil, fmt.Errorf("radius must not be negative: %w", domain.ErrInvalidRequest)
	}
	listings, err := s.api.SimilarListings(ctx, mlsNumber, opts)
	if err != nil {
		return nil, fmt.Errorf("similar listings %s: %w", mlsNumber, err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

// AutocompleteLocations suggests locations for a prefix.
// Prefixes shorter than MinAutocompleteLength return nothing without calling upstream.
func (s *listingsService) AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < MinAutocompleteLength {
		return []domain.Suggestion{}, nil
	}
	suggestions, err := s.api.AutocompleteLocations(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", prefix, err)
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	return suggestions, nil
}
