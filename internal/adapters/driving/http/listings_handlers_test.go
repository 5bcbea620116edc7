package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

func TestHandleMarketStats(t *testing.T) {
	var got driving.MarketStatsRequest
	listings := &mockListingsService{
		statsFn: func(ctx context.Context, req driving.MarketStatsRequest) (*driving.MarketStatsResponse, error) {
			got = req
			return &driving.MarketStatsResponse{
				DateRange:  domain.DateRange{Start: "2025-10-16", End: "2026-10-16"},
				Statistics: domain.MarketStatistics{SoldCount: 41, ActiveCount: 12},
			}, nil
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/stats?city=Toronto&propertyType=Detached", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.City != "Toronto" || got.PropertyType != "Detached" || got.Months != 12 {
		t.Errorf("unexpected request %+v", got)
	}

	var resp driving.MarketStatsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Statistics.SoldCount != 41 || resp.DateRange.Start != "2025-10-16" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandleMarketStats_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no location", ""},
		{"months not a number", "city=Toronto&months=abc"},
		{"months zero", "city=Toronto&months=0"},
		{"months too large", "city=Toronto&months=61"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(Services{})

			req := httptest.NewRequest(http.MethodGet, "/listings/stats?"+tt.query, nil)
			rr := httptest.NewRecorder()
			server.Handler().ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestHandleMarketStats_UpstreamDown(t *testing.T) {
	listings := &mockListingsService{
		statsFn: func(ctx context.Context, req driving.MarketStatsRequest) (*driving.MarketStatsResponse, error) {
			return nil, fmt.Errorf("sold search: %w", domain.ErrUpstreamUnavailable)
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/stats?area=Durham", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}
}

func TestParseListingsQuery(t *testing.T) {
	values, _ := url.ParseQuery("city=Toronto&city=Markham&status=U&lastStatus=Sld" +
		"&minDate=2025-01-01&maxDate=2025-12-31&statistics=avg-soldPrice,med-soldPrice" +
		"&listings=false&resultsPerPage=25&pageNum=2&hasImages=true&minBeds=3&boardId=16")

	q, err := parseListingsQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(q.Cities, []string{"Toronto", "Markham"}) {
		t.Errorf("unexpected cities %v", q.Cities)
	}
	if !reflect.DeepEqual(q.Statistics, []string{"avg-soldPrice", "med-soldPrice"}) {
		t.Errorf("unexpected statistics %v", q.Statistics)
	}
	if q.IncludeListings {
		t.Error("expected listings=false")
	}
	if q.DateRange != (domain.DateRange{Start: "2025-01-01", End: "2025-12-31"}) {
		t.Errorf("unexpected date range %+v", q.DateRange)
	}
	if q.ResultsPerPage != 25 || q.PageNum != 2 || q.MinBedrooms != 3 {
		t.Errorf("unexpected paging %+v", q)
	}
	if q.HasImages == nil || !*q.HasImages {
		t.Error("expected hasImages=true")
	}
	if q.BoardID != "16" {
		t.Errorf("unexpected board %q", q.BoardID)
	}
}

func TestParseListingsQuery_Defaults(t *testing.T) {
	q, err := parseListingsQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IncludeListings {
		t.Error("listings should be included by default")
	}
	if q.HasImages != nil {
		t.Error("hasImages should be unset by default")
	}
}

func TestParseListingsQuery_Invalid(t *testing.T) {
	for _, raw := range []string{"listings=maybe", "hasImages=sure", "pageNum=x", "minPrice=-5"} {
		t.Run(raw, func(t *testing.T) {
			values, _ := url.ParseQuery(raw)
			if _, err := parseListingsQuery(values); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHandleSearchListings(t *testing.T) {
	listings := &mockListingsService{
		searchFn: func(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error) {
			return &domain.ListingsResult{
				Count:    2,
				Listings: []domain.Listing{{MLSNumber: "X1"}, {MLSNumber: "X2"}},
				Page:     1,
				NumPages: 1,
			}, nil
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/search?city=Toronto", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var result domain.ListingsResult
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Count != 2 || len(result.Listings) != 2 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestHandleGetListing(t *testing.T) {
	var gotMLS, gotBoard string
	listings := &mockListingsService{
		getFn: func(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error) {
			gotMLS, gotBoard = mlsNumber, boardID
			if mlsNumber == "missing" {
				return nil, fmt.Errorf("get listing: %w", domain.ErrNotFound)
			}
			return &domain.Listing{MLSNumber: mlsNumber}, nil
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/W123?boardId=16", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotMLS != "W123" || gotBoard != "16" {
		t.Errorf("unexpected args %q %q", gotMLS, gotBoard)
	}

	req = httptest.NewRequest(http.MethodGet, "/listings/missing", nil)
	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleSimilarListings(t *testing.T) {
	var gotOpts domain.SimilarOptions
	listings := &mockListingsService{
		similarFn: func(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/W123/similar?radius=2.5&fields=mlsNumber,soldPrice&sortBy=updatedOnDesc", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotOpts.Radius != 2.5 || gotOpts.SortBy != "updatedOnDesc" {
		t.Errorf("unexpected options %+v", gotOpts)
	}
	if !reflect.DeepEqual(gotOpts.Fields, []string{"mlsNumber", "soldPrice"}) {
		t.Errorf("unexpected fields %v", gotOpts.Fields)
	}

	var resp SimilarListingsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Listings == nil {
		t.Error("expected empty array, not null")
	}
}

func TestHandleSimilarListings_BadRadius(t *testing.T) {
	server := newTestServer(Services{})

	req := httptest.NewRequest(http.MethodGet, "/listings/W123/similar?radius=far", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleAutocomplete(t *testing.T) {
	var gotPrefix string
	listings := &mockListingsService{
		autocompleteFn: func(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
			gotPrefix = prefix
			return []domain.Suggestion{{Type: "city", Label: "Toronto, ON"}}, nil
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/autocomplete?search=Tor", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotPrefix != "Tor" {
		t.Errorf("expected prefix Tor, got %q", gotPrefix)
	}
	var resp SuggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Suggestions) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(resp.Suggestions))
	}
}

func TestHandleAutocomplete_DegradesOnUpstreamError(t *testing.T) {
	listings := &mockListingsService{
		autocompleteFn: func(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
			return nil, fmt.Errorf("autocomplete: %w", domain.ErrUpstreamUnavailable)
		},
	}
	server := newTestServer(Services{Listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/listings/autocomplete?search=Tor", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp SuggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Suggestions == nil || len(resp.Suggestions) != 0 {
		t.Errorf("expected empty suggestions, got %+v", resp.Suggestions)
	}
}
