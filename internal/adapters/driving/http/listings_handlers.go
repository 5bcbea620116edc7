package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
	"github.com/custodia-labs/cma-core/internal/core/services"
)

// SuggestionsResponse wraps autocomplete results
// @Description Location suggestions for a search prefix
type SuggestionsResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// SimilarListingsResponse wraps similar listings
// @Description Listings similar to a subject property
type SimilarListingsResponse struct {
	Listings []domain.Listing `json:"listings"`
}

// handleMarketStats godoc
// @Summary      Market statistics
// @Description  Sold statistics over the trailing window plus the current active market for a city or area
// @Tags         Listings
// @Produce      json
// @Param        city          query     string  false  "City (required without area)"
// @Param        area          query     string  false  "Area (required without city)"
// @Param        propertyType  query     string  false  "Property type"
// @Param        months        query     int     false  "Window length in months (default 12)"
// @Success      200           {object}  driving.MarketStatsResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      502           {object}  ErrorResponse
// @Router       /listings/stats [get]
func (s *Server) handleMarketStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := driving.MarketStatsRequest{
		City:         strings.TrimSpace(q.Get("city")),
		Area:         strings.TrimSpace(q.Get("area")),
		PropertyType: q.Get("propertyType"),
		Months:       services.DefaultStatsMonths,
	}
	if v := q.Get("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
		req.Months = months
	}
	if err := validateStruct(req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp, err := s.listings.MarketStats(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearchListings godoc
// @Summary      Search listings
// @Description  Normalized listings search. Multi-valued filters may be repeated. listings=false returns only counts and statistics.
// @Tags         Listings
// @Produce      json
// @Param        city            query     []string  false  "City"  collectionFormat(multi)
// @Param        area            query     []string  false  "Area"  collectionFormat(multi)
// @Param        neighborhood    query     []string  false  "Neighborhood"  collectionFormat(multi)
// @Param        propertyType    query     []string  false  "Property type"  collectionFormat(multi)
// @Param        class           query     []string  false  "Class"  collectionFormat(multi)
// @Param        status          query     []string  false  "Status (A, U)"  collectionFormat(multi)
// @Param        lastStatus      query     []string  false  "Last status (Sld, Lsd, New)"  collectionFormat(multi)
// @Param        minDate         query     string    false  "Window start (YYYY-MM-DD)"
// @Param        maxDate         query     string    false  "Window end (YYYY-MM-DD)"
// @Param        statistics      query     string    false  "Comma separated metric names, e.g. avg-soldPrice"
// @Param        listings        query     bool      false  "Include listings (default true)"
// @Param        resultsPerPage  query     int       false  "Page size"
// @Param        pageNum         query     int       false  "Page number"
// @Param        sortBy          query     string    false  "Sort order"
// @Param        hasImages       query     bool      false  "Only listings with images"
// @Param        minPrice        query     int       false  "Minimum price"
// @Param        maxPrice        query     int       false  "Maximum price"
// @Param        minBeds         query     int       false  "Minimum bedrooms"
// @Param        boardId         query     string    false  "MLS board"
// @Success      200             {object}  domain.ListingsResult
// @Failure      400             {object}  ErrorResponse
// @Failure      502             {object}  ErrorResponse
// @Router       /listings/search [get]
func (s *Server) handleSearchListings(w http.ResponseWriter, r *http.Request) {
	query, err := parseListingsQuery(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result, err := s.listings.SearchListings(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetListing godoc
// @Summary      Get listing
// @Tags         Listings
// @Produce      json
// @Param        id       path      string  true   "MLS number"
// @Param        boardId  query     string  false  "MLS board"
// @Success      200      {object}  domain.Listing
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /listings/{id} [get]
func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.listings.GetListing(r.Context(), r.PathValue("id"), r.URL.Query().Get("boardId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// handleSimilarListings godoc
// @Summary      Similar listings
// @Tags         Listings
// @Produce      json
// @Param        id       path      string  true   "MLS number"
// @Param        radius   query     number  false  "Search radius in km"
// @Param        sortBy   query     string  false  "Sort order"
// @Param        fields   query     string  false  "Comma separated field list"
// @Param        boardId  query     string  false  "MLS board"
// @Success      200      {object}  SimilarListingsResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /listings/{id}/similar [get]
func (s *Server) handleSimilarListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := domain.SimilarOptions{
		SortBy:  q.Get("sortBy"),
		Fields:  splitList(q["fields"]),
		BoardID: q.Get("boardId"),
	}
	if v := q.Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			writeError(w, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		opts.Radius = radius
	}

	listings, err := s.listings.GetSimilarListings(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, http.StatusOK, SimilarListingsResponse{Listings: listings})
}

// handleAutocomplete godoc
// @Summary      Location autocomplete
// @Description  Suggests locations for a prefix. Prefixes shorter than two characters and upstream failures both yield an empty list.
// @Tags         Listings
// @Produce      json
// @Param        search  query     string  true  "Prefix"
// @Success      200     {object}  SuggestionsResponse
// @Router       /listings/autocomplete [get]
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.listings.AutocompleteLocations(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.logger.Warn("autocomplete degraded to empty result",
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		suggestions = []domain.Suggestion{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func parseListingsQuery(q url.Values) (domain.ListingsQuery, error) {
	query := domain.ListingsQuery{
		Cities:          q["city"],
		Areas:           q["area"],
		Neighborhoods:   q["neighborhood"],
		PropertyTypes:   q["propertyType"],
		Classes:         q["class"],
		Statuses:        q["status"],
		LastStatuses:    q["lastStatus"],
		DateRange:       domain.DateRange{Start: q.Get("minDate"), End: q.Get("maxDate")},
		Statistics:      splitList(q["statistics"]),
		IncludeListings: true,
		SortBy:          q.Get("sortBy"),
		BoardID:         q.Get("boardId"),
	}

	var err error
	if v := q.Get("listings"); v != "" {
		if query.IncludeListings, err = strconv.ParseBool(v); err != nil {
			return query, fmt.Errorf("listings must be a boolean: %w", domain.ErrInvalidRequest)
		}
	}
	if v := q.Get("hasImages"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return query, fmt.Errorf("hasImages must be a boolean: %w", domain.ErrInvalidRequest)
		}
		query.HasImages = &b
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"resultsPerPage", &query.ResultsPerPage},
		{"pageNum", &query.PageNum},
		{"minPrice", &query.MinPrice},
		{"maxPrice", &query.MaxPrice},
		{"minBeds", &query.MinBedrooms},
	}
	for _, f := range ints {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return query, fmt.Errorf("%s must be a non-negative integer: %w", f.name, domain.ErrInvalidRequest)
		}
		*f.dst = n
	}
	return query, nil
}

// splitList accepts both repeated parameters and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
