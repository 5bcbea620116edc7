package listings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/cma-core/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure Client implements driven.ListingsAPI
var _ driven.ListingsAPI = (*Client)(nil)

const (
	serviceName  = "listings"
	apiKeyHeader = "REPLIERS-API-KEY"

	// maxBody bounds a listings response; stats-only responses are tiny
	// but a full page of listings with images can be large.
	maxBody = 16 << 20
)

// Client talks to the Repliers-style listings REST API.
type Client struct {
	baseURL string
	apiKey  string
	doer    httpclient.Doer
}

// NewClient creates a listings client rooted at baseURL.
func NewClient(baseURL, apiKey string, doer httpclient.Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		doer:    doer,
	}
}

// Search runs a listings query and normalizes the response.
func (c *Client) Search(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error) {
	body, err := c.get(ctx, "/listings", searchParams(q))
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	result := &domain.ListingsResult{
		Count:      int(root.Get("count").Int()),
		Page:       int(root.Get("page").Int()),
		NumPages:   int(root.Get("numPages").Int()),
		Statistics: parseStatistics(root.Get("statistics")),
	}
	if q.IncludeListings {
		result.Listings = parseListings(root.Get("listings"))
	}
	return result, nil
}

// GetListing fetches a single listing.
func (c *Client) GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error) {
	params := url.Values{}
	if boardID != "" {
		params.Set("boardId", boardID)
	}
	body, err := c.get(ctx, "/listings/"+url.PathEscape(mlsNumber), params)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	if !root.Get("mlsNumber").Exists() {
		return nil, fmt.Errorf("listing %s: %w", mlsNumber, domain.ErrNotFound)
	}
	listing := parseListing(root)
	return &listing, nil
}

// SimilarListings returns comparables for a listing.
func (c *Client) SimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("mlsNumber", mlsNumber)
	if opts.Radius > 0 {
		params.Set("radius", strconv.FormatFloat(opts.Radius, 'f', -1, 64))
	}
	if opts.SortBy != "" {
		params.Set("sortBy", opts.SortBy)
	}
	if len(opts.Fields) > 0 {
		params.Set("fields", strings.Join(opts.Fields, ","))
	}
	if opts.BoardID != "" {
		params.Set("boardId", opts.BoardID)
	}

	body, err := c.get(ctx, "/listings/similar", params)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	arr := root.Get("similar")
	if !arr.Exists() {
		arr = root.Get("listings")
	}
	return parseListings(arr), nil
}

// AutocompleteLocations suggests locations for a prefix.
func (c *Client) AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
	params := url.Values{}
	params.Set("search", prefix)

	body, err := c.get(ctx, "/locations/autocomplete", params)
	if err != nil {
		return nil, err
	}

	var out []domain.Suggestion
	gjson.GetBytes(body, "locations").ForEach(func(_, loc gjson.Result) bool {
		s := domain.Suggestion{
			Type:  loc.Get("type").String(),
			Label: loc.Get("name").String(),
			City:  firstOf(loc, "address.city", "city"),
			Area:  firstOf(loc, "address.area", "area"),
			State: firstOf(loc, "address.state", "state"),
		}
		if s.Label == "" {
			s.Label = joinNonEmpty(", ", s.City, s.Area, s.State)
		}
		out = append(out, s)
		return true
	})
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, httpclient.Unavailable(serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, httpclient.Unavailable(serviceName, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w: invalid JSON response", serviceName, domain.ErrUpstreamUnavailable)
	}
	return body, nil
}

// searchParams maps a query onto the listings API filters.
// List-valued filters repeat the parameter; statistics are comma joined.
func searchParams(q domain.ListingsQuery) url.Values {
	params := url.Values{}
	add := func(key string, values []string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				params.Add(key, v)
			}
		}
	}
	add("city", q.Cities)
	add("area", q.Areas)
	add("neighborhood", q.Neighborhoods)
	add("propertyType", q.PropertyTypes)
	add("class", q.Classes)
	add("status", q.Statuses)
	add("lastStatus", q.LastStatuses)

	minDate, maxDate := "minListDate", "maxListDate"
	if isSoldQuery(q) {
		minDate, maxDate = "minSoldDate", "maxSoldDate"
	}
	if q.DateRange.Start != "" {
		params.Set(minDate, q.DateRange.Start)
	}
	if q.DateRange.End != "" {
		params.Set(maxDate, q.DateRange.End)
	}

	if len(q.Statistics) > 0 {
		params.Set("statistics", strings.Join(q.Statistics, ","))
	}
	params.Set("listings", strconv.FormatBool(q.IncludeListings))

	if q.ResultsPerPage > 0 {
		params.Set("resultsPerPage", strconv.Itoa(q.ResultsPerPage))
	}
	if q.PageNum > 0 {
		params.Set("pageNum", strconv.Itoa(q.PageNum))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.HasImages != nil {
		params.Set("hasImages", strconv.FormatBool(*q.HasImages))
	}
	if q.MinPrice > 0 {
		params.Set("minPrice", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}
	if q.MinBedrooms > 0 {
		params.Set("minBeds", strconv.Itoa(q.MinBedrooms))
	}
	if q.BoardID != "" {
		params.Set("boardId", q.BoardID)
	}
	return params
}

func isSoldQuery(q domain.ListingsQuery) bool {
	for _, s := range q.LastStatuses {
		if s == domain.LastStatusSold || s == domain.LastStatusLeased {
			return true
		}
	}
	return false
}

// parseStatistics reads {"metric": {"min","max","avg","med"}} objects.
func parseStatistics(stats gjson.Result) map[string]domain.Aggregate {
	if !stats.IsObject() {
		return nil
	}
	out := make(map[string]domain.Aggregate)
	stats.ForEach(func(key, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		agg := domain.Aggregate{
			Min: v.Get("min").Float(),
			Max: v.Get("max").Float(),
			Avg: v.Get("avg").Float(),
		}
		if med := v.Get("med"); med.Exists() && med.Type != gjson.Null {
			m := med.Float()
			agg.Median = &m
		}
		out[key.String()] = agg
		return true
	})
	return out
}

func parseListings(arr gjson.Result) []domain.Listing {
	out := []domain.Listing{}
	arr.ForEach(func(_, v gjson.Result) bool {
		out = append(out, parseListing(v))
		return true
	})
	return out
}

// parseListing normalizes one listing. Numeric fields may arrive as strings.
func parseListing(v gjson.Result) domain.Listing {
	sqft := v.Get("details.sqft").String()
	l := domain.Listing{
		MLSNumber:    v.Get("mlsNumber").String(),
		BoardID:      v.Get("boardId").String(),
		Status:       v.Get("status").String(),
		LastStatus:   v.Get("lastStatus").String(),
		Class:        v.Get("class").String(),
		PropertyType: firstOf(v, "details.propertyType", "type"),
		Address: domain.Address{
			StreetNumber: v.Get("address.streetNumber").String(),
			StreetName:   v.Get("address.streetName").String(),
			StreetSuffix: v.Get("address.streetSuffix").String(),
			UnitNumber:   v.Get("address.unitNumber").String(),
			City:         v.Get("address.city").String(),
			Area:         v.Get("address.area").String(),
			Neighborhood: v.Get("address.neighborhood").String(),
			State:        v.Get("address.state").String(),
			Zip:          v.Get("address.zip").String(),
		},
		ListPrice:    v.Get("listPrice").Float(),
		SoldPrice:    v.Get("soldPrice").Float(),
		ListDate:     datePart(v.Get("listDate").String()),
		SoldDate:     datePart(v.Get("soldDate").String()),
		DaysOnMarket: int(v.Get("daysOnMarket").Int()),
		Bedrooms:     int(v.Get("details.numBedrooms").Int()),
		Bathrooms:    v.Get("details.numBathrooms").Float(),
		SqftText:     sqft,
		Sqft:         domain.ParseSqftRange(sqft),
		Latitude:     v.Get("map.latitude").Float(),
		Longitude:    v.Get("map.longitude").Float(),
	}
	v.Get("images").ForEach(func(_, img gjson.Result) bool {
		l.Images = append(l.Images, img.String())
		return true
	})
	return l
}

// datePart trims timestamps like "2025-06-01T00:00:00.000Z" to the date.
func datePart(s string) string {
	if len(s) >= len(domain.DateLayout) && s[4] == '-' {
		return s[:len(domain.DateLayout)]
	}
	return s
}

func firstOf(v gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := v.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
