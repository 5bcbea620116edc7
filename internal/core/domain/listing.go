package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for listing date filters
const DateLayout = "2006-01-02"

// Listing statuses as understood by the listings API
const (
	ListingStatusActive   = "A"
	ListingStatusUnlisted = "U"

	LastStatusSold   = "Sld"
	LastStatusLeased = "Lsd"
	LastStatusNew    = "New"
)

// DateRange is an inclusive [Start, End] window of calendar dates
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LastMonths returns the window ending on now's date and starting exactly
// months calendar months earlier. The day is clamped to the end of the
// target month (Mar 31 minus one month is Feb 28/29).
func LastMonths(now time.Time, months int) DateRange {
	y, m, d := now.Date()
	target := time.Date(y, m-time.Month(months), 1, 0, 0, 0, 0, now.Location())
	last := daysIn(target.Year(), target.Month(), now.Location())
	if d > last {
		d = last
	}
	start := time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, now.Location())
	return DateRange{
		Start: start.Format(DateLayout),
		End:   now.Format(DateLayout),
	}
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Validate checks both bounds are YYYY-MM-DD and ordered
func (r DateRange) Validate() error {
	if r.Start == "" && r.End == "" {
		return nil
	}
	var start, end time.Time
	var err error
	if r.Start != "" {
		if start, err = time.Parse(DateLayout, r.Start); err != nil {
			return ErrInvalidRequest
		}
	}
	if r.End != "" {
		if end, err = time.Parse(DateLayout, r.End); err != nil {
			return ErrInvalidRequest
		}
	}
	if r.Start != "" && r.End != "" && end.Before(start) {
		return ErrInvalidRequest
	}
	return nil
}

// ListingsQuery is a normalized search against the listings API.
// It is a pure value with no identity.
type ListingsQuery struct {
	Cities        []string  `json:"cities,omitempty"`
	Areas         []string  `json:"areas,omitempty"`
	Neighborhoods []string  `json:"neighborhoods,omitempty"`
	PropertyTypes []string  `json:"property_types,omitempty"`
	Classes       []string  `json:"classes,omitempty"`
	Statuses      []string  `json:"statuses,omitempty"`
	LastStatuses  []string  `json:"last_statuses,omitempty"`
	DateRange     DateRange `json:"date_range"`

	// Statistics are metric names such as "avg-soldPrice" or "med-daysOnMarket"
	Statistics []string `json:"statistics,omitempty"`

	// IncludeListings=false fetches only the aggregate
	IncludeListings bool `json:"include_listings"`

	ResultsPerPage int    `json:"results_per_page,omitempty"`
	PageNum        int    `json:"page_num,omitempty"`
	SortBy         string `json:"sort_by,omitempty"`
	HasImages      *bool  `json:"has_images,omitempty"`
	MinPrice       int    `json:"min_price,omitempty"`
	MaxPrice       int    `json:"max_price,omitempty"`
	MinBedrooms    int    `json:"min_bedrooms,omitempty"`
	BoardID        string `json:"board_id,omitempty"`
}

// Aggregate is one statistic computed by the listings API
type Aggregate struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Avg    float64  `json:"avg"`
	Median *float64 `json:"median,omitempty"`
}

// MarketStatistics is derived on every query and never cached
type MarketStatistics struct {
	SoldCount   int                  `json:"sold_count"`
	ActiveCount int                  `json:"active_count"`
	Metrics     map[string]Aggregate `json:"metrics"`
}

// ListingsResult is the normalized response of a listings search
type ListingsResult struct {
	Count      int                  `json:"count"`
	Statistics map[string]Aggregate `json:"statistics,omitempty"`
	Listings   []Listing            `json:"listings,omitempty"`
	Page       int                  `json:"page,omitempty"`
	NumPages   int                  `json:"num_pages,omitempty"`
}

// Address is a listing's location
type Address struct {
	StreetNumber string `json:"street_number,omitempty"`
	StreetName   string `json:"street_name,omitempty"`
	StreetSuffix string `json:"street_suffix,omitempty"`
	UnitNumber   string `json:"unit_number,omitempty"`
	City         string `json:"city,omitempty"`
	Area         string `json:"area,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
}

// Listing is a normalized MLS listing
type Listing struct {
	MLSNumber    string    `json:"mls_number"`
	BoardID      string    `json:"board_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	LastStatus   string    `json:"last_status,omitempty"`
	Class        string    `json:"class,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`
	Address      Address   `json:"address"`
	ListPrice    float64   `json:"list_price"`
	SoldPrice    float64   `json:"sold_price,omitempty"`
	ListDate     string    `json:"list_date,omitempty"`
	SoldDate     string    `json:"sold_date,omitempty"`
	DaysOnMarket int       `json:"days_on_market,omitempty"`
	Bedrooms     int       `json:"bedrooms,omitempty"`
	Bathrooms    float64   `json:"bathrooms,omitempty"`
	SqftText     string    `json:"sqft_text,omitempty"`
	Sqft         SqftRange `json:"sqft"`
	Images       []string  `json:"images,omitempty"`
	Latitude     float64   `json:"latitude,omitempty"`
	Longitude    float64   `json:"longitude,omitempty"`
}

// SimilarOptions narrows a similar-listings lookup
type SimilarOptions struct {
	Radius  float64  `json:"radius,omitempty"`
	SortBy  string   `json:"sort_by,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	BoardID string   `json:"board_id,omitempty"`
}

// Suggestion is a location autocomplete entry
type Suggestion struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	City  string `json:"city,omitempty"`
	Area  string `json:"area,omitempty"`
	State string `json:"state,omitempty"`
}

// SqftRange is the parsed form of the provider's free-text sqft bucket
type SqftRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// numberPattern matches plain numbers and numbers with thousands separators.
var numberPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// ParseSqftRange parses values like "1500-1999", "1,500-1,999", "800" or "5000+".
// A single number gives min=max=avg; no number gives all zeros.
// The average of a range is the arithmetic mean of its bounds.
func ParseSqftRange(s string) SqftRange {
	var nums []float64
	for _, m := range numberPattern.FindAllString(s, 2) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}

	switch len(nums) {
	case 0:
		return SqftRange{}
	case 1:
		return SqftRange{Min: nums[0], Max: nums[0], Avg: nums[0]}
	default:
		lo, hi := nums[0], nums[1]
		if hi < lo {
			lo, hi = hi, lo
		}
		return SqftRange{Min: lo, Max: hi, Avg: (lo + hi) / 2}
	}
}
