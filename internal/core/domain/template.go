package domain

// Template is a brand template from the design provider catalog
type Template struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// TemplateQuery filters a catalog search.
// Continuation must be the exact token from a previous result.
type TemplateQuery struct {
	Query        string `json:"query,omitempty"`
	Dataset      string `json:"dataset,omitempty"`
	Continuation string `json:"continuation,omitempty"`
}

// Template dataset filters understood by the provider
const (
	TemplateDatasetAny      = "any"
	TemplateDatasetNonEmpty = "non_empty"
	TemplateDatasetEmpty    = "empty"
)

// Validate rejects dataset values the provider does not accept
func (q TemplateQuery) Validate() error {
	switch q.Dataset {
	case "", TemplateDatasetAny, TemplateDatasetNonEmpty, TemplateDatasetEmpty:
		return nil
	default:
		return ErrInvalidRequest
	}
}

// TemplateSearchResult is one page of catalog results.
// An empty Continuation means there are no more pages.
type TemplateSearchResult struct {
	Items        []Template `json:"items"`
	Continuation string     `json:"continuation,omitempty"`
}
