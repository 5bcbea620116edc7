package domain

import "time"

// PublishState is the lifecycle state of a CMA report
type PublishState string

const (
	PublishStateDraft     PublishState = "draft"
	PublishStatePublished PublishState = "published"
)

// CmaReport is the publishing view of a report record.
// Once PublicToken is set it is never regenerated; unpublishing keeps it
// so a later republish reuses the same public URL.
type CmaReport struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublicToken string     `json:"public_token,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Version is bumped on every update and used for optimistic concurrency
	Version   int64     `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State returns the report's position in the draft/published machine
func (r *CmaReport) State() PublishState {
	if r.IsPublished {
		return PublishStatePublished
	}
	return PublishStateDraft
}

// PublishResult is returned after a successful publish
type PublishResult struct {
	Token       string    `json:"token"`
	SiteURL     string    `json:"site_url"`
	PublishedAt time.Time `json:"published_at"`
}

// PublishStatus describes the current publishing state of a report
type PublishStatus struct {
	ReportID    string       `json:"report_id"`
	State       PublishState `json:"state"`
	Token       string       `json:"token,omitempty"`
	SiteURL     string       `json:"site_url,omitempty"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
}
