package driving

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// PublishService toggles a report between draft and published.
// A report's public token is issued once and survives unpublish/republish.
type PublishService interface {
	Publish(ctx context.Context, reportID string) (*domain.PublishResult, error)
	Unpublish(ctx context.Context, reportID string) error
	Status(ctx context.Context, reportID string) (*domain.PublishStatus, error)
}
