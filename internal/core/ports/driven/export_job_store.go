package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// ExportJobStore remembers what was submitted for an export job so that
// status polls can return a complete ExportJob. Records are short-lived.
type ExportJobStore interface {
	Save(ctx context.Context, record *domain.ExportJobRecord, ttl time.Duration) error

	// Get returns nil, nil if the job is unknown or expired.
	Get(ctx context.Context, jobID string) (*domain.ExportJobRecord, error)
}
