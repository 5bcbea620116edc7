package driven

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// ReportStore is the persistence boundary for CMA reports.
// Publishing only ever reads and updates by id.
type ReportStore interface {
	// Get returns domain.ErrNotFound if the report does not exist.
	Get(ctx context.Context, id string) (*domain.CmaReport, error)

	// Update persists the publishing fields of report.
	// The write only succeeds if the stored version still equals report.Version;
	// otherwise domain.ErrConflict is returned. On success report.Version is bumped.
	Update(ctx context.Context, report *domain.CmaReport) error
}
