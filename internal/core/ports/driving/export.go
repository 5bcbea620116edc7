package driving

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// ExportService submits design exports and polls their status.
// Polling cadence and wait budgets belong to the caller.
type ExportService interface {
	// SubmitExport starts an export. The returned job is in progress.
	SubmitExport(ctx context.Context, accessToken, designID, format string) (*domain.ExportJob, error)

	// PollExport performs a single status check.
	PollExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error)
}

// ExportRequest is the body of POST /export.
// @Description Design export request
type ExportRequest struct {
	DesignID string `json:"design_id" validate:"required" example:"DAFVztcvd9z"`
	Format   string `json:"format" validate:"required" example:"pdf"`

	// WaitSeconds makes the server poll until the job finishes or the budget runs out.
	WaitSeconds int `json:"wait_seconds,omitempty" validate:"gte=0,lte=120" example:"30"`
}
