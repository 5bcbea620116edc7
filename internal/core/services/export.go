package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Ensure exportService implements ExportService
var _ driving.ExportService = (*exportService)(nil)

// DefaultExportRecordTTL bounds how long submitted job metadata is remembered.
const DefaultExportRecordTTL = time.Hour

// ExportServiceConfig holds configuration for the export service.
type ExportServiceConfig struct {
	API driven.DesignAPI

	// Jobs is optional. Without it polls return only what the provider reports.
	Jobs      driven.ExportJobStore
	RecordTTL time.Duration
	Logger    *slog.Logger
}

type exportService struct {
	api       driven.DesignAPI
	jobs      driven.ExportJobStore
	recordTTL time.Duration
	logger    *slog.Logger
}

// NewExportService creates a new export service.
func NewExportService(cfg ExportServiceConfig) driving.ExportService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RecordTTL <= 0 {
		cfg.RecordTTL = DefaultExportRecordTTL
	}
	return &exportService{
		api:       cfg.API,
		jobs:      cfg.Jobs,
		recordTTL: cfg.RecordTTL,
		logger:    cfg.Logger,
	}
}

// SubmitExport starts a provider export job.
func (s *exportService) SubmitExport(ctx context.Context, accessToken, designID, format string) (*domain.ExportJob, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthenticated
	}
	designID = strings.TrimSpace(designID)
	if designID == "" {
		return nil, fmt.Errorf("design id is required: %w", domain.ErrInvalidRequest)
	}
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return nil, fmt.Errorf("unsupported export format %q: %w", format, err)
	}

	job, err := s.api.CreateExport(ctx, accessToken, designID, f)
	if err != nil {
		return nil, fmt.Errorf("create export: %w", err)
	}
	job.DesignID = designID
	job.Format = f
	if job.Status == "" {
		job.Status = domain.ExportStatusInProgress
	}

	if s.jobs != nil {
		record := &domain.ExportJobRecord{JobID: job.ID, DesignID: designID, Format: f}
		if err := s.jobs.Save(ctx, record, s.recordTTL); err != nil {
			// Polling still works without the record.
			s.logger.Warn("failed to save export job record", "job_id", job.ID, "error", err)
		}
	}

	s.logger.Info("export submitted", "job_id", job.ID, "design_id", designID, "format", f)
	return job, nil
}

// PollExport issues exactly one status request.
func (s *exportService) PollExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(jobID) == "" {
		return nil, fmt.Errorf("job id is required: %w", domain.ErrInvalidRequest)
	}

	job, err := s.api.GetExport(ctx, accessToken, jobID)
	if err != nil {
		return nil, fmt.Errorf("get export: %w", err)
	}
	if job.Status == domain.ExportStatusFailed || job.URLs == nil {
		job.URLs = []string{}
	}

	if s.jobs != nil {
		record, err := s.jobs.Get(ctx, jobID)
		if err != nil {
			s.logger.Warn("failed to load export job record", "job_id", jobID, "error", err)
		} else if record != nil {
			job.DesignID = record.DesignID
			job.Format = record.Format
		}
	}
	return job, nil
}

// AwaitExport polls until the job reaches a terminal status or ctx is done.
// When ctx ends first the last known job is returned marked failed with
// TimedOut set; the provider job itself is left running.
func AwaitExport(ctx context.Context, svc driving.ExportService, accessToken, jobID string, interval time.Duration) (*domain.ExportJob, error) {
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := &domain.ExportJob{ID: jobID, Status: domain.ExportStatusInProgress}
	for {
		job, err := svc.PollExport(ctx, accessToken, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return timedOut(last), nil
			}
			return nil, err
		}
		if job.Status.IsTerminal() {
			return job, nil
		}
		last = job

		select {
		case <-ctx.Done():
			return timedOut(last), nil
		case <-ticker.C:
		}
	}
}

func timedOut(job *domain.ExportJob) *domain.ExportJob {
	out := *job
	out.Status = domain.ExportStatusFailed
	out.URLs = []string{}
	out.TimedOut = true
	return &out
}
