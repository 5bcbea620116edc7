package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Ensure publishService implements PublishService
var _ driving.PublishService = (*publishService)(nil)

const (
	// publicTokenBytes is the entropy of a public token (256 bits).
	publicTokenBytes = 32

	// maxUpdateAttempts bounds retries after a concurrent modification.
	maxUpdateAttempts = 3
)

// PublishServiceConfig holds configuration for the publish service.
type PublishServiceConfig struct {
	Store driven.ReportStore

	// BaseURL is the public site origin.
	// Example: "https://cma.example.com"
	BaseURL string

	Logger *slog.Logger
	Now    func() time.Time

	// NewToken overrides public token generation.
	NewToken func() (string, error)
}

type publishService struct {
	store    driven.ReportStore
	baseURL  string
	logger   *slog.Logger
	now      func() time.Time
	newToken func() (string, error)
}

// NewPublishService creates a new publish service.
func NewPublishService(cfg PublishServiceConfig) driving.PublishService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewToken == nil {
		cfg.NewToken = GeneratePublicToken
	}
	return &publishService{
		store:    cfg.Store,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		logger:   cfg.Logger,
		now:      cfg.Now,
		newToken: cfg.NewToken,
	}
}

// GeneratePublicToken returns 32 random bytes, hex encoded.
func GeneratePublicToken() (string, error) {
	b := make([]byte, publicTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate public token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Publish marks a report public. An existing token is always reused.
func (s *publishService) Publish(ctx context.Context, reportID string) (*domain.PublishResult, error) {
	var result *domain.PublishResult
	err := s.update(ctx, reportID, func(r *domain.CmaReport) error {
		if r.PublicToken == "" {
			token, err := s.newToken()
			if err != nil {
				return err
			}
			r.PublicToken = token
		}
		now := s.now().UTC()
		r.IsPublished = true
		r.PublishedAt = &now
		result = &domain.PublishResult{
			Token:       r.PublicToken,
			SiteURL:     s.siteURL(r.PublicToken),
			PublishedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("report published", "report_id", reportID)
	return result, nil
}

// Unpublish returns a report to draft. The token is kept for republishing.
func (s *publishService) Unpublish(ctx context.Context, reportID string) error {
	err := s.update(ctx, reportID, func(r *domain.CmaReport) error {
		r.IsPublished = false
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("report unpublished", "report_id", reportID)
	return nil
}

// Status reports the publishing state of a report.
func (s *publishService) Status(ctx context.Context, reportID string) (*domain.PublishStatus, error) {
	if strings.TrimSpace(reportID) == "" {
		return nil, fmt.Errorf("report id is required: %w", domain.ErrInvalidRequest)
	}
	r, err := s.store.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	status := &domain.PublishStatus{
		ReportID:    r.ID,
		State:       r.State(),
		Token:       r.PublicToken,
		PublishedAt: r.PublishedAt,
	}
	if r.PublicToken != "" {
		status.SiteURL = s.siteURL(r.PublicToken)
	}
	return status, nil
}

// update loads the report, applies mutate and persists it, reloading and
// retrying when another writer got there first.
func (s *publishService) update(ctx context.Context, reportID string, mutate func(*domain.CmaReport) error) error {
	if strings.TrimSpace(reportID) == "" {
		return fmt.Errorf("report id is required: %w", domain.ErrInvalidRequest)
	}

	var err error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		var r *domain.CmaReport
		r, err = s.store.Get(ctx, reportID)
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}
		if err = mutate(r); err != nil {
			return err
		}
		err = s.store.Update(ctx, r)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("update report: %w", err)
		}
		s.logger.Debug("report update conflict, retrying", "report_id", reportID, "attempt", attempt)
	}
	return fmt.Errorf("update report after %d attempts: %w", maxUpdateAttempts, err)
}

func (s *publishService) siteURL(token string) string {
	return s.baseURL + "/site/" + token
}
