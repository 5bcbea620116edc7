package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore implements driven.ReportStore using PostgreSQL
type ReportStore struct {
	db *DB
}

// NewReportStore creates a new ReportStore
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// Get retrieves a report by ID
func (s *ReportStore) Get(ctx context.Context, id string) (*domain.CmaReport, error) {
	query := `
		SELECT id, title, is_published, public_token, published_at, version, updated_at
		FROM cma_reports
		WHERE id = $1
	`

	var r domain.CmaReport
	var token sql.NullString
	var publishedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID,
		&r.Title,
		&r.IsPublished,
		&token,
		&publishedAt,
		&r.Version,
		&r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	r.PublicToken = token.String
	r.PublishedAt = timeOrNil(publishedAt)
	return &r, nil
}

// Update writes the publishing fields if the stored version matches.
// A public token already in the row is never overwritten. A stale version
// or a token already owned by another report yields domain.ErrConflict.
func (s *ReportStore) Update(ctx context.Context, report *domain.CmaReport) error {
	update := `
		UPDATE cma_reports
		SET is_published = $2,
			public_token = COALESCE(public_token, $3),
			published_at = $4,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $5
		RETURNING version, updated_at
	`
	exists := `SELECT EXISTS(SELECT 1 FROM cma_reports WHERE id = $1)`

	return s.db.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, update,
			report.ID,
			report.IsPublished,
			nullIfEmpty(report.PublicToken),
			nullTime(report.PublishedAt),
			report.Version,
		).Scan(&report.Version, &report.UpdatedAt)
		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("public token taken: %w", domain.ErrConflict)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update report: %w", err)
		}

		var found bool
		if err := tx.QueryRowContext(ctx, exists, report.ID).Scan(&found); err != nil {
			return fmt.Errorf("check report: %w", err)
		}
		if !found {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	})
}
