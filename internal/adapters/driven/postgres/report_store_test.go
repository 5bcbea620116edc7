package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

func newMockStore(t *testing.T) (*ReportStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewReportStore(NewDB(conn)), mock
}

var (
	selectReport = regexp.QuoteMeta(`SELECT id, title, is_published, public_token, published_at, version, updated_at`)
	updateReport = regexp.QuoteMeta(`UPDATE cma_reports`)
	reportExists = regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM cma_reports WHERE id = $1)`)
)

func TestReportStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	updated := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	published := updated.Add(-time.Hour)

	mock.ExpectQuery(selectReport).WithArgs("R1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "is_published", "public_token", "published_at", "version", "updated_at"}).
			AddRow("R1", "12 Main St", true, "abc123", published, int64(4), updated),
	)

	r, err := store.Get(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "12 Main St", r.Title)
	assert.True(t, r.IsPublished)
	assert.Equal(t, "abc123", r.PublicToken)
	require.NotNil(t, r.PublishedAt)
	assert.Equal(t, published, *r.PublishedAt)
	assert.Equal(t, int64(4), r.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Get_Draft(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(selectReport).WithArgs("R2").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "is_published", "public_token", "published_at", "version", "updated_at"}).
			AddRow("R2", "", false, nil, nil, int64(0), time.Now()),
	)

	r, err := store.Get(context.Background(), "R2")
	require.NoError(t, err)
	assert.Empty(t, r.PublicToken)
	assert.Nil(t, r.PublishedAt)
	assert.Equal(t, domain.PublishStateDraft, r.State())
}

func TestReportStore_Get_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(selectReport).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_Update(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	report := &domain.CmaReport{ID: "R1", IsPublished: true, PublicToken: "tok", PublishedAt: &now, Version: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).
		WithArgs("R1", true, "tok", now, int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(3), now))
	mock.ExpectCommit()

	require.NoError(t, store.Update(context.Background(), report))
	assert.Equal(t, int64(3), report.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Update_Unpublish(t *testing.T) {
	store, mock := newMockStore(t)
	report := &domain.CmaReport{ID: "R1", Version: 5}

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).
		WithArgs("R1", false, nil, nil, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(6), time.Now()))
	mock.ExpectCommit()

	require.NoError(t, store.Update(context.Background(), report))
	assert.Equal(t, int64(6), report.Version)
}

func TestReportStore_Update_Conflict(t *testing.T) {
	store, mock := newMockStore(t)
	report := &domain.CmaReport{ID: "R1", Version: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(reportExists).WithArgs("R1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := store.Update(context.Background(), report)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(1), report.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Update_TokenCollision(t *testing.T) {
	store, mock := newMockStore(t)
	report := &domain.CmaReport{ID: "R1", IsPublished: true, PublicToken: "taken", Version: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	err := store.Update(context.Background(), report)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(2), report.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Update_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(reportExists).WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := store.Update(context.Background(), &domain.CmaReport{ID: "gone"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_Update_DatabaseError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(updateReport).WillReturnError(boom)
	mock.ExpectRollback()

	err := store.Update(context.Background(), &domain.CmaReport{ID: "R1"})
	assert.ErrorIs(t, err, boom)
}
