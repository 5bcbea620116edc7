package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExportJobStore = (*ExportJobStore)(nil)

// exportJobPrefix is the key prefix for export job records
const exportJobPrefix = "export:job:"

// ExportJobStore implements driven.ExportJobStore using Redis.
// Records use Redis TTL for automatic expiration.
type ExportJobStore struct {
	client *redis.Client
}

// NewExportJobStore creates a new Redis-backed ExportJobStore
func NewExportJobStore(client *redis.Client) *ExportJobStore {
	return &ExportJobStore{client: client}
}

// Save stores a record for ttl
func (s *ExportJobStore) Save(ctx context.Context, record *domain.ExportJobRecord, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal export job: %w", err)
	}

	if err := s.client.Set(ctx, exportJobPrefix+record.JobID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save export job: %w", err)
	}
	return nil
}

// Get retrieves a record by job ID. Unknown or expired jobs return nil, nil.
func (s *ExportJobStore) Get(ctx context.Context, jobID string) (*domain.ExportJobRecord, error) {
	data, err := s.client.Get(ctx, exportJobPrefix+jobID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}

	var record domain.ExportJobRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export job: %w", err)
	}
	return &record, nil
}
