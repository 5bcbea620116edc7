package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure MockExportJobStore implements ExportJobStore
var _ driven.ExportJobStore = (*MockExportJobStore)(nil)

// MockExportJobStore is an in-memory ExportJobStore for testing. TTLs are ignored.
type MockExportJobStore struct {
	mu      sync.RWMutex
	records map[string]*domain.ExportJobRecord
}

// NewMockExportJobStore creates a new MockExportJobStore
func NewMockExportJobStore() *MockExportJobStore {
	return &MockExportJobStore{
		records: make(map[string]*domain.ExportJobRecord),
	}
}

func (m *MockExportJobStore) Save(ctx context.Context, record *domain.ExportJobRecord, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records[record.JobID] = &cp
	return nil
}

func (m *MockExportJobStore) Get(ctx context.Context, jobID string) (*domain.ExportJobRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[jobID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}
