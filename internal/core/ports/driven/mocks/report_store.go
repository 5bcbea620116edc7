package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure MockReportStore implements ReportStore
var _ driven.ReportStore = (*MockReportStore)(nil)

// MockReportStore is an in-memory, version-checked ReportStore for testing
type MockReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.CmaReport

	// BeforeUpdate runs inside Update before the version check.
	// Tests use it to simulate a concurrent writer.
	BeforeUpdate func(report *domain.CmaReport)

	// UpdateCalls counts Update invocations, including conflicting ones.
	UpdateCalls int
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{
		reports: make(map[string]*domain.CmaReport),
	}
}

// Put stores a copy of report as-is
func (m *MockReportStore) Put(report *domain.CmaReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *report
	m.reports[report.ID] = &cp
}

func (m *MockReportStore) Get(ctx context.Context, id string) (*domain.CmaReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockReportStore) Update(ctx context.Context, report *domain.CmaReport) error {
	m.mu.Lock()
	m.UpdateCalls++
	hook := m.BeforeUpdate
	m.mu.Unlock()

	if hook != nil {
		hook(report)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.reports[report.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != report.Version {
		return domain.ErrConflict
	}
	report.Version++
	cp := *report
	m.reports[report.ID] = &cp
	return nil
}
