package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Mock implementations for local testing

// MockDesignAuthorizer is a mock implementation of driven.DesignAuthorizer
type MockDesignAuthorizer struct {
	mock.Mock
}

var _ driven.DesignAuthorizer = (*MockDesignAuthorizer)(nil)

func (m *MockDesignAuthorizer) AuthCodeURL(state, verifier string) string {
	args := m.Called(state, verifier)
	return args.String(0)
}

func (m *MockDesignAuthorizer) Exchange(ctx context.Context, code, verifier string) (*domain.TokenPair, error) {
	args := m.Called(ctx, code, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

// MockDesignAPI is a mock implementation of driven.DesignAPI
type MockDesignAPI struct {
	mock.Mock
}

var _ driven.DesignAPI = (*MockDesignAPI)(nil)

func (m *MockDesignAPI) CreateExport(ctx context.Context, accessToken, designID string, format domain.ExportFormat) (*domain.ExportJob, error) {
	args := m.Called(ctx, accessToken, designID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockDesignAPI) GetExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error) {
	args := m.Called(ctx, accessToken, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockDesignAPI) SearchBrandTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error) {
	args := m.Called(ctx, accessToken, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TemplateSearchResult), args.Error(1)
}

// MockListingsAPI is a mock implementation of driven.ListingsAPI
type MockListingsAPI struct {
	mock.Mock
}

var _ driven.ListingsAPI = (*MockListingsAPI)(nil)

func (m *MockListingsAPI) Search(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingsResult), args.Error(1)
}

func (m *MockListingsAPI) GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error) {
	args := m.Called(ctx, mlsNumber, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingsAPI) SimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error) {
	args := m.Called(ctx, mlsNumber, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingsAPI) AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}
