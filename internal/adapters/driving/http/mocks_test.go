package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Mock services for testing

type mockAuthFlowService struct {
	beginFn    func(ctx context.Context, returnTo string) (*driving.AuthorizeResponse, error)
	completeFn func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error)
}

func (m *mockAuthFlowService) BeginAuthorization(ctx context.Context, returnTo string) (*driving.AuthorizeResponse, error) {
	if m.beginFn != nil {
		return m.beginFn(ctx, returnTo)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthFlowService) CompleteAuthorization(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

type mockExportService struct {
	submitFn func(ctx context.Context, accessToken, designID, format string) (*domain.ExportJob, error)
	pollFn   func(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error)
}

func (m *mockExportService) SubmitExport(ctx context.Context, accessToken, designID, format string) (*domain.ExportJob, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, accessToken, designID, format)
	}
	return nil, errors.New("not implemented")
}

func (m *mockExportService) PollExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error) {
	if m.pollFn != nil {
		return m.pollFn(ctx, accessToken, jobID)
	}
	return nil, errors.New("not implemented")
}

type mockTemplateService struct {
	searchFn func(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error)
}

func (m *mockTemplateService) SearchTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, accessToken, q)
	}
	return nil, errors.New("not implemented")
}

type mockListingsService struct {
	searchFn       func(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error)
	statsFn        func(ctx context.Context, req driving.MarketStatsRequest) (*driving.MarketStatsResponse, error)
	getFn          func(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error)
	similarFn      func(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error)
	autocompleteFn func(ctx context.Context, prefix string) ([]domain.Suggestion, error)
}

func (m *mockListingsService) SearchListings(ctx context.Context, q domain.ListingsQuery) (*domain.ListingsResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, errors.New("not implemented")
}

func (m *mockListingsService) MarketStats(ctx context.Context, req driving.MarketStatsRequest) (*driving.MarketStatsResponse, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockListingsService) GetListing(ctx context.Context, mlsNumber, boardID string) (*domain.Listing, error) {
	if m.getFn != nil {
		return m.getFn(ctx, mlsNumber, boardID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockListingsService) GetSimilarListings(ctx context.Context, mlsNumber string, opts domain.SimilarOptions) ([]domain.Listing, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, mlsNumber, opts)
	}
	return nil, errors.New("not implemented")
}

func (m *mockListingsService) AutocompleteLocations(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
	if m.autocompleteFn != nil {
		return m.autocompleteFn(ctx, prefix)
	}
	return nil, errors.New("not implemented")
}

type mockPublishService struct {
	publishFn   func(ctx context.Context, reportID string) (*domain.PublishResult, error)
	unpublishFn func(ctx context.Context, reportID string) error
	statusFn    func(ctx context.Context, reportID string) (*domain.PublishStatus, error)
}

func (m *mockPublishService) Publish(ctx context.Context, reportID string) (*domain.PublishResult, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, reportID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPublishService) Unpublish(ctx context.Context, reportID string) error {
	if m.unpublishFn != nil {
		return m.unpublishFn(ctx, reportID)
	}
	return errors.New("not implemented")
}

func (m *mockPublishService) Status(ctx context.Context, reportID string) (*domain.PublishStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, reportID)
	}
	return nil, errors.New("not implemented")
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// Test helpers

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(services Services) *Server {
	if services.AuthFlow == nil {
		services.AuthFlow = &mockAuthFlowService{}
	}
	if services.Exports == nil {
		services.Exports = &mockExportService{}
	}
	if services.Templates == nil {
		services.Templates = &mockTemplateService{}
	}
	if services.Listings == nil {
		services.Listings = &mockListingsService{}
	}
	if services.Publisher == nil {
		services.Publisher = &mockPublishService{}
	}

	cfg := DefaultConfig()
	cfg.Version = "test"
	cfg.ExportPollInterval = 5 * time.Millisecond
	cfg.Logger = discardLogger
	return NewServer(cfg, services, NewTokenStore(mocks.NewMockTokenSealer(), false), nil, nil)
}

// withToken attaches a valid design token cookie to req
func withToken(req *http.Request, accessToken string) *http.Request {
	sealed, err := mocks.NewMockTokenSealer().Seal(&domain.TokenPair{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	if err != nil {
		panic(err)
	}
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: sealed})
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
