package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Ensure templateService implements TemplateService
var _ driving.TemplateService = (*templateService)(nil)

type templateService struct {
	api driven.DesignAPI
}

// NewTemplateService creates a new template catalog service.
func NewTemplateService(api driven.DesignAPI) driving.TemplateService {
	return &templateService{api: api}
}

// SearchTemplates fetches one page of brand templates.
// The continuation token is passed through untouched.
func (s *templateService) SearchTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", q.Dataset, err)
	}

	result, err := s.api.SearchBrandTemplates(ctx, accessToken, q)
	if err != nil {
		return nil, fmt.Errorf("search brand templates: %w", err)
	}
	if result.Items == nil {
		result.Items = []domain.Template{}
	}
	return result, nil
}
