package driving

import (
	"context"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// TemplateService searches the design provider's brand template catalog.
type TemplateService interface {
	SearchTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error)
}
