package design

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/cma-core/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven"
)

// Ensure Client implements driven.DesignAPI
var _ driven.DesignAPI = (*Client)(nil)

const serviceName = "design"

// Client is the bearer-authenticated REST client for the design provider.
type Client struct {
	baseURL string
	doer    httpclient.Doer
}

// NewClient creates a REST client rooted at baseURL (e.g. "https://api.canva.com/rest").
func NewClient(baseURL string, doer httpclient.Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

type exportRequest struct {
	DesignID string       `json:"design_id"`
	Format   exportFormat `json:"format"`
}

type exportFormat struct {
	Type string `json:"type"`
}

type exportResponse struct {
	Job struct {
		ID     string   `json:"id"`
		Status string   `json:"status"`
		URLs   []string `json:"urls"`
		Error  *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"job"`
}

func (r *exportResponse) toDomain() *domain.ExportJob {
	job := &domain.ExportJob{
		ID:     r.Job.ID,
		Status: domain.ExportStatus(r.Job.Status),
		URLs:   r.Job.URLs,
	}
	if r.Job.Error != nil {
		job.Error = &domain.ExportError{Code: r.Job.Error.Code, Message: r.Job.Error.Message}
	}
	if job.URLs == nil {
		job.URLs = []string{}
	}
	return job
}

// CreateExport submits an export job.
func (c *Client) CreateExport(ctx context.Context, accessToken, designID string, format domain.ExportFormat) (*domain.ExportJob, error) {
	body, err := json.Marshal(exportRequest{DesignID: designID, Format: exportFormat{Type: string(format)}})
	if err != nil {
		return nil, fmt.Errorf("marshal export request: %w", err)
	}

	var resp exportResponse
	if err := c.do(ctx, accessToken, http.MethodPost, "/v1/exports", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// GetExport fetches the status of an export job.
func (c *Client) GetExport(ctx context.Context, accessToken, jobID string) (*domain.ExportJob, error) {
	var resp exportResponse
	if err := c.do(ctx, accessToken, http.MethodGet, "/v1/exports/"+url.PathEscape(jobID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

type brandTemplatesResponse struct {
	Items []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Thumbnail *struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
	} `json:"items"`
	Continuation string `json:"continuation"`
}

// SearchBrandTemplates searches the brand template catalog.
func (c *Client) SearchBrandTemplates(ctx context.Context, accessToken string, q domain.TemplateQuery) (*domain.TemplateSearchResult, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.Dataset != "" {
		params.Set("dataset", q.Dataset)
	}
	if q.Continuation != "" {
		params.Set("continuation", q.Continuation)
	}
	path := "/v1/brand-templates"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp brandTemplatesResponse
	if err := c.do(ctx, accessToken, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	result := &domain.TemplateSearchResult{
		Items:        make([]domain.Template, 0, len(resp.Items)),
		Continuation: resp.Continuation,
	}
	for _, item := range resp.Items {
		t := domain.Template{ID: item.ID, Title: item.Title}
		if item.Thumbnail != nil {
			t.ThumbnailURL = item.Thumbnail.URL
		}
		result.Items = append(result.Items, t)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, accessToken, method, path string, body *bytes.Reader, out any) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return httpclient.Unavailable(serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w: %v", serviceName, domain.ErrUpstreamUnavailable, err)
	}
	return nil
}
