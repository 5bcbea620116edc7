package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
	"github.com/custodia-labs/cma-core/internal/core/services"
)

// MaxExportWait bounds how long POST /export may block
const MaxExportWait = 120 * time.Second

// handleSubmitExport godoc
// @Summary      Export a design
// @Description  Starts a design export. With wait_seconds set the server polls until the job finishes or the budget runs out; a timed-out job is reported as failed with timed_out=true.
// @Tags         Design
// @Accept       json
// @Produce      json
// @Param        request  body      driving.ExportRequest  true  "Export request"
// @Success      200      {object}  domain.ExportJob       "Finished job"
// @Success      202      {object}  domain.ExportJob       "Job still in progress"
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /export [post]
func (s *Server) handleSubmitExport(w http.ResponseWriter, r *http.Request) {
	var req driving.ExportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.writeDesignError(w, r, err)
		return
	}
	token := GetDesignToken(r.Context())

	job, err := s.exports.SubmitExport(r.Context(), token.AccessToken, req.DesignID, req.Format)
	if err != nil {
		s.writeDesignError(w, r, err)
		return
	}

	if req.WaitSeconds > 0 && !job.Status.IsTerminal() {
		wait := time.Duration(req.WaitSeconds) * time.Second
		if wait > MaxExportWait {
			wait = MaxExportWait
		}
		ctx, cancel := context.WithTimeout(r.Context(), wait)
		defer cancel()

		finished, err := services.AwaitExport(ctx, s.exports, token.AccessToken, job.ID, s.exportPollInterval)
		if err != nil {
			s.writeDesignError(w, r, err)
			return
		}
		if finished.DesignID == "" {
			finished.DesignID = job.DesignID
			finished.Format = job.Format
		}
		job = finished
	}

	writeJSON(w, exportStatusCode(job), job)
}

// handlePollExport godoc
// @Summary      Poll an export job
// @Description  Performs one status check against the provider
// @Tags         Design
// @Produce      json
// @Param        jobId  path      string  true  "Export job ID"
// @Success      200    {object}  domain.ExportJob  "Finished job"
// @Success      202    {object}  domain.ExportJob  "Job still in progress"
// @Failure      401    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse
// @Router       /export/{jobId} [get]
func (s *Server) handlePollExport(w http.ResponseWriter, r *http.Request) {
	token := GetDesignToken(r.Context())
	job, err := s.exports.PollExport(r.Context(), token.AccessToken, r.PathValue("jobId"))
	if err != nil {
		s.writeDesignError(w, r, err)
		return
	}
	writeJSON(w, exportStatusCode(job), job)
}

func exportStatusCode(job *domain.ExportJob) int {
	if job.Status.IsTerminal() {
		return http.StatusOK
	}
	return http.StatusAccepted
}

// handleSearchTemplates godoc
// @Summary      Search brand templates
// @Description  Returns one page of brand templates. Pass the returned continuation back unchanged to fetch the next page; an empty continuation means the last page.
// @Tags         Design
// @Produce      json
// @Param        query         query     string  false  "Free-text search"
// @Param        dataset       query     string  false  "any, non_empty or empty"
// @Param        continuation  query     string  false  "Opaque token from the previous page"
// @Success      200           {object}  domain.TemplateSearchResult
// @Failure      400           {object}  ErrorResponse
// @Failure      401           {object}  ErrorResponse
// @Failure      502           {object}  ErrorResponse
// @Router       /templates [get]
func (s *Server) handleSearchTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token := GetDesignToken(r.Context())

	result, err := s.templates.SearchTemplates(r.Context(), token.AccessToken, domain.TemplateQuery{
		Query:        q.Get("query"),
		Dataset:      q.Get("dataset"),
		Continuation: q.Get("continuation"),
	})
	if err != nil {
		s.writeDesignError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeDesignError drops the token cookie when the provider no longer
// accepts it, so the dashboard shows the connect button again.
func (s *Server) writeDesignError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		s.tokens.Clear(w)
	}
	s.writeServiceError(w, r, err)
}
