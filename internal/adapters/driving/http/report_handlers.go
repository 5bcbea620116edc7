package http

import (
	"net/http"
)

// handlePublishStatus godoc
// @Summary      Report publish status
// @Description  Returns whether the report is a draft or published, with its public token and site URL once one has been issued
// @Tags         Reports
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.PublishStatus
// @Failure      404  {object}  ErrorResponse
// @Router       /reports/{id}/publish [get]
func (s *Server) handlePublishStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.publisher.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handlePublish godoc
// @Summary      Publish report
// @Description  Publishes the report as a public site. The public token is issued on first publish and reused afterwards.
// @Tags         Reports
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.PublishResult
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/{id}/publish [post]
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	result, err := s.publisher.Publish(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleUnpublish godoc
// @Summary      Unpublish report
// @Description  Returns the report to draft. The public token is kept for a later republish.
// @Tags         Reports
// @Param        id   path      string  true  "Report ID"
// @Success      204  "Unpublished"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /reports/{id}/publish [delete]
func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	if err := s.publisher.Unpublish(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
