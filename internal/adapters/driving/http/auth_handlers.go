package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// DesignErrorParam carries auth flow failures back to the dashboard
const DesignErrorParam = "design_error"

// codeSessionError is reported when the tokens cannot be stored in the cookie
const codeSessionError = "session_error"

// handleAuthStart godoc
// @Summary      Connect the design provider
// @Description  Starts the OAuth2 + PKCE flow. Browsers are redirected to the provider; clients sending Accept: application/json receive the URL instead.
// @Tags         Design Auth
// @Produce      json
// @Param        returnTo  query     string  false  "Local path to return to after authorization"
// @Success      200       {object}  driving.AuthorizeResponse
// @Success      302       "Redirect to the provider"
// @Failure      500       {object}  ErrorResponse
// @Router       /auth/start [get]
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authFlow.BeginAuthorization(r.Context(), r.URL.Query().Get("returnTo"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	http.Redirect(w, r, resp.AuthorizationURL, http.StatusFound)
}

// handleAuthCallback godoc
// @Summary      OAuth callback
// @Description  Receives the provider redirect, exchanges the code and stores the tokens in an HTTP-only cookie. Every outcome is a redirect; failures land on the dashboard with design_error set.
// @Tags         Design Auth
// @Param        code               query  string  false  "Authorization code"
// @Param        state              query  string  true   "Signed state"
// @Param        error              query  string  false  "Provider error code"
// @Param        error_description  query  string  false  "Provider error description"
// @Success      302  "Redirect to the return path or the dashboard"
// @Router       /auth/callback [get]
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := driving.CallbackRequest{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}

	resp, err := s.authFlow.CompleteAuthorization(r.Context(), req)
	if err != nil {
		code := driving.OAuthCodeExchangeFailed
		var oauthErr *driving.OAuthError
		if errors.As(err, &oauthErr) && oauthErr.Code != "" {
			code = oauthErr.Code
		}
		s.logger.Warn("design authorization failed",
			"request_id", GetRequestID(r.Context()),
			"code", code,
			"error", err,
		)
		http.Redirect(w, r, s.dashboardErrorURL(code), http.StatusFound)
		return
	}

	if err := s.tokens.Set(w, resp.Token); err != nil {
		s.logger.Error("failed to store design token", "error", err)
		http.Redirect(w, r, s.dashboardErrorURL(codeSessionError), http.StatusFound)
		return
	}
	returnTo := resp.ReturnTo
	if !domain.IsLocalPath(returnTo) {
		returnTo = s.dashboardPath
	}
	http.Redirect(w, r, returnTo, http.StatusFound)
}

// handleAuthLogout godoc
// @Summary      Disconnect the design provider
// @Description  Clears the token cookie
// @Tags         Design Auth
// @Success      204  "Disconnected"
// @Router       /auth/logout [post]
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	s.tokens.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboardErrorURL(code string) string {
	u, err := url.Parse(s.dashboardPath)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set(DesignErrorParam, code)
	u.RawQuery = q.Encode()
	return u.String()
}
