package httpclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 1 << 20

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Service string
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if e.Code != "" {
		return fmt.Sprintf("%s returned status %d (%s): %s", e.Service, e.Status, e.Code, msg)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, msg)
}

// Unwrap maps the status onto the domain error taxonomy.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	case e.Status >= 500 || e.Status == http.StatusTooManyRequests:
		return domain.ErrUpstreamUnavailable
	case e.Status >= 400:
		return domain.ErrInvalidRequest
	default:
		return domain.ErrUpstreamUnavailable
	}
}

// ParseResponseError reads the body of a non-2xx HTTP response and returns a
// *StatusError. The code and message are extracted from the common error
// shapes: {"error":{"code","message"}}, {"code","message"},
// {"error","error_description"} and {"message"}.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &StatusError{Service: serviceName, Status: resp.StatusCode, Message: "failed to read body: " + err.Error()}
	}

	se := &StatusError{Service: serviceName, Status: resp.StatusCode, Body: string(bodyBytes)}
	if !gjson.ValidBytes(bodyBytes) {
		return se
	}

	parsed := gjson.ParseBytes(bodyBytes)
	if e := parsed.Get("error"); e.IsObject() {
		se.Code = e.Get("code").String()
		se.Message = e.Get("message").String()
		return se
	}
	se.Code = firstString(parsed, "code", "error")
	se.Message = firstString(parsed, "message", "error_description")
	return se
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// Unavailable wraps a transport or breaker failure so callers can match
// domain.ErrUpstreamUnavailable. Status errors keep their own mapping and
// the cause stays matchable (context errors, ErrCircuitOpen).
func Unavailable(service string, err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s circuit open: %w: %w", service, domain.ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", service, domain.ErrUpstreamUnavailable, err)
}
