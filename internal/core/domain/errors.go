package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a concurrent update changed the resource first
	ErrConflict = errors.New("conflict")

	// ErrInvalidRequest indicates the caller omitted or malformed required fields
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidState indicates the OAuth state parameter is corrupted, forged or expired
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrTokenExchange indicates the provider rejected the authorization code exchange
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrUnauthenticated indicates a missing or expired bearer token
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUpstreamUnavailable indicates a network failure or 5xx from a third-party API
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
