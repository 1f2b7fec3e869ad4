package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrUnauthorized indicates the backend rejected the bearer token.
// Callers should clear the stored session and return to login.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPError represents a non-2xx response with the message extracted
// from the structured error body, falling back to the status text.
type HTTPError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("HTTP %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Retryable reports whether a request error is worth retrying:
// rate limits, server-side failures, and network-level errors.
// Client-side errors (4xx other than 429) are permanent.
func Retryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests ||
			httpErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
