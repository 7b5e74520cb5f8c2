package client

import (
	"errors"
	"fmt"
)

// APIError represents a non-2xx HTTP response from the API. Message is the
// server's human-readable error field and is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// InvalidResponseError is the client-side integrity check: a nominally
// successful response whose shape violates the API contract (missing
// envelope, missing user or tokens). It marks a programming or contract
// bug, never a user mistake.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return "invalid response: " + e.Reason
}

// IsStatus returns true if err (or any wrapped error) is an APIError with
// the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsInvalidResponse returns true if err (or any wrapped error) is an
// InvalidResponseError.
func IsInvalidResponse(err error) bool {
	var invErr *InvalidResponseError
	return errors.As(err, &invErr)
}

// Message extracts a display-ready message from a client error. Remote
// rejections surface the server's message verbatim; everything else
// collapses to the fallback so transport internals never reach the user.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
