package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMissingCredentials indicates neither an access token nor an API key was configured
	ErrMissingCredentials = errors.New("tmdb: access token or API key is required")
	// ErrEmptyQuery indicates a search was attempted with an empty term
	ErrEmptyQuery = errors.New("tmdb: search query is empty")
	// ErrInvalidCategory indicates a category outside the closed set
	ErrInvalidCategory = errors.New("tmdb: invalid category")
)

var errMissingResults = errors.New("response has no results array")

// APIError represents a non-success HTTP status from the catalog
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ParseError indicates the catalog answered with a payload that could not be decoded
type ParseError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("tmdb: malformed response from %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decode error
func (e *ParseError) Unwrap() error {
	return e.Err
}
