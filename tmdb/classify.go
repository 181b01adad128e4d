package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Outcome is the coarse result of a catalog fetch
type Outcome int

const (
	// OutcomeOK is a successful fetch with at least one movie
	OutcomeOK Outcome = iota
	// OutcomeEmpty is a successful fetch with zero movies. It is not an error.
	OutcomeEmpty
	// OutcomeFailed is a fetch that produced a Failure
	OutcomeFailed
)

// String returns the string representation of an Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureKind classifies why a fetch failed
type FailureKind int

const (
	// FailureTransport means the request could not be sent or completed
	FailureTransport FailureKind = iota + 1
	// FailureHTTPStatus means the catalog answered with a non-success status
	FailureHTTPStatus
	// FailureParse means the payload could not be decoded
	FailureParse
)

// String returns the string representation of a FailureKind
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureHTTPStatus:
		return "http_status"
	case FailureParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Failure is a classified fetch error suitable for display
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
}

// Error implements the error interface
func (f *Failure) Error() string {
	switch f.Kind {
	case FailureHTTPStatus:
		return fmt.Sprintf("Failed to fetch movies (Status: %d)", f.StatusCode)
	case FailureParse:
		return "Received an unreadable response. Please try again later..."
	default:
		return "Error fetching movies. Please try again later..."
	}
}

// Classify maps the result of a catalog call onto the outcome taxonomy.
// The returned Failure is nil unless the outcome is OutcomeFailed.
func Classify(results []Movie, err error) (Outcome, *Failure) {
	if err == nil {
		if len(results) == 0 {
			return OutcomeEmpty, nil
		}
		return OutcomeOK, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return OutcomeFailed, &Failure{Kind: FailureHTTPStatus, StatusCode: apiErr.StatusCode, Message: msg}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return OutcomeFailed, &Failure{Kind: FailureParse, Message: parseErr.Error()}
	}

	return OutcomeFailed, &Failure{Kind: FailureTransport, Message: err.Error()}
}
