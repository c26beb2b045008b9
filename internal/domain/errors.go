package domain

import (
	"errors"
	"fmt"
)

// Fallback messages used when the upstream body carries none
const (
	MsgWeatherFailed    = "Failed to fetch weather data"
	MsgAirQualityFailed = "Failed to fetch air quality data"
)

// NetworkError is a transport-level failure: no response was received
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError means a response arrived but was unusable: a non-success
// status, missing fields or a malformed body.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SearchError is the single human-readable error surfaced by a search
type SearchError struct {
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error { return e.Err }

// NewSearchError wraps a fetcher error, keeping its message
func NewSearchError(err error) *SearchError {
	var se *SearchError
	if errors.As(err, &se) {
		return se
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return &SearchError{Message: "Network error: " + ne.Err.Error(), Err: err}
	}
	return &SearchError{Message: err.Error(), Err: err}
}
