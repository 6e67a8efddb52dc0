package predictor

import (
	"fmt"

	"github.com/Veraticus/biblio/internal/common"
)

// NetworkError is returned when the transport fails before a response arrives.
type NetworkError struct {
	Err      error
	Endpoint string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches common.ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == common.ErrNetwork
}

// ServiceError is returned for a non-2xx response. Body holds the first
// MaxBodySize bytes of the response verbatim; Truncated reports whether the
// response was longer.
type ServiceError struct {
	Endpoint   string
	Body       string
	StatusCode int
	Truncated  bool
}

func (e *ServiceError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("API error %s (status %d, body truncated at %d bytes): %s",
			e.Endpoint, e.StatusCode, MaxBodySize, e.Body)
	}
	return fmt.Sprintf("API error %s (status %d): %s", e.Endpoint, e.StatusCode, e.Body)
}

// Is matches common.ErrService.
func (e *ServiceError) Is(target error) bool {
	return target == common.ErrService
}

// MalformedResponseError is returned when the body cannot be decoded or lacks
// a required field.
type MalformedResponseError struct {
	Err      error
	Endpoint string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response from %s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid response from %s: %s", e.Endpoint, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is matches common.ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == common.ErrMalformedResponse
}
