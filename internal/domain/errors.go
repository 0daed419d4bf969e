package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTurn indicates a turn that carries no text.
	ErrEmptyTurn = errors.New("domain: turn has no text")

	// ErrNoBriefStore indicates no brief store collaborator is configured.
	ErrNoBriefStore = errors.New("domain: brief store not configured")

	// ErrBriefNotFound indicates the requested brief document does not exist.
	ErrBriefNotFound = errors.New("domain: brief not found")
)

// TransportError means the generation service could not be reached at all
// (connection refused, DNS failure, timeout). Never retried by the client.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the generation service answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation: service returned status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError means the response envelope was missing the
// expected fields, or the body could not be decoded as JSON.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "generation: malformed response: " + e.Reason
}
