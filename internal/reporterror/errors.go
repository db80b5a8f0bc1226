// Package reporterror defines the error taxonomy of report generation.
package reporterror

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// Sentinels returned by classification clients, always wrapped in a
// ClassificationError by the dispatcher.
var (
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response payload")
)

// InvalidArgumentError reports a missing or empty request argument.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UpstreamFetchError represents a failure of the transaction source
type UpstreamFetchError struct {
	Username string
	Err      error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("failed to fetch transactions for user '%s': %v", e.Username, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// ClassificationError represents a failed call to the classification service.
// A single ClassificationError aborts the whole report.
type ClassificationError struct {
	Description string
	Err         error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed for '%s': %v", e.Description, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by bad input rather than by an
// upstream failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
