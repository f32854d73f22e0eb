package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates that the request lacks valid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrExternalService indicates an error with an external service
	ErrExternalService = errors.New("external service error")

	// ErrDatabaseOperation indicates a database operation failure
	ErrDatabaseOperation = errors.New("database operation failed")

	// ErrNoMatch indicates that no filter matched a notification. This is
	// a defined routing outcome, surfaced as an error only at the service
	// boundary so callers can tell "not routed" apart from failures.
	ErrNoMatch = errors.New("no filter matched")

	// ErrDispatchFailed indicates that forwarding to a downstream instance failed
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrUnknownInstance indicates an apply payload referenced an instance
	// that is not configured
	ErrUnknownInstance = errors.New("unknown instance")
)

// ServiceError represents a service-level error with additional context
type ServiceError struct {
	Op      string         // Operation that failed
	Service string         // Service where the error occurred
	Err     error          // Underlying error
	Context map[string]any // Additional context
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if len(e.Context) > 0 {
		return fmt.Sprintf("%s.%s: %v (context: %v)", e.Service, e.Op, e.Err, e.Context)
	}
	return fmt.Sprintf("%s.%s: %v", e.Service, e.Op, e.Err)
}

// Unwrap allows errors.Is and errors.As to work
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// WithContext adds context to a ServiceError
func (e *ServiceError) WithContext(key string, value any) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoMatch checks if an error is a no-match routing outcome
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
