package domain

import (
	"errors"
	"fmt"
)

// Error types for consistent handling across the portal.

// ErrAuthNotReady signals that a call was attempted while the session is
// still initializing. Read paths treat it as a silent no-op.
var ErrAuthNotReady = errors.New("auth session still loading")

// ErrNotModified signals an HTTP 304 from a conditional upstream request.
var ErrNotModified = errors.New("upstream returned 304 Not Modified")

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates invalid credentials or a rejected token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation indicates a client-side validation failure (no network
// call is made when one of these is returned).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrUpstream indicates the backend replied with success=false or a
// non-2xx status carrying a message.
type ErrUpstream struct {
	Status  int
	Message string
}

func (e *ErrUpstream) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream error (%d)", e.Status)
}

// ErrExternalService indicates a transport-level failure talking to the backend.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrConflict indicates the resource already exists or was concurrently changed.
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrActionNotAllowed indicates a workflow action was attempted in a status
// that does not offer it (e.g. mark-arrived outside vendor_assigned).
type ErrActionNotAllowed struct {
	Action string
	Status string
}

func (e *ErrActionNotAllowed) Error() string {
	return fmt.Sprintf("action %q not available in status %q", e.Action, e.Status)
}
