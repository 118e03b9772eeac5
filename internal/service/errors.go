package service

import (
	"errors"
	"fmt"

	"tradebridge/internal/models"
)

// InvalidActionError rejects an unknown or missing action before any venue
// call is attempted.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	if e.Action == "" {
		return "missing action"
	}
	return fmt.Sprintf("invalid action %q", e.Action)
}

type InvalidQuantityError struct {
	Reason string
}

func (e *InvalidQuantityError) Error() string {
	return "invalid quantity: " + e.Reason
}

// InvalidFieldError covers optional numeric fields that are present but
// malformed. Absent optional fields default to zero instead.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExecutionError wraps any venue-side failure: rejection, transport error, or
// timeout. The venue's message passes through unmodified.
type ExecutionError struct {
	Cause error
}

func (e *ExecutionError) Error() string {
	return "order execution failed: " + e.Cause.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func errorKind(err error) string {
	var actionErr *InvalidActionError
	var qtyErr *InvalidQuantityError
	var fieldErr *InvalidFieldError
	var execErr *ExecutionError
	switch {
	case errors.As(err, &actionErr):
		return models.ErrKindInvalidAction
	case errors.As(err, &qtyErr):
		return models.ErrKindInvalidQuantity
	case errors.As(err, &fieldErr):
		return models.ErrKindInvalidField
	case errors.As(err, &execErr):
		return models.ErrKindExecution
	default:
		return models.ErrKindExecution
	}
}
