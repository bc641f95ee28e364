package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidTotal  = errors.New("order total must be a non-negative number")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidID     = errors.New("invalid order id")
)

// FieldError names the required field that was missing.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Unwrap lets errors.Is(err, ErrMissingField) succeed.
func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
