package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Catalog query errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrQueryFailed      = errors.New("catalog query failed")

	// Product errors
	ErrNotFound     = errors.New("product not found")
	ErrEmptyName    = errors.New("product name cannot be empty")
	ErrInvalidPrice = errors.New("product price must be a non-negative number")
	ErrInvalidStock = errors.New("product stock cannot be negative")
	ErrInvalidID    = errors.New("invalid product id")
	ErrConflict     = errors.New("product was modified concurrently")
)

// ParamError describes which query parameter was rejected.
// It matches ErrInvalidParameter with errors.Is.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidParameter) succeed.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Detail is the client-facing description, e.g. "minPrice: must be a number".
func (e *ParamError) Detail() string {
	return e.Param + ": " + e.Reason
}
