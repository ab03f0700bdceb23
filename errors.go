package cascade

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMatrix is returned when a Problem has no matrix.
	ErrMissingMatrix = errors.New("problem matrix is required")

	// ErrNoTiers is returned when the cascade has an empty tier list.
	ErrNoTiers = errors.New("at least one precision tier is required")
)

// ErrDimensionMismatch indicates mismatched matrix/vector dimensions.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid matrix dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrInvalidEigenvalue indicates a non-finite reference eigenvalue.
// The solver needs a valid true eigenvalue for error measurement.
type ErrInvalidEigenvalue struct {
	Value float64
}

func (e *ErrInvalidEigenvalue) Error() string {
	return fmt.Sprintf("invalid true eigenvalue: %v", e.Value)
}
