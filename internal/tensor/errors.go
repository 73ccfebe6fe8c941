package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrInvalidBitOrder = errors.New("invalid bit order")
	ErrShapeMismatch   = errors.New("shape mismatch")
)

// AxisError reports an axis outside [-ndim, ndim).
// Axis and NDim are the values the caller supplied, before any flattening.
type AxisError struct {
	Axis string // Requested axis as written by the caller ("-4", "None")
	NDim int    // Dimensionality of the array the caller passed in
}

// Error implements the error interface.
func (e *AxisError) Error() string {
	return fmt.Sprintf("axis %s is out of bounds for array of dimension %d", e.Axis, e.NDim)
}

// Unwrap makes errors.Is(err, ErrOutOfBounds) hold.
func (e *AxisError) Unwrap() error {
	return ErrOutOfBounds
}

func newAxisError(axis, ndim int) *AxisError {
	return &AxisError{Axis: fmt.Sprint(axis), NDim: ndim}
}
