package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnsupportedDType   = errors.New("unsupported dtype")
	ErrFortranOrder       = errors.New("fortran-ordered arrays are not supported")
	ErrTruncated          = errors.New("unexpected end of file")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidHeader      = errors.New("invalid header")
)

// HeaderError provides detailed information about a malformed header.
type HeaderError struct {
	Field   string // Header key involved, empty for syntax errors
	Details string // Additional details
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid header: %s: %s", e.Field, e.Details)
	}
	return "invalid header: " + e.Details
}

// Unwrap allows errors.Is(err, ErrInvalidHeader).
func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeader
}
