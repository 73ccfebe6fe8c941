package serialization

import (
	"fmt"
	"math"

	"github.com/born-ml/numgo/internal/tensor"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize = 1 << 20 // 1MB - maximum header length
	MaxDataSize   = 1 << 40 // 1TB - maximum array data size
)

// validateHeader checks that h describes an array this package can load and
// returns its dtype.
func validateHeader(h Header) (tensor.DataType, error) {
	dt, err := ParseDescr(h.Descr)
	if err != nil {
		return 0, err
	}

	// C and Fortran order coincide below two dimensions.
	if h.FortranOrder && len(h.Shape) > 1 {
		return 0, fmt.Errorf("%w: shape %v", ErrFortranOrder, h.Shape)
	}

	// Check the size without overflowing: malformed files could otherwise
	// trigger huge allocations.
	size := int64(dt.Size())
	for _, dim := range h.Shape {
		if dim < 0 {
			return 0, &HeaderError{Field: "shape", Details: fmt.Sprintf("negative dimension %d", dim)}
		}
		if dim == 0 {
			return dt, nil
		}
		if size > math.MaxInt64/int64(dim) || size*int64(dim) > MaxDataSize {
			return 0, &HeaderError{
				Field:   "shape",
				Details: fmt.Sprintf("array %v exceeds %d bytes", h.Shape, int64(MaxDataSize)),
			}
		}
		size *= int64(dim)
	}
	return dt, nil
}
