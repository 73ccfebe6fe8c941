package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of an array.
// A zero-length shape describes a scalar; zero extents describe empty arrays.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// NDim returns the rank of the shape.
func (s Shape) NDim() int {
	return len(s)
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: invalid dimension at index %d: %d (must be >= 0)", ErrShapeMismatch, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// With returns a copy of the shape whose extent along axis is replaced.
func (s Shape) With(axis, extent int) Shape {
	out := s.Clone()
	out[axis] = extent
	return out
}

// ComputeStrides calculates row-major element strides for the shape.
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Lanes splits the shape around axis into the number of elements before it
// (outer) and after it (inner). Element (o, k, i) of a row-major array lives
// at o*extent*inner + k*inner + i.
func (s Shape) Lanes(axis int) (outer, inner int) {
	outer, inner = 1, 1
	for i, dim := range s {
		switch {
		case i < axis:
			outer *= dim
		case i > axis:
			inner *= dim
		}
	}
	return outer, inner
}

// String formats the shape like a NumPy tuple.
func (s Shape) String() string {
	switch len(s) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", s[0])
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}

// BroadcastShapes implements NumPy-style broadcasting rules over any number of shapes.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5)
//	(1, 5) + (3, 5) → (3, 5)
//	(4,) + (2, 3, 4) → (2, 3, 4)
//	(3, 4) + (3, 5) → error
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	maxLen := 0
	for _, s := range shapes {
		maxLen = max(maxLen, len(s))
	}

	result := make(Shape, maxLen)
	for i := range result {
		result[i] = 1
	}

	for _, s := range shapes {
		offset := maxLen - len(s)
		for i, dim := range s {
			out := result[offset+i]
			switch {
			case dim == out:
			case out == 1:
				result[offset+i] = dim
			case dim == 1:
			default:
				return nil, fmt.Errorf("%w: shapes not compatible for broadcasting: %v (dimension %d: %d vs %d)",
					ErrShapeMismatch, shapes, offset+i, out, dim)
			}
		}
	}

	return result, nil
}

// CanBroadcastTo reports whether src can be stretched to dst without
// changing dst, returning a descriptive error when it cannot.
func CanBroadcastTo(src, dst Shape) error {
	if len(dst) < len(src) {
		return fmt.Errorf("%w: cannot broadcast %v to %v: target has fewer dimensions",
			ErrShapeMismatch, src, dst)
	}
	offset := len(dst) - len(src)
	for i, dim := range src {
		if dim != 1 && dim != dst[offset+i] {
			return fmt.Errorf("%w: cannot broadcast %v to %v: dimension %d is %d, expected 1 or %d",
				ErrShapeMismatch, src, dst, i, dim, dst[offset+i])
		}
	}
	return nil
}

// BroadcastStrides returns strides that map an index in dst to the flat
// position in a contiguous src, with stride 0 on stretched dimensions.
func BroadcastStrides(src, dst Shape) []int {
	strides := make([]int, len(dst))
	srcStrides := src.ComputeStrides()
	offset := len(dst) - len(src)
	for i := range dst {
		j := i - offset
		if j < 0 || src[j] == 1 {
			continue
		}
		strides[i] = srcStrides[j]
	}
	return strides
}
