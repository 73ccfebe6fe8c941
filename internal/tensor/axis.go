package tensor

import "fmt"

// Axis is an optional axis argument.
// The zero value is NoAxis, NumPy's axis=None.
type Axis struct {
	value int
	set   bool
}

// NoAxis requests the operation on the flattened array.
var NoAxis = Axis{}

// AxisOf returns an explicit axis. Negative values count from the end.
func AxisOf(axis int) Axis {
	return Axis{value: axis, set: true}
}

// IsNone reports whether the axis is unspecified.
func (a Axis) IsNone() bool {
	return !a.set
}

// Value returns the raw axis and whether it was specified.
func (a Axis) Value() (int, bool) {
	return a.value, a.set
}

// String renders the axis the way Python prints it.
func (a Axis) String() string {
	if !a.set {
		return "None"
	}
	return fmt.Sprint(a.value)
}

// Count is the optional count argument of UnpackBits.
// The zero value is AllBits.
type Count struct {
	value int
	set   bool
}

// AllBits unpacks every bit along the axis.
var AllBits = Count{}

// CountOf returns an explicit count. Negative values trim from the end.
func CountOf(n int) Count {
	return Count{value: n, set: true}
}

// Value returns the raw count and whether it was specified.
func (c Count) Value() (int, bool) {
	return c.value, c.set
}

// String renders the count the way Python prints it.
func (c Count) String() string {
	if !c.set {
		return "None"
	}
	return fmt.Sprint(c.value)
}

// BitOrder selects which bit of a byte holds the first logical element.
type BitOrder string

// Bit orders.
const (
	// BigEndian maps the first element to the most significant bit, like bin(val).
	BigEndian BitOrder = "big"
	// LittleEndian maps the first element to the least significant bit.
	LittleEndian BitOrder = "little"
)

// Validate reports ErrInvalidBitOrder for anything but "big" or "little".
func (o BitOrder) Validate() error {
	if o != BigEndian && o != LittleEndian {
		return fmt.Errorf("%w: 'order' must be either 'little' or 'big', got %q", ErrInvalidBitOrder, string(o))
	}
	return nil
}

// NormalizeAxis wraps a negative axis and checks it against ndim.
func NormalizeAxis(axis, ndim int) (int, error) {
	resolved := axis
	if resolved < 0 {
		resolved += ndim
	}
	if resolved < 0 || resolved >= ndim {
		return 0, newAxisError(axis, ndim)
	}
	return resolved, nil
}

// NormalizeAxes validates a full permutation of [0, ndim).
// An empty axes list means reversed order, as in NumPy's transpose.
func NormalizeAxes(axes []int, ndim int) ([]int, error) {
	if len(axes) == 0 {
		perm := make([]int, ndim)
		for i := range perm {
			perm[i] = ndim - 1 - i
		}
		return perm, nil
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("%w: axes don't match array: got %d axes for %dD array", ErrShapeMismatch, len(axes), ndim)
	}

	perm := make([]int, ndim)
	seen := make([]bool, ndim)
	for i, ax := range axes {
		resolved, err := NormalizeAxis(ax, ndim)
		if err != nil {
			return nil, err
		}
		if seen[resolved] {
			return nil, fmt.Errorf("%w: repeated axis %d in transpose", ErrShapeMismatch, ax)
		}
		seen[resolved] = true
		perm[i] = resolved
	}
	return perm, nil
}

// ResolveBitAxis sanitizes the axis and bit order of a pack or unpack call.
//
// With NoAxis an array of rank 2 or more is flattened and the resolved axis
// is 0; a 0-d array has no axis 0 and fails the bounds check. Otherwise
// negative axes wrap around. The returned shape is the effective one the
// operation runs on and is always rank 1 or more. Errors name the caller's
// axis and the original rank.
func ResolveBitAxis(shape Shape, axis Axis, order BitOrder) (Shape, int, error) {
	effective := shape
	resolved := axis.value

	if axis.IsNone() {
		if len(shape) > 1 {
			effective = Shape{shape.NumElements()}
		}
		resolved = 0
	} else if resolved < 0 {
		resolved += len(effective)
	}

	if resolved < 0 || resolved >= len(effective) {
		return nil, 0, &AxisError{Axis: axis.String(), NDim: len(shape)}
	}

	if err := order.Validate(); err != nil {
		return nil, 0, err
	}

	return effective, resolved, nil
}
