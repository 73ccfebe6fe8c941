package tensor

import "fmt"

// TileShape returns the shape of tiling an array of shape by reps.
//
// The shorter of shape and reps is promoted by prepending ones, so tiling a
// (3,) array by (2, 2) yields (2, 6) and tiling a (2, 2) array by 2 yields
// (2, 4).
func TileShape(shape Shape, reps []int) (promoted Shape, fullReps []int, out Shape, err error) {
	for _, r := range reps {
		if r < 0 {
			return nil, nil, nil, fmt.Errorf("%w: negative tile repetition %d", ErrShapeMismatch, r)
		}
	}

	n := max(len(shape), len(reps))
	promoted = padLeft(shape, n)
	fullReps = padLeft(reps, n)

	out = make(Shape, n)
	for i := range out {
		out[i] = promoted[i] * fullReps[i]
	}
	return promoted, fullReps, out, nil
}

// RepeatShape returns the effective input shape, the resolved axis and the
// output shape of repeating elements along axis.
//
// repeats holds either one count applied to every element or one count per
// element along the axis. NoAxis repeats the flattened array.
func RepeatShape(shape Shape, repeats []int, axis Axis) (effective Shape, resolved int, out Shape, err error) {
	effective = shape
	if axis.IsNone() {
		if len(shape) != 1 {
			effective = Shape{shape.NumElements()}
		}
	} else {
		v, _ := axis.Value()
		resolved, err = NormalizeAxis(v, len(shape))
		if err != nil {
			return nil, 0, nil, err
		}
	}

	extent := effective[resolved]
	var total int
	switch len(repeats) {
	case 1:
		if repeats[0] < 0 {
			return nil, 0, nil, fmt.Errorf("%w: negative repeat count %d", ErrShapeMismatch, repeats[0])
		}
		total = extent * repeats[0]
	case extent:
		for _, r := range repeats {
			if r < 0 {
				return nil, 0, nil, fmt.Errorf("%w: negative repeat count %d", ErrShapeMismatch, r)
			}
			total += r
		}
	default:
		return nil, 0, nil, fmt.Errorf("%w: operands could not be broadcast together with shape (%d,) (%d,)",
			ErrShapeMismatch, extent, len(repeats))
	}

	return effective, resolved, effective.With(resolved, total), nil
}

// TransposeShape permutes shape by axes. Empty axes reverse the order.
func TransposeShape(shape Shape, axes []int) (perm []int, out Shape, err error) {
	perm, err = NormalizeAxes(axes, len(shape))
	if err != nil {
		return nil, nil, err
	}
	out = make(Shape, len(shape))
	for i, ax := range perm {
		out[i] = shape[ax]
	}
	return perm, out, nil
}

// Ravel returns the array flattened to one dimension.
func Ravel(b Backend, a *RawTensor) (*RawTensor, error) {
	out, err := reshapeIfNeeded(b, a, Shape{a.NumElements()})
	if err != nil {
		return nil, fmt.Errorf("ravel: %w", err)
	}
	return out, nil
}

// BroadcastTo stretches a to shape following NumPy broadcasting rules.
func BroadcastTo(b Backend, a *RawTensor, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("broadcast_to: %w", err)
	}
	if err := CanBroadcastTo(a.Shape(), shape); err != nil {
		return nil, fmt.Errorf("broadcast_to: %w", err)
	}
	out, err := b.Expand(a, shape)
	if err != nil {
		return nil, fmt.Errorf("broadcast_to: %w", err)
	}
	return out, nil
}

// Add adds two arrays element-wise with broadcasting.
// Both operands must have the same dtype; there is no type promotion.
func Add(b Backend, x, y *RawTensor) (*RawTensor, error) {
	if x.DType() != y.DType() {
		return nil, fmt.Errorf("add: %w: operands have dtypes %s and %s", ErrTypeMismatch, x.DType(), y.DType())
	}
	if _, err := BroadcastShapes(x.Shape(), y.Shape()); err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	out, err := b.Add(x, y)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return out, nil
}

// Tile constructs an array by repeating a the number of times given by reps.
func Tile(b Backend, a *RawTensor, reps ...int) (*RawTensor, error) {
	promoted, fullReps, _, err := TileShape(a.Shape(), reps)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	src, err := reshapeIfNeeded(b, a, promoted)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	out, err := b.Tile(src, fullReps)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	return out, nil
}

// Repeat repeats each element of a along axis.
func Repeat(b Backend, a *RawTensor, repeats []int, axis Axis) (*RawTensor, error) {
	effective, resolved, _, err := RepeatShape(a.Shape(), repeats, axis)
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	src, err := reshapeIfNeeded(b, a, effective)
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	out, err := b.Repeat(src, repeats, resolved)
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	return out, nil
}

// Transpose permutes the dimensions of a. With no axes the order is reversed.
func Transpose(b Backend, a *RawTensor, axes ...int) (*RawTensor, error) {
	perm, _, err := TransposeShape(a.Shape(), axes)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	out, err := b.Transpose(a, perm)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	return out, nil
}

// padLeft returns s left-padded with ones to length n.
func padLeft[S ~[]int](s S, n int) S {
	out := make(S, n)
	offset := n - len(s)
	for i := range out {
		if i < offset {
			out[i] = 1
		} else {
			out[i] = s[i-offset]
		}
	}
	return out
}
