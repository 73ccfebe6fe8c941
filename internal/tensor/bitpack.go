package tensor

import "fmt"

// PackedExtent returns the number of bytes needed to hold n bits.
func PackedExtent(n int) int {
	return (n + 7) / 8
}

// PackBitsShape returns the effective input shape, the resolved axis and
// the output shape of PackBits without touching any data.
func PackBitsShape(shape Shape, dtype DataType, axis Axis, order BitOrder) (effective Shape, resolved int, out Shape, err error) {
	switch dtype.Kind() {
	case KindBool, KindSigned, KindUnsigned:
	default:
		return nil, 0, nil, fmt.Errorf("%w: expected an input array of integer or boolean data type, got %s",
			ErrTypeMismatch, dtype)
	}

	effective, resolved, err = ResolveBitAxis(shape, axis, order)
	if err != nil {
		return nil, 0, nil, err
	}

	return effective, resolved, effective.With(resolved, PackedExtent(effective[resolved])), nil
}

// UnpackBitsShape returns the effective input shape, the resolved axis and
// the output shape of UnpackBits, applying count to the unpacked extent.
func UnpackBitsShape(shape Shape, dtype DataType, axis Axis, count Count, order BitOrder) (effective Shape, resolved int, out Shape, err error) {
	if dtype != Uint8 {
		return nil, 0, nil, fmt.Errorf("%w: expected an input array of unsigned byte data type, got %s",
			ErrTypeMismatch, dtype)
	}

	effective, resolved, err = ResolveBitAxis(shape, axis, order)
	if err != nil {
		return nil, 0, nil, err
	}

	axisExtent := effective[resolved] * 8
	extent := axisExtent
	if n, ok := count.Value(); ok && n != axisExtent {
		switch {
		case n >= 0:
			extent = n
		case -n > axisExtent:
			return nil, 0, nil, fmt.Errorf("%w: count %d trims more than the %d available bits",
				ErrOutOfBounds, n, axisExtent)
		default:
			extent = axisExtent + n
		}
	}

	return effective, resolved, effective.With(resolved, extent), nil
}

// PackBits packs the elements of an integer or boolean array into bits of a
// uint8 array. Each group of up to 8 elements along the axis becomes one
// byte; non-zero elements are 1 bits, and a short final group is padded with
// zero bits.
//
// NoAxis packs the flattened array. The dtype is checked before the axis.
//
// Example:
//
//	a, _ := tensor.FromValues([]uint8{0, 0, 0, 0, 0, 0, 1, 1}, tensor.Shape{8}, tensor.CPU)
//	packed, _ := tensor.PackBits(backend, a, tensor.NoAxis, tensor.BigEndian) // [3]
func PackBits(b Backend, a *RawTensor, axis Axis, order BitOrder) (*RawTensor, error) {
	effective, resolved, outShape, err := PackBitsShape(a.Shape(), a.DType(), axis, order)
	if err != nil {
		return nil, fmt.Errorf("packbits: %w", err)
	}

	src, err := reshapeIfNeeded(b, a, effective)
	if err != nil {
		return nil, fmt.Errorf("packbits: %w", err)
	}

	out, err := b.Allocate(outShape, Uint8)
	if err != nil {
		return nil, fmt.Errorf("packbits: %w", err)
	}
	if err := b.PackBits(out, src, resolved, order); err != nil {
		return nil, fmt.Errorf("packbits: %w", err)
	}
	return out, nil
}

// UnpackBits unpacks the bytes of a uint8 array into a 0/1-valued uint8
// array, 8 elements per byte along the axis.
//
// count limits the unpacked extent: a non-negative count keeps that many
// elements (zero-padding past the available bits), a negative count trims
// that many from the end. AllBits keeps every bit.
//
// Example:
//
//	a, _ := tensor.FromValues([]uint8{3}, tensor.Shape{1}, tensor.CPU)
//	bits, _ := tensor.UnpackBits(backend, a, tensor.NoAxis, tensor.CountOf(-1), tensor.BigEndian)
//	// [0 0 0 0 0 0 1]
func UnpackBits(b Backend, a *RawTensor, axis Axis, count Count, order BitOrder) (*RawTensor, error) {
	effective, resolved, outShape, err := UnpackBitsShape(a.Shape(), a.DType(), axis, count, order)
	if err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}

	src, err := reshapeIfNeeded(b, a, effective)
	if err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}

	out, err := b.Allocate(outShape, Uint8)
	if err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}
	if err := b.UnpackBits(out, src, resolved, order); err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}
	return out, nil
}

func reshapeIfNeeded(b Backend, a *RawTensor, shape Shape) (*RawTensor, error) {
	if a.Shape().Equal(shape) {
		return a, nil
	}
	return b.Reshape(a, shape)
}
