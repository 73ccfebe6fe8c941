// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/numgo/internal/tensor"
)

// Axis is an optional axis argument. NoAxis selects the flattened array.
type Axis = tensor.Axis

// Count is an optional bit count for UnpackBits. AllBits keeps every bit.
type Count = tensor.Count

// BitOrder selects which bit of a packed byte holds the first element.
type BitOrder = tensor.BitOrder

// Axis, count and bit order values.
var (
	NoAxis  = tensor.NoAxis
	AllBits = tensor.AllBits
)

// Bit orders.
const (
	BigEndian    BitOrder = tensor.BigEndian
	LittleEndian BitOrder = tensor.LittleEndian
)

// AxisOf returns an Axis holding axis. Negative values count from the end.
func AxisOf(axis int) Axis {
	return tensor.AxisOf(axis)
}

// CountOf returns a Count holding n. Negative values trim from the end.
func CountOf(n int) Count {
	return tensor.CountOf(n)
}

// PackBits packs the elements of a boolean or integer array into bits of a
// uint8 array, 8 elements per byte along axis.
//
// Example:
//
//	a, _ := tensor.FromValues([]uint8{0, 0, 0, 0, 0, 0, 1, 1}, tensor.Shape{8}, tensor.CPU)
//	packed, err := tensor.PackBits(backend, a, tensor.NoAxis, tensor.BigEndian) // [3]
func PackBits(b Backend, a *RawTensor, axis Axis, order BitOrder) (*RawTensor, error) {
	return tensor.PackBits(b, a, axis, order)
}

// UnpackBits unpacks the bytes of a uint8 array into 0/1 elements along axis.
//
// Example:
//
//	a, _ := tensor.FromValues([]uint8{3}, tensor.Shape{1}, tensor.CPU)
//	bits, err := tensor.UnpackBits(backend, a, tensor.NoAxis, tensor.CountOf(-1), tensor.BigEndian)
//	// [0 0 0 0 0 0 1]
func UnpackBits(b Backend, a *RawTensor, axis Axis, count Count, order BitOrder) (*RawTensor, error) {
	return tensor.UnpackBits(b, a, axis, count, order)
}

// PackBitsShape validates the arguments of PackBits and returns the shape it
// would produce, without touching any data.
func PackBitsShape(shape Shape, dtype DataType, axis Axis, order BitOrder) (Shape, error) {
	_, _, out, err := tensor.PackBitsShape(shape, dtype, axis, order)
	return out, err
}

// UnpackBitsShape validates the arguments of UnpackBits and returns the shape
// it would produce.
func UnpackBitsShape(shape Shape, dtype DataType, axis Axis, count Count, order BitOrder) (Shape, error) {
	_, _, out, err := tensor.UnpackBitsShape(shape, dtype, axis, count, order)
	return out, err
}

// Pack is the typed form of PackBits.
func Pack[T Packable, B Backend](t *Tensor[T, B], axis Axis, order BitOrder) (*Tensor[uint8, B], error) {
	return tensor.Pack(t, axis, order)
}

// Unpack is the typed form of UnpackBits.
func Unpack[B Backend](t *Tensor[uint8, B], axis Axis, count Count, order BitOrder) (*Tensor[uint8, B], error) {
	return tensor.Unpack(t, axis, count, order)
}
