// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/numgo/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: bool, int8..int64, uint8..uint64, float32, float64.
type DType = tensor.DType

// Integer is the constraint for integer element types.
type Integer = tensor.Integer

// Number is the constraint for element types that support arithmetic.
type Number = tensor.Number

// Packable is the constraint for element types PackBits accepts.
type Packable = tensor.Packable

// DataType represents the underlying data type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Bool    DataType = tensor.Bool
	Int8    DataType = tensor.Int8
	Int16   DataType = tensor.Int16
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Uint16  DataType = tensor.Uint16
	Uint32  DataType = tensor.Uint32
	Uint64  DataType = tensor.Uint64
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where array data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a generic type-safe array.
//
// T is the element type. B is the backend implementation.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.Zeros[uint8](tensor.Shape{2, 3}, backend)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates an array filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.Zeros[int32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.Zeros[T, B](shape, b)
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	mask, err := tensor.Full[bool](tensor.Shape{2, 8}, true, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) (*Tensor[T, B], error) {
	return tensor.Full[T, B](shape, value, b)
}

// Arange creates a 1D array with values from start to end (exclusive).
//
// Example:
//
//	backend := cpu.New()
//	x, err := tensor.Arange[int64](0, 10, backend)  // [0, 1, 2, ..., 9]
func Arange[T Number, B Backend](start, end T, b B) (*Tensor[T, B], error) {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice creates an array from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []uint8{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates an array from a raw array.
//
// This is a low-level function. Most users should use creation functions like
// Zeros or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new zeroed raw array with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromValues creates a raw array holding a copy of data.
func FromValues[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromValues(data, shape, device)
}

// Values interprets the data of r as []T without copying.
// Panics if T does not match the array's dtype.
func Values[T DType](r *RawTensor) []T {
	return tensor.Values[T](r)
}

// ParseDataType converts a NumPy dtype name such as "uint8" or "i4" into a DataType.
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// Manipulation functions

// BroadcastShapes computes the shape that all given shapes broadcast to,
// following NumPy broadcasting rules.
//
// Example:
//
//	shape, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4})
//	// shape = (3, 4)
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	return tensor.BroadcastShapes(shapes...)
}

// BroadcastTo stretches a to shape.
func BroadcastTo(b Backend, a *RawTensor, shape Shape) (*RawTensor, error) {
	return tensor.BroadcastTo(b, a, shape)
}

// Add adds two arrays of the same dtype element-wise with broadcasting.
func Add(b Backend, x, y *RawTensor) (*RawTensor, error) {
	return tensor.Add(b, x, y)
}

// Tile constructs an array by repeating a the number of times given by reps.
//
// Example:
//
//	tiled, err := tensor.Tile(backend, a, 2, 2)  // a of shape (2,) -> (2, 4)
func Tile(b Backend, a *RawTensor, reps ...int) (*RawTensor, error) {
	return tensor.Tile(b, a, reps...)
}

// Repeat repeats each element of a along axis. repeats holds one count, or
// one count per element along axis. NoAxis repeats the flattened array.
func Repeat(b Backend, a *RawTensor, repeats []int, axis Axis) (*RawTensor, error) {
	return tensor.Repeat(b, a, repeats, axis)
}

// Transpose permutes the dimensions of a. With no axes the order is reversed.
func Transpose(b Backend, a *RawTensor, axes ...int) (*RawTensor, error) {
	return tensor.Transpose(b, a, axes...)
}

// Ravel returns a flattened to one dimension.
func Ravel(b Backend, a *RawTensor) (*RawTensor, error) {
	return tensor.Ravel(b, a)
}
