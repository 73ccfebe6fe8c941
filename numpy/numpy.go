// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package numpy exposes numgo with NumPy's calling conventions.
//
// Entry points take loosely typed arguments the way Python callers pass
// them: arrays as Go slices, axis and count as nil or an integer, bit order
// as a string. Each argument is converted explicitly by AsArray, AxisArg,
// CountArg or OrderArg before the operation runs on the active backend.
//
// Example:
//
//	packed, err := numpy.Packbits([][]bool{{true, false}, {true, true}}, -1, "big")
//	// packed: shape (2, 1), values [128, 192]
//
//	bits, err := numpy.Unpackbits([]uint8{3}, nil, -1, "")
//	// bits: [0 0 0 0 0 0 1]
package numpy

import (
	"fmt"
	"sync"

	"github.com/born-ml/numgo/backend/cpu"
	"github.com/born-ml/numgo/internal/coverage"
	"github.com/born-ml/numgo/internal/serialization"
	"github.com/born-ml/numgo/tensor"
)

var (
	mu      sync.RWMutex
	backend tensor.Backend
)

// Backend returns the backend used by this package. It defaults to a CPU
// backend tuned from the environment, created on first use.
func Backend() tensor.Backend {
	mu.RLock()
	b := backend
	mu.RUnlock()
	if b != nil {
		return b
	}

	mu.Lock()
	defer mu.Unlock()
	if backend == nil {
		backend = cpu.New()
	}
	return backend
}

// SetBackend replaces the backend and returns the previous one.
// Passing nil restores the default on next use.
func SetBackend(b tensor.Backend) tensor.Backend {
	mu.Lock()
	defer mu.Unlock()
	prev := backend
	backend = b
	return prev
}

// Packbits packs the elements of a boolean or integer array into bits of a
// uint8 array. axis is nil or an integer; bitorder is "big", "little" or
// empty for "big".
func Packbits(a any, axis any, bitorder string) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	if dt := arr.DType(); dt == tensor.Float32 || dt == tensor.Float64 {
		return nil, fmt.Errorf("packbits: %w: expected an input array of integer or boolean data type, got %s",
			tensor.ErrTypeMismatch, dt)
	}
	ax, err := AxisArg(axis)
	if err != nil {
		return nil, fmt.Errorf("packbits: %w", err)
	}
	return tensor.PackBits(Backend(), arr, ax, OrderArg(bitorder))
}

// Unpackbits unpacks the bytes of a uint8 array into 0/1 elements. axis and
// count are nil or integers; bitorder is "big", "little" or empty for "big".
func Unpackbits(a any, axis any, count any, bitorder string) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	if dt := arr.DType(); dt != tensor.Uint8 {
		return nil, fmt.Errorf("unpackbits: %w: expected an input array of unsigned byte data type, got %s",
			tensor.ErrTypeMismatch, dt)
	}
	n, err := CountArg(count)
	if err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}
	ax, err := AxisArg(axis)
	if err != nil {
		return nil, fmt.Errorf("unpackbits: %w", err)
	}
	return tensor.UnpackBits(Backend(), arr, ax, n, OrderArg(bitorder))
}

// Tile constructs an array by repeating a the number of times given by reps.
func Tile(a any, reps ...int) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	return tensor.Tile(Backend(), arr, reps...)
}

// Repeat repeats the elements of a. repeats is an integer or a slice of
// integers with one entry per element along axis; axis is nil or an integer.
func Repeat(a any, repeats any, axis any) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	reps, err := repeatsArg(repeats)
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	ax, err := AxisArg(axis)
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	return tensor.Repeat(Backend(), arr, reps, ax)
}

// BroadcastTo stretches a to shape.
func BroadcastTo(a any, shape ...int) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	return tensor.BroadcastTo(Backend(), arr, tensor.Shape(shape))
}

// BroadcastShapes computes the shape the given shapes broadcast to.
func BroadcastShapes(shapes ...tensor.Shape) (tensor.Shape, error) {
	return tensor.BroadcastShapes(shapes...)
}

// Add adds x and y element-wise with broadcasting.
func Add(x, y any) (*tensor.RawTensor, error) {
	a, err := AsArray(x)
	if err != nil {
		return nil, err
	}
	b, err := AsArray(y)
	if err != nil {
		return nil, err
	}
	return tensor.Add(Backend(), a, b)
}

// Transpose permutes the dimensions of a. With no axes the order is reversed.
func Transpose(a any, axes ...int) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	return tensor.Transpose(Backend(), arr, axes...)
}

// Reshape gives a a new shape with the same number of elements.
func Reshape(a any, shape ...int) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	out, err := Backend().Reshape(arr, tensor.Shape(shape))
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	return out, nil
}

// Ravel returns a flattened to one dimension.
func Ravel(a any) (*tensor.RawTensor, error) {
	arr, err := AsArray(a)
	if err != nil {
		return nil, err
	}
	return tensor.Ravel(Backend(), arr)
}

// Zeros returns a zeroed array of the given dtype name, e.g. "uint8".
func Zeros(dtype string, shape ...int) (*tensor.RawTensor, error) {
	dt, err := tensor.ParseDataType(dtype)
	if err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}
	return Backend().Allocate(tensor.Shape(shape), dt)
}

// Full returns an array of the given shape filled with value. The dtype
// follows value, as AsArray would convert it.
func Full(value any, shape ...int) (*tensor.RawTensor, error) {
	scalar, err := AsArray(value)
	if err != nil {
		return nil, err
	}
	if scalar.NDim() != 0 {
		return nil, fmt.Errorf("full: %w: fill value must be a scalar", tensor.ErrShapeMismatch)
	}
	return tensor.BroadcastTo(Backend(), scalar, tensor.Shape(shape))
}

// Arange returns the int64 values [start, stop) as a 1D array.
func Arange(start, stop int64) (*tensor.RawTensor, error) {
	t, err := tensor.Arange(start, stop, Backend())
	if err != nil {
		return nil, err
	}
	return t.Raw(), nil
}

// Load reads an array from a .npy file.
func Load(path string) (*tensor.RawTensor, error) {
	return serialization.ReadFile(path)
}

// Save writes a to a .npy file.
func Save(path string, a any) error {
	arr, err := AsArray(a)
	if err != nil {
		return err
	}
	return serialization.WriteFile(path, arr)
}

// Lookup reports how the NumPy function name is served.
func Lookup(name string) (coverage.Entry, bool) {
	return coverage.Lookup(name)
}

// Coverage lists every known NumPy function sorted by name.
func Coverage() []coverage.Entry {
	return coverage.Entries()
}

func repeatsArg(v any) ([]int, error) {
	if n, set, err := intArg("repeats", v); err == nil && set {
		return []int{n}, nil
	}
	arr, err := AsArray(v)
	if err != nil {
		return nil, err
	}
	if arr.NDim() > 1 {
		return nil, fmt.Errorf("%w: repeats must be a scalar or 1-D", tensor.ErrShapeMismatch)
	}
	switch arr.DType() {
	case tensor.Int64:
		return toInts(tensor.Values[int64](arr)), nil
	case tensor.Int32:
		return toInts(tensor.Values[int32](arr)), nil
	case tensor.Uint8:
		return toInts(arr.AsUint8()), nil
	default:
		return nil, fmt.Errorf("%w: repeats must be integers, got %s", tensor.ErrTypeMismatch, arr.DType())
	}
}

func toInts[T tensor.Integer](data []T) []int {
	out := make([]int, len(data))
	for i, v := range data {
		out[i] = int(v)
	}
	return out
}
