// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/numgo/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Array operations validate their arguments and compute output shapes, then
// lower the data movement onto a Backend.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel over independent lanes
//
// Example:
//
//	import (
//	    "github.com/born-ml/numgo/tensor"
//	    "github.com/born-ml/numgo/backend/cpu"
//	)
//
//	backend := cpu.New()
//	a, _ := tensor.FromValues([]bool{true, true}, tensor.Shape{2}, tensor.CPU)
//	packed, _ := tensor.PackBits(backend, a, tensor.NoAxis, tensor.LittleEndian) // [3]
type Backend interface {
	// Allocation.
	Allocate(shape Shape, dtype DataType) (*RawTensor, error) // Zeroed array.

	// Bit packing. axis is resolved to [0, ndim).
	PackBits(dst, src *RawTensor, axis int, order BitOrder) error   // Groups of 8 elements into bytes.
	UnpackBits(dst, src *RawTensor, axis int, order BitOrder) error // Bytes into 0/1 elements.

	// Shape operations.
	Reshape(x *RawTensor, shape Shape) (*RawTensor, error)              // Same elements, new shape.
	Transpose(x *RawTensor, axes []int) (*RawTensor, error)             // Permute dimensions.
	Expand(x *RawTensor, shape Shape) (*RawTensor, error)               // Broadcast to shape.
	Tile(x *RawTensor, reps []int) (*RawTensor, error)                  // Repeat the whole array.
	Repeat(x *RawTensor, repeats []int, axis int) (*RawTensor, error) // Repeat elements along axis.

	// Element-wise binary operations.
	Add(a, b *RawTensor) (*RawTensor, error) // Element-wise addition with broadcasting.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
