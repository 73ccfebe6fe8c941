// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe arrays and NumPy-compatible bit packing
// for numgo.
//
// # Overview
//
// This package provides:
//   - Generic type-safe arrays (Tensor[T, B]) over untyped RawTensor storage
//   - PackBits and UnpackBits with NumPy's axis, count and bitorder semantics
//   - NumPy-style broadcasting, Tile, Repeat and Transpose
//   - Device abstraction through the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/numgo/tensor"
//	    "github.com/born-ml/numgo/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    a, _ := tensor.FromValues([]bool{true, false, true, true}, tensor.Shape{2, 2}, tensor.CPU)
//
//	    // Pack along the last axis, most significant bit first.
//	    packed, _ := tensor.PackBits(backend, a, tensor.AxisOf(-1), tensor.BigEndian)
//	    // packed: shape (2, 1), values [128, 192]
//
//	    // Unpack and keep the original two columns.
//	    bits, _ := tensor.UnpackBits(backend, packed, tensor.AxisOf(-1), tensor.CountOf(2), tensor.BigEndian)
//	    // bits: shape (2, 2), values [1, 0, 1, 1]
//	}
//
// # Supported Data Types
//
//   - bool
//   - int8, int16, int32, int64
//   - uint8, uint16, uint32, uint64
//   - float32, float64 (not accepted by PackBits)
//
// # Axis Semantics
//
// Axes may be negative and count from the end. NoAxis flattens the input
// before packing, so the result is one-dimensional. An axis outside
// [-ndim, ndim) fails with an *AxisError that matches ErrOutOfBounds.
//
// # Bit Order
//
// BigEndian stores the first element of each group of 8 in the most
// significant bit; LittleEndian stores it in the least significant bit.
// A short final group is padded with zero bits.
//
// # Broadcasting
//
// Add and BroadcastTo follow NumPy broadcasting rules:
//
//	shape, _ := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4}) // (3, 4)
package tensor
