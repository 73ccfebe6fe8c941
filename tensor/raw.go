// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/numgo/internal/tensor"
)

// RawTensor is the low-level array representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Zero-copy data access via Values[T](), AsUint8(), AsBool()
//   - Zero-copy reshaping via View() and deep copies via Clone()
//
// Most users should use the high-level Tensor[T, B] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Uint8, tensor.CPU)
//	data := raw.AsUint8()  // Shares the array's memory
//	clone := raw.Clone()   // Independent copy
type RawTensor = tensor.RawTensor
