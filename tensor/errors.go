// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/numgo/internal/tensor"
)

// Errors returned by array operations. Test for them with errors.Is.
var (
	ErrTypeMismatch    = tensor.ErrTypeMismatch
	ErrOutOfBounds     = tensor.ErrOutOfBounds
	ErrInvalidBitOrder = tensor.ErrInvalidBitOrder
	ErrShapeMismatch   = tensor.ErrShapeMismatch
)

// AxisError reports an axis outside [-ndim, ndim). It matches ErrOutOfBounds.
type AxisError = tensor.AxisError
