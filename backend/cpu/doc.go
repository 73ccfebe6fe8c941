// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for numgo arrays.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Bit packing kernels for every boolean and integer dtype
//   - NumPy-compatible broadcasting, tiling and repetition
//   - Work split across goroutines by independent lanes
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/numgo/backend/cpu"
//	    "github.com/born-ml/numgo/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    mask, _ := tensor.Full[bool](tensor.Shape{4, 16}, true, backend)
//	    packed, _ := tensor.Pack(mask, tensor.AxisOf(-1), tensor.BigEndian)
//	    // packed: shape (4, 2), every byte 255
//	}
//
// # Performance
//
// A lane is one line of elements along the packing axis. Lanes never share
// output bytes, so kernels process them in parallel without locks. The
// number of goroutines and the minimum lanes per goroutine come from the
// environment or a JSON config file (see NewFromFile).
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each array operation
// is isolated and does not share mutable state.
package cpu
