// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/numgo/internal/backend/cpu"
	"github.com/born-ml/numgo/internal/config"
	"github.com/born-ml/numgo/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all array operations,
// parallelized over independent lanes.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend tuned from the environment
// (NUMGO_WORKERS, NUMGO_MIN_CHUNK, NUMGO_PARALLEL).
//
// Example:
//
//	import (
//	    "github.com/born-ml/numgo/backend/cpu"
//	    "github.com/born-ml/numgo/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.Zeros[uint8](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.NewWithConfig(config.Default().ParallelConfig())
}

// NewFromFile creates a CPU backend tuned by a JSON config file such as
//
//	{"workers": 4, "min_chunk": 64, "parallel": true}
//
// Environment variables override values from the file.
func NewFromFile(path string) (*Backend, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return internalcpu.NewWithConfig(cfg.ParallelConfig()), nil
}
