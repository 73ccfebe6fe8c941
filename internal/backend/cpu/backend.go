// Package cpu implements the CPU backend with lane-parallel kernels.
package cpu

import (
	"strings"

	"github.com/born-ml/numgo/internal/monitoring"
	"github.com/born-ml/numgo/internal/parallel"
	"github.com/born-ml/numgo/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements array operations on CPU. Kernels split their work
// into independent lanes and run them on a bounded number of goroutines.
type CPUBackend struct {
	device tensor.Device
	config parallel.Config
}

// New creates a new CPU backend with parallel.DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallel settings.
// A non-positive MinChunkSize defaults to one cache line of lanes.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = CacheLineSize
	}
	if cfg.NumWorkers <= 1 {
		cfg.NumWorkers = 1
		cfg.Enabled = false
	}

	monitoring.Logf("cpu backend: parallel=%t workers=%d min_chunk=%d cache_line=%d features=[%s]",
		cfg.Enabled, cfg.NumWorkers, cfg.MinChunkSize, CacheLineSize, strings.Join(Features(), " "))

	return &CPUBackend{
		device: tensor.CPU,
		config: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Config returns the parallel settings used by the kernels.
func (cpu *CPUBackend) Config() parallel.Config {
	return cpu.config
}

// Allocate creates a zeroed array on the CPU.
func (cpu *CPUBackend) Allocate(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return tensor.NewRaw(shape, dtype, cpu.device)
}
