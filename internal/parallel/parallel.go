// Package parallel provides parallel execution utilities for numgo backends.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Chunks returns the chunk size Range uses for n items, or n when the work
// runs sequentially.
func (cfg Config) Chunks(n int) int {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*cfg.MinChunkSize {
		return n
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// Range splits [0, n) into contiguous chunks and calls f(start, end) for
// each, concurrently when cfg allows it. It returns the first error any
// chunk reported, after every started chunk has finished.
func Range(n int, cfg Config, f func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	chunkSize := cfg.Chunks(n)
	if chunkSize >= n {
		// Sequential fallback.
		return f(0, n)
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			return f(start, end)
		})
	}
	return g.Wait()
}
