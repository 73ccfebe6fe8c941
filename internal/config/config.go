// Package config loads the runtime tuning of numgo backends from a JSON file
// and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/born-ml/numgo/internal/monitoring"
	"github.com/born-ml/numgo/internal/parallel"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvWorkers  = "NUMGO_WORKERS"
	EnvParallel = "NUMGO_PARALLEL"
	EnvMinChunk = "NUMGO_MIN_CHUNK"
)

// Config holds backend tuning. Nil fields fall back to parallel.DefaultConfig.
type Config struct {
	Workers  *int  `json:"workers,omitempty"`   // Goroutine limit for lane kernels
	MinChunk *int  `json:"min_chunk,omitempty"` // Minimum lanes per goroutine
	Parallel *bool `json:"parallel,omitempty"`  // false forces sequential kernels
}

func ptrInt(v int) *int    { return &v }
func ptrBool(v bool) *bool { return &v }

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Default returns the configuration taken from the environment alone.
// Invalid environment values are logged and ignored.
func Default() *Config {
	cfg := Empty()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		monitoring.Logf("numgo: ignoring environment: %v", err)
		return Empty()
	}
	return cfg
}

// Load reads a Config from a JSON file and applies environment overrides.
// The file must have a .json extension and be at most 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = ptrInt(n)
	}
	if v, ok := lookup(EnvMinChunk); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMinChunk, v, err)
		}
		c.MinChunk = ptrInt(n)
	}
	if v, ok := lookup(EnvParallel); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvParallel, v, err)
		}
		c.Parallel = ptrBool(b)
	}
	return c.Validate()
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", *c.Workers)
	}
	if c.MinChunk != nil && *c.MinChunk < 1 {
		return fmt.Errorf("min_chunk must be positive, got %d", *c.MinChunk)
	}
	return nil
}

// GetWorkers returns the worker limit or the default.
func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return parallel.DefaultConfig().NumWorkers
	}
	return *c.Workers
}

// GetMinChunk returns the minimum chunk size or the default.
func (c *Config) GetMinChunk() int {
	if c.MinChunk == nil {
		return parallel.DefaultConfig().MinChunkSize
	}
	return *c.MinChunk
}

// GetParallel reports whether kernels may run concurrently.
func (c *Config) GetParallel() bool {
	if c.Parallel == nil {
		return parallel.DefaultConfig().Enabled
	}
	return *c.Parallel && c.GetWorkers() > 1
}

// ParallelConfig converts c into the settings used by backend kernels.
func (c *Config) ParallelConfig() parallel.Config {
	return parallel.Config{
		Enabled:      c.GetParallel(),
		NumWorkers:   c.GetWorkers(),
		MinChunkSize: c.GetMinChunk(),
	}
}
