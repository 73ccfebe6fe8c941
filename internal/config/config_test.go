package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/numgo/internal/parallel"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEmptyUsesParallelDefaults(t *testing.T) {
	cfg := Empty()
	def := parallel.DefaultConfig()

	assert.Equal(t, def.NumWorkers, cfg.GetWorkers())
	assert.Equal(t, def.MinChunkSize, cfg.GetMinChunk())
	assert.Equal(t, def, cfg.ParallelConfig())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "numgo.json", `{"workers": 3, "min_chunk": 16, "parallel": true}`)
	t.Setenv(EnvWorkers, "")
	os.Unsetenv(EnvWorkers)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 16}, cfg.ParallelConfig())
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"parallel": false}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Workers)
	assert.False(t, cfg.ParallelConfig().Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "numgo.json", `{"workers": 3}`)
	t.Setenv(EnvWorkers, "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.GetWorkers())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"wrong extension", func(t *testing.T) string { return writeConfig(t, "numgo.yaml", "{}") }, ".json extension"},
		{"missing", func(*testing.T) string { return "/nonexistent/numgo.json" }, "stat"},
		{"bad json", func(t *testing.T) string { return writeConfig(t, "bad.json", `{"workers": "x"`) }, "parse"},
		{"invalid value", func(t *testing.T) string { return writeConfig(t, "zero.json", `{"workers": 0}`) }, "workers must be positive"},
		{"too large", func(t *testing.T) string {
			return writeConfig(t, "big.json", `{"workers": 2}`+strings.Repeat(" ", 1<<20))
		}, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Empty()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvWorkers:  "2",
		EnvMinChunk: "8",
		EnvParallel: "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, parallel.Config{Enabled: false, NumWorkers: 2, MinChunkSize: 8}, cfg.ParallelConfig())

	require.NoError(t, Empty().ApplyEnv(noEnv))

	assert.Error(t, Empty().ApplyEnv(envMap(map[string]string{EnvWorkers: "many"})))
	assert.Error(t, Empty().ApplyEnv(envMap(map[string]string{EnvParallel: "maybe"})))
	assert.Error(t, Empty().ApplyEnv(envMap(map[string]string{EnvMinChunk: "-1"})))
}

func TestSingleWorkerDisablesParallel(t *testing.T) {
	cfg := &Config{Workers: ptrInt(1), Parallel: ptrBool(true)}
	assert.False(t, cfg.GetParallel())
}

func TestDefaultIgnoresInvalidEnv(t *testing.T) {
	t.Setenv(EnvWorkers, "not-a-number")
	cfg := Default()
	assert.Nil(t, cfg.Workers)
}
