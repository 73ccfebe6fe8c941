package coverage

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		found  bool
		status Status
	}{
		{"packbits", true, Native},
		{"unpackbits", true, Native},
		{"tile", true, Native},
		{"bitwise_and", true, Fallback},
		{"matmul", true, Fallback},
		{"frobnicate", false, Native},
		{"", false, Native},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Lookup(tt.name)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.name, e.Name)
				assert.Equal(t, tt.status, e.Status)
				assert.NotEmpty(t, e.Note)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, Entries(), len(names))
	for i, e := range Entries() {
		assert.Equal(t, names[i], e.Name)
	}
}

func TestNativeNames(t *testing.T) {
	native := NativeNames()
	assert.Contains(t, native, "packbits")
	assert.Contains(t, native, "unpackbits")
	assert.NotContains(t, native, "bitwise_and")
	for _, name := range native {
		e, _ := Lookup(name)
		assert.Equal(t, Native, e.Status)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "native", Native.String())
	assert.Equal(t, "fallback", Fallback.String())
	assert.Equal(t, "unknown", Status(9).String())
}
