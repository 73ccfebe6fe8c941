// Package coverage lists the NumPy functions numgo provides and how each one
// is served. The table is fixed at build time: a name that is not listed is
// unknown, and nothing is looked up dynamically.
package coverage

import (
	"sort"

	"github.com/samber/lo"
)

// Status tells how a NumPy function is served.
type Status int

const (
	// Native functions are implemented by numgo.
	Native Status = iota
	// Fallback functions are known but unsupported; callers must use a
	// reference implementation instead.
	Fallback
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Native:
		return "native"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Entry describes one NumPy function.
type Entry struct {
	Name   string // NumPy name, e.g. "packbits"
	Status Status
	Note   string
}

var table = map[string]Entry{}

func register(status Status, note string, names ...string) {
	for _, name := range names {
		table[name] = Entry{Name: name, Status: status, Note: note}
	}
}

func init() {
	register(Native, "bit packing", "packbits", "unpackbits")
	register(Native, "broadcasting", "broadcast_shapes", "broadcast_to", "add")
	register(Native, "shape manipulation", "tile", "repeat", "transpose", "ravel", "reshape")
	register(Native, "creation", "zeros", "full", "arange", "asarray")
	register(Native, "file io", "load", "save")

	register(Fallback, "bitwise", "bitwise_and", "bitwise_or", "bitwise_xor", "invert", "left_shift", "right_shift", "bitwise_count")
	register(Fallback, "arithmetic", "subtract", "multiply", "divide", "power")
	register(Fallback, "reductions", "sum", "prod", "mean", "max", "min", "argmax", "argmin")
	register(Fallback, "linear algebra", "dot", "matmul", "einsum")
	register(Fallback, "shape manipulation", "concatenate", "stack", "squeeze", "expand_dims", "flip", "roll")
}

// Lookup returns the entry for name. Unknown names report false.
func Lookup(name string) (Entry, bool) {
	e, ok := table[name]
	return e, ok
}

// Names returns every known function name, sorted.
func Names() []string {
	names := lo.Keys(table)
	sort.Strings(names)
	return names
}

// Entries returns every entry sorted by name.
func Entries() []Entry {
	return lo.Map(Names(), func(name string, _ int) Entry {
		return table[name]
	})
}

// NativeNames returns the sorted names of natively implemented functions.
func NativeNames() []string {
	return lo.Filter(Names(), func(name string, _ int) bool {
		return table[name].Status == Native
	})
}
