package cpu

import (
	"unsafe"

	"github.com/samber/lo"
	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the host in bytes.
var CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

type feature struct {
	name string
	ok   bool
}

// Features lists the SIMD extensions detected on the host.
func Features() []string {
	all := []feature{
		{"sse4.1", cpu.X86.HasSSE41},
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"asimd", cpu.ARM64.HasASIMD},
		{"sve", cpu.ARM64.HasSVE},
	}
	return lo.FilterMap(all, func(f feature, _ int) (string, bool) {
		return f.name, f.ok
	})
}
