package cpu

import (
	"github.com/born-ml/numgo/internal/parallel"
	"github.com/born-ml/numgo/internal/tensor"
)

// computeFlatIndex computes the flat index in the source array for a given
// output coordinate. inStrides are broadcast-adjusted: 0 on stretched axes.
func computeFlatIndex(coords, inStrides []int) int {
	flatIdx := 0
	for i, c := range coords {
		flatIdx += c * inStrides[i]
	}
	return flatIdx
}

// unravel writes the row-major coordinates of flat index n into coords.
func unravel(n int, shape tensor.Shape, coords []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		coords[i] = n % shape[i]
		n /= shape[i]
	}
}

// gather fills dst so that element n is the src element at index(coords of n).
// Elements are copied as raw bytes, so it works for every dtype. index must
// be safe for concurrent use; coords is owned by the calling chunk.
func gather(dst, src *tensor.RawTensor, cfg parallel.Config, index func(coords []int) int) error {
	size := dst.DType().Size()
	out := dst.Data()
	in := src.Data()
	shape := dst.Shape()

	return parallel.Range(shape.NumElements(), cfg, func(start, end int) error {
		coords := make([]int, len(shape))
		for n := start; n < end; n++ {
			unravel(n, shape, coords)
			j := index(coords)
			copy(out[n*size:(n+1)*size], in[j*size:(j+1)*size])
		}
		return nil
	})
}
