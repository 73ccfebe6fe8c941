package cpu

import (
	"fmt"

	"github.com/born-ml/numgo/internal/tensor"
)

// Reshape returns a view of x with a new shape. The data is not copied.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	view, err := x.View(shape)
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	return view, nil
}

// Transpose permutes the dimensions of x. axes must be a full permutation.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, axes []int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)
	if len(axes) != ndim {
		return nil, fmt.Errorf("transpose: %w: %d axes for %dD array", tensor.ErrShapeMismatch, len(axes), ndim)
	}

	seen := make([]bool, ndim)
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("transpose: %w: axis %d for %dD array", tensor.ErrOutOfBounds, ax, ndim)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: %w: repeated axis %d", tensor.ErrShapeMismatch, ax)
		}
		seen[ax] = true
		newShape[i] = shape[ax]
	}

	result, err := cpu.Allocate(newShape, x.DType())
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	// Output dimension i walks input dimension axes[i].
	inStrides := x.Strides()
	permStrides := make([]int, ndim)
	for i, ax := range axes {
		permStrides[i] = inStrides[ax]
	}
	if err := gather(result, x, cpu.config, func(coords []int) int {
		return computeFlatIndex(coords, permStrides)
	}); err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	return result, nil
}

// Expand broadcasts x to shape, materializing the stretched dimensions.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if err := tensor.CanBroadcastTo(x.Shape(), shape); err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	result, err := cpu.Allocate(shape, x.DType())
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	strides := tensor.BroadcastStrides(x.Shape(), shape)
	if err := gather(result, x, cpu.config, func(coords []int) int {
		return computeFlatIndex(coords, strides)
	}); err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	return result, nil
}

// Tile repeats x reps[i] times along each dimension i.
func (cpu *CPUBackend) Tile(x *tensor.RawTensor, reps []int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if len(reps) != len(shape) {
		return nil, fmt.Errorf("tile: %w: %d reps for %dD array", tensor.ErrShapeMismatch, len(reps), len(shape))
	}

	outShape := make(tensor.Shape, len(shape))
	for i, r := range reps {
		if r < 0 {
			return nil, fmt.Errorf("tile: %w: negative reps %d", tensor.ErrShapeMismatch, r)
		}
		outShape[i] = shape[i] * r
	}

	result, err := cpu.Allocate(outShape, x.DType())
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}

	inStrides := x.Strides()
	if err := gather(result, x, cpu.config, func(coords []int) int {
		idx := 0
		for i, c := range coords {
			idx += (c % shape[i]) * inStrides[i]
		}
		return idx
	}); err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	return result, nil
}

// Repeat repeats the elements of x along axis. repeats holds either one
// count for every element or one count per element along axis.
func (cpu *CPUBackend) Repeat(x *tensor.RawTensor, repeats []int, axis int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if axis < 0 || axis >= len(shape) {
		return nil, fmt.Errorf("repeat: %w: axis %d for %dD array", tensor.ErrOutOfBounds, axis, len(shape))
	}
	extent := shape[axis]
	if len(repeats) != 1 && len(repeats) != extent {
		return nil, fmt.Errorf("repeat: %w: %d repeats for extent %d", tensor.ErrShapeMismatch, len(repeats), extent)
	}

	// source[k] is the input position along axis for output position k.
	source := make([]int, 0, extent)
	for j := range extent {
		r := repeats[0]
		if len(repeats) > 1 {
			r = repeats[j]
		}
		if r < 0 {
			return nil, fmt.Errorf("repeat: %w: negative repeats %d", tensor.ErrShapeMismatch, r)
		}
		for range r {
			source = append(source, j)
		}
	}

	result, err := cpu.Allocate(shape.With(axis, len(source)), x.DType())
	if err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}

	inStrides := x.Strides()
	if err := gather(result, x, cpu.config, func(coords []int) int {
		idx := 0
		for i, c := range coords {
			if i == axis {
				c = source[c]
			}
			idx += c * inStrides[i]
		}
		return idx
	}); err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	return result, nil
}
