package cpu

import (
	"fmt"

	"github.com/born-ml/numgo/internal/parallel"
	"github.com/born-ml/numgo/internal/tensor"
)

// PackBits packs groups of 8 elements of src along axis into the bytes of dst.
// Each (outer, inner) lane is independent, so lanes are split across workers.
func (cpu *CPUBackend) PackBits(dst, src *tensor.RawTensor, axis int, order tensor.BitOrder) error {
	if err := checkLaneArgs(src, axis, order); err != nil {
		return fmt.Errorf("packbits: %w", err)
	}
	shape := src.Shape()
	want := shape.With(axis, tensor.PackedExtent(shape[axis]))
	if err := checkDestination(dst, want); err != nil {
		return fmt.Errorf("packbits: %w", err)
	}

	outer, inner := shape.Lanes(axis)
	l := lanes{outer: outer, extent: shape[axis], inner: inner, order: order}
	out := dst.AsUint8()

	switch src.DType() {
	case tensor.Bool:
		return packLanes(out, src.AsBool(), l, cpu.config)
	case tensor.Int8:
		return packLanes(out, tensor.Values[int8](src), l, cpu.config)
	case tensor.Int16:
		return packLanes(out, tensor.Values[int16](src), l, cpu.config)
	case tensor.Int32:
		return packLanes(out, tensor.Values[int32](src), l, cpu.config)
	case tensor.Int64:
		return packLanes(out, tensor.Values[int64](src), l, cpu.config)
	case tensor.Uint8:
		return packLanes(out, src.AsUint8(), l, cpu.config)
	case tensor.Uint16:
		return packLanes(out, tensor.Values[uint16](src), l, cpu.config)
	case tensor.Uint32:
		return packLanes(out, tensor.Values[uint32](src), l, cpu.config)
	case tensor.Uint64:
		return packLanes(out, tensor.Values[uint64](src), l, cpu.config)
	default:
		return fmt.Errorf("packbits: %w: cannot pack %s elements", tensor.ErrTypeMismatch, src.DType())
	}
}

// UnpackBits expands the bytes of src along axis into 0/1 elements of dst.
// dst's extent along axis decides how many bits are kept: extra positions
// past the available bits are zero-filled.
func (cpu *CPUBackend) UnpackBits(dst, src *tensor.RawTensor, axis int, order tensor.BitOrder) error {
	if err := checkLaneArgs(src, axis, order); err != nil {
		return fmt.Errorf("unpackbits: %w", err)
	}
	if src.DType() != tensor.Uint8 {
		return fmt.Errorf("unpackbits: %w: expected uint8 input, got %s", tensor.ErrTypeMismatch, src.DType())
	}
	shape := src.Shape()
	if dst.NDim() != len(shape) {
		return fmt.Errorf("unpackbits: %w: destination rank %d, want %d", tensor.ErrShapeMismatch, dst.NDim(), len(shape))
	}
	unpacked := dst.Shape()[axis]
	if err := checkDestination(dst, shape.With(axis, unpacked)); err != nil {
		return fmt.Errorf("unpackbits: %w", err)
	}

	outer, inner := shape.Lanes(axis)
	l := lanes{outer: outer, extent: shape[axis], inner: inner, order: order}
	return unpackLanes(dst.AsUint8(), src.AsUint8(), unpacked, l, cpu.config)
}

// lanes describes the (outer, extent, inner) decomposition of an array
// around the packing axis.
type lanes struct {
	outer, extent, inner int
	order                tensor.BitOrder
}

func (l lanes) count() int {
	return l.outer * l.inner
}

func packLanes[T tensor.Packable](out []uint8, in []T, l lanes, cfg parallel.Config) error {
	packed := tensor.PackedExtent(l.extent)
	var zero T

	return parallel.Range(l.count(), cfg, func(start, end int) error {
		for lane := start; lane < end; lane++ {
			o, i := lane/l.inner, lane%l.inner
			src := o*l.extent*l.inner + i
			dst := o*packed*l.inner + i

			for k := 0; k < l.extent; k += 8 {
				var b uint8
				for j := range min(8, l.extent-k) {
					if in[src+(k+j)*l.inner] != zero {
						b |= tensor.BitMask(j, l.order)
					}
				}
				out[dst+(k/8)*l.inner] = b
			}
		}
		return nil
	})
}

func unpackLanes(out, in []uint8, unpacked int, l lanes, cfg parallel.Config) error {
	bits := min(unpacked, 8*l.extent)

	return parallel.Range(l.count(), cfg, func(start, end int) error {
		for lane := start; lane < end; lane++ {
			o, i := lane/l.inner, lane%l.inner
			src := o*l.extent*l.inner + i
			dst := o*unpacked*l.inner + i

			for k := 0; k < bits; k++ {
				var bit uint8
				if in[src+(k/8)*l.inner]&tensor.BitMask(k%8, l.order) != 0 {
					bit = 1
				}
				out[dst+k*l.inner] = bit
			}
			// Zero padding when more elements are requested than bits exist.
			for k := bits; k < unpacked; k++ {
				out[dst+k*l.inner] = 0
			}
		}
		return nil
	})
}

func checkLaneArgs(src *tensor.RawTensor, axis int, order tensor.BitOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if axis < 0 || axis >= src.NDim() {
		return fmt.Errorf("%w: axis %d for %dD array", tensor.ErrOutOfBounds, axis, src.NDim())
	}
	return nil
}

func checkDestination(dst *tensor.RawTensor, want tensor.Shape) error {
	if dst.DType() != tensor.Uint8 {
		return fmt.Errorf("%w: destination dtype %s, want uint8", tensor.ErrTypeMismatch, dst.DType())
	}
	if !dst.Shape().Equal(want) {
		return fmt.Errorf("%w: destination shape %v, want %v", tensor.ErrShapeMismatch, dst.Shape(), want)
	}
	return nil
}
