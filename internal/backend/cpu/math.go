package cpu

import (
	"fmt"

	"github.com/born-ml/numgo/internal/parallel"
	"github.com/born-ml/numgo/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
// Integer addition wraps on overflow; boolean addition is logical or.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("add: %w: %s and %s", tensor.ErrTypeMismatch, a.DType(), b.DType())
	}
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	result, err := cpu.Allocate(outShape, a.DType())
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	op := binaryOp{
		shape:    outShape,
		aStrides: tensor.BroadcastStrides(a.Shape(), outShape),
		bStrides: tensor.BroadcastStrides(b.Shape(), outShape),
		same:     a.Shape().Equal(b.Shape()),
		cfg:      cpu.config,
	}

	switch a.DType() {
	case tensor.Bool:
		err = applyBinary(op, result.AsBool(), a.AsBool(), b.AsBool(), func(x, y bool) bool { return x || y })
	case tensor.Int8:
		err = applyBinary(op, tensor.Values[int8](result), tensor.Values[int8](a), tensor.Values[int8](b), add[int8])
	case tensor.Int16:
		err = applyBinary(op, tensor.Values[int16](result), tensor.Values[int16](a), tensor.Values[int16](b), add[int16])
	case tensor.Int32:
		err = applyBinary(op, tensor.Values[int32](result), tensor.Values[int32](a), tensor.Values[int32](b), add[int32])
	case tensor.Int64:
		err = applyBinary(op, tensor.Values[int64](result), tensor.Values[int64](a), tensor.Values[int64](b), add[int64])
	case tensor.Uint8:
		err = applyBinary(op, result.AsUint8(), a.AsUint8(), b.AsUint8(), add[uint8])
	case tensor.Uint16:
		err = applyBinary(op, tensor.Values[uint16](result), tensor.Values[uint16](a), tensor.Values[uint16](b), add[uint16])
	case tensor.Uint32:
		err = applyBinary(op, tensor.Values[uint32](result), tensor.Values[uint32](a), tensor.Values[uint32](b), add[uint32])
	case tensor.Uint64:
		err = applyBinary(op, tensor.Values[uint64](result), tensor.Values[uint64](a), tensor.Values[uint64](b), add[uint64])
	case tensor.Float32:
		err = applyBinary(op, tensor.Values[float32](result), tensor.Values[float32](a), tensor.Values[float32](b), add[float32])
	case tensor.Float64:
		err = applyBinary(op, tensor.Values[float64](result), tensor.Values[float64](a), tensor.Values[float64](b), add[float64])
	default:
		err = fmt.Errorf("%w: unsupported dtype %s", tensor.ErrTypeMismatch, a.DType())
	}
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return result, nil
}

func add[T tensor.Number](x, y T) T {
	return x + y
}

// binaryOp carries the broadcast layout of an element-wise binary operation.
type binaryOp struct {
	shape              tensor.Shape
	aStrides, bStrides []int
	same               bool // Operands share the output shape, no index math needed
	cfg                parallel.Config
}

func applyBinary[T tensor.DType](op binaryOp, out, a, b []T, f func(x, y T) T) error {
	if op.same {
		// Fast path: same shape.
		return parallel.Range(len(out), op.cfg, func(start, end int) error {
			for i := start; i < end; i++ {
				out[i] = f(a[i], b[i])
			}
			return nil
		})
	}

	// Slow path: broadcasting required.
	return parallel.Range(len(out), op.cfg, func(start, end int) error {
		coords := make([]int, len(op.shape))
		for n := start; n < end; n++ {
			unravel(n, op.shape, coords)
			out[n] = f(a[computeFlatIndex(coords, op.aStrides)], b[computeFlatIndex(coords, op.bStrides)])
		}
		return nil
	})
}
