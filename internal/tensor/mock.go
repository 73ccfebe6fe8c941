package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively, one element at a time, for
// correctness verification against optimized backends. It also records the
// calls it receives so tests can check what the engine delegated.
type MockBackend struct {
	Calls []string // Operation names in call order

	// Fail, when set, is returned by every data operation.
	Fail error
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

func (m *MockBackend) record(op string) error {
	m.Calls = append(m.Calls, op)
	return m.Fail
}

// Allocate creates a zeroed array.
func (m *MockBackend) Allocate(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := m.record("allocate"); err != nil {
		return nil, err
	}
	return NewRaw(shape, dtype, m.Device())
}

// PackBits packs src into dst one bit at a time.
func (m *MockBackend) PackBits(dst, src *RawTensor, axis int, order BitOrder) error {
	if err := m.record("packbits"); err != nil {
		return err
	}
	outer, inner := src.Shape().Lanes(axis)
	extent := src.Shape()[axis]
	packed := dst.Shape()[axis]
	nonZero := NonZeroFunc(src)
	out := dst.AsUint8()

	for o := 0; o < outer; o++ {
		for k := 0; k < extent; k++ {
			for i := 0; i < inner; i++ {
				if !nonZero((o*extent+k)*inner + i) {
					continue
				}
				out[(o*packed+k/8)*inner+i] |= BitMask(k%8, order)
			}
		}
	}
	return nil
}

// UnpackBits expands src into dst one bit at a time.
func (m *MockBackend) UnpackBits(dst, src *RawTensor, axis int, order BitOrder) error {
	if err := m.record("unpackbits"); err != nil {
		return err
	}
	outer, inner := src.Shape().Lanes(axis)
	extent := src.Shape()[axis]
	unpacked := dst.Shape()[axis]
	in := src.AsUint8()
	out := dst.AsUint8()

	for o := 0; o < outer; o++ {
		for k := 0; k < unpacked; k++ {
			for i := 0; i < inner; i++ {
				var bit uint8
				if k < extent*8 && in[(o*extent+k/8)*inner+i]&BitMask(k%8, order) != 0 {
					bit = 1
				}
				out[(o*unpacked+k)*inner+i] = bit
			}
		}
	}
	return nil
}

// Reshape returns a view with the new shape.
func (m *MockBackend) Reshape(x *RawTensor, shape Shape) (*RawTensor, error) {
	if err := m.record("reshape"); err != nil {
		return nil, err
	}
	return x.View(shape)
}

// Transpose permutes dimensions element by element.
func (m *MockBackend) Transpose(x *RawTensor, axes []int) (*RawTensor, error) {
	if err := m.record("transpose"); err != nil {
		return nil, err
	}
	shape := x.Shape()
	outShape := make(Shape, len(axes))
	for i, ax := range axes {
		outShape[i] = shape[ax]
	}
	result, err := NewRaw(outShape, x.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	inStrides := x.Strides()
	m.copyElements(result, x, func(coords []int) int {
		idx := 0
		for i, ax := range axes {
			idx += coords[i] * inStrides[ax]
		}
		return idx
	})
	return result, nil
}

// Expand broadcasts x to shape.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) (*RawTensor, error) {
	if err := m.record("expand"); err != nil {
		return nil, err
	}
	if err := CanBroadcastTo(x.Shape(), shape); err != nil {
		return nil, err
	}
	result, err := NewRaw(shape, x.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	strides := BroadcastStrides(x.Shape(), shape)
	m.copyElements(result, x, func(coords []int) int {
		idx := 0
		for i, c := range coords {
			idx += c * strides[i]
		}
		return idx
	})
	return result, nil
}

// Tile repeats x reps[i] times along each dimension.
func (m *MockBackend) Tile(x *RawTensor, reps []int) (*RawTensor, error) {
	if err := m.record("tile"); err != nil {
		return nil, err
	}
	shape := x.Shape()
	if len(reps) != len(shape) {
		return nil, fmt.Errorf("%w: tile: %d reps for %dD array", ErrShapeMismatch, len(reps), len(shape))
	}
	outShape := make(Shape, len(shape))
	for i := range shape {
		outShape[i] = shape[i] * reps[i]
	}
	result, err := NewRaw(outShape, x.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	inStrides := x.Strides()
	m.copyElements(result, x, func(coords []int) int {
		idx := 0
		for i, c := range coords {
			idx += (c % shape[i]) * inStrides[i]
		}
		return idx
	})
	return result, nil
}

// Repeat repeats elements of x along axis.
func (m *MockBackend) Repeat(x *RawTensor, repeats []int, axis int) (*RawTensor, error) {
	if err := m.record("repeat"); err != nil {
		return nil, err
	}
	shape := x.Shape()
	extent := shape[axis]

	// source[k] is the input position along axis for output position k.
	var source []int
	for j := 0; j < extent; j++ {
		r := repeats[0]
		if len(repeats) > 1 {
			r = repeats[j]
		}
		for n := 0; n < r; n++ {
			source = append(source, j)
		}
	}

	result, err := NewRaw(shape.With(axis, len(source)), x.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	inStrides := x.Strides()
	m.copyElements(result, x, func(coords []int) int {
		idx := 0
		for i, c := range coords {
			if i == axis {
				c = source[c]
			}
			idx += c * inStrides[i]
		}
		return idx
	})
	return result, nil
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) (*RawTensor, error) {
	if err := m.record("add"); err != nil {
		return nil, err
	}
	outShape, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	aStrides := BroadcastStrides(a.Shape(), outShape)
	bStrides := BroadcastStrides(b.Shape(), outShape)
	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, outShape.NumElements())

	coords := make([]int, len(outShape))
	for n := range resultData {
		unravel(n, outShape, coords)
		aIdx, bIdx := 0, 0
		for i, c := range coords {
			aIdx += c * aStrides[i]
			bIdx += c * bStrides[i]
		}
		resultData[n] = aData[aIdx] + bData[bIdx]
	}

	m.fromFloat64Slice(resultData, result)
	return result, nil
}

// copyElements fills dst by copying, for every output coordinate, the
// source element at the flat index returned by srcIndex.
func (m *MockBackend) copyElements(dst, src *RawTensor, srcIndex func(coords []int) int) {
	size := dst.DType().Size()
	out := dst.Data()
	in := src.Data()
	shape := dst.Shape()
	coords := make([]int, len(shape))
	for n := 0; n < shape.NumElements(); n++ {
		unravel(n, shape, coords)
		j := srcIndex(coords)
		copy(out[n*size:(n+1)*size], in[j*size:(j+1)*size])
	}
}

// toFloat64Slice converts any supported dtype to []float64.
func (m *MockBackend) toFloat64Slice(r *RawTensor) []float64 {
	result := make([]float64, r.NumElements())
	switch r.DType() {
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				result[i] = 1
			}
		}
	case Int8:
		convertTo(result, Values[int8](r))
	case Int16:
		convertTo(result, Values[int16](r))
	case Int32:
		convertTo(result, Values[int32](r))
	case Int64:
		convertTo(result, Values[int64](r))
	case Uint8:
		convertTo(result, Values[uint8](r))
	case Uint16:
		convertTo(result, Values[uint16](r))
	case Uint32:
		convertTo(result, Values[uint32](r))
	case Uint64:
		convertTo(result, Values[uint64](r))
	case Float32:
		convertTo(result, Values[float32](r))
	case Float64:
		copy(result, Values[float64](r))
	}
	return result
}

// fromFloat64Slice writes []float64 back into r's dtype.
func (m *MockBackend) fromFloat64Slice(data []float64, r *RawTensor) {
	switch r.DType() {
	case Bool:
		out := r.AsBool()
		for i, v := range data {
			out[i] = v != 0
		}
	case Int8:
		convertTo(Values[int8](r), data)
	case Int16:
		convertTo(Values[int16](r), data)
	case Int32:
		convertTo(Values[int32](r), data)
	case Int64:
		convertTo(Values[int64](r), data)
	case Uint8:
		convertTo(Values[uint8](r), data)
	case Uint16:
		convertTo(Values[uint16](r), data)
	case Uint32:
		convertTo(Values[uint32](r), data)
	case Uint64:
		convertTo(Values[uint64](r), data)
	case Float32:
		convertTo(Values[float32](r), data)
	case Float64:
		copy(Values[float64](r), data)
	}
}

func convertTo[D, S Number](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

// unravel writes the row-major coordinates of flat index n into coords.
func unravel(n int, shape Shape, coords []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		coords[i] = n % shape[i]
		n /= shape[i]
	}
}
