package tensor

import "fmt"

// Packable is the constraint for element types PackBits accepts.
type Packable interface {
	~bool | Integer
}

// Tensor is a generic array with element type T and backend B.
// It wraps a RawTensor and fixes its dtype at compile time.
//
// Example:
//
//	backend := cpu.New()
//	t, _ := tensor.FromSlice([]bool{true, false, true}, tensor.Shape{3}, backend)
//	packed, _ := tensor.Pack(t, tensor.NoAxis, tensor.BigEndian) // Tensor[uint8]
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a Tensor from a RawTensor and backend.
// Panics if the RawTensor's dtype does not match T.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	if want := inferDataType[T](); raw.DType() != want {
		panic(fmt.Sprintf("tensor: raw dtype %s does not match %s", raw.DType(), want))
	}
	return &Tensor[T, B]{
		raw:     raw,
		backend: b,
	}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	raw, err := FromValues(data, shape, b.Device())
	if err != nil {
		return nil, err
	}
	return New[T, B](raw, b), nil
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	raw, err := b.Allocate(shape, inferDataType[T]())
	if err != nil {
		return nil, err
	}
	return New[T, B](raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// NDim returns the tensor's rank.
func (t *Tensor[T, B]) NDim() int {
	return t.raw.NDim()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Data returns a typed slice view of the tensor's data.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T, B]) Data() []T {
	return Values[T](t.raw)
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) At(indices ...int) T {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}

	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}

	return t.Data()[offset]
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.raw.DType(), t.raw.Shape(), t.raw.Device())
}

// Pack is the typed form of PackBits.
func Pack[T Packable, B Backend](t *Tensor[T, B], axis Axis, order BitOrder) (*Tensor[uint8, B], error) {
	raw, err := PackBits(t.backend, t.raw, axis, order)
	if err != nil {
		return nil, err
	}
	return New[uint8, B](raw, t.backend), nil
}

// Unpack is the typed form of UnpackBits.
func Unpack[B Backend](t *Tensor[uint8, B], axis Axis, count Count, order BitOrder) (*Tensor[uint8, B], error) {
	raw, err := UnpackBits(t.backend, t.raw, axis, count, order)
	if err != nil {
		return nil, err
	}
	return New[uint8, B](raw, t.backend), nil
}
