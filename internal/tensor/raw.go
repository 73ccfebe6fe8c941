package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device for array operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level, untyped array representation.
// Data is stored contiguously in row-major order. The shape of a RawTensor
// never changes; reshaping produces a new RawTensor.
type RawTensor struct {
	data   []byte   // Backing bytes, possibly shared with views
	shape  Shape    // Array dimensions
	stride []int    // Element strides (row-major)
	dtype  DataType // Runtime type information
	device Device   // Compute device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the array's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// NDim returns the rank of the array.
func (r *RawTensor) NDim() int {
	return len(r.shape)
}

// Strides returns the array's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the array's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the array's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// View returns a RawTensor with a new shape over the same bytes.
// The element count must not change.
func (r *RawTensor) View(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape array of size %d into shape %v",
			ErrShapeMismatch, r.NumElements(), shape)
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// String returns a short description of the array.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}

// AsUint8 interprets the data as []uint8.
// Panics if the array's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	return Values[uint8](r)
}

// AsBool interprets the data as []bool.
// Panics if the array's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	return Values[bool](r)
}

// Values interprets the data of r as []T without copying.
// Panics if T does not match the array's dtype.
func Values[T DType](r *RawTensor) []T {
	want := inferDataType[T]()
	if r.dtype != want {
		panic(fmt.Sprintf("array dtype is %s, not %s", r.dtype, want))
	}
	n := r.NumElements()
	if n == 0 {
		return []T{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}

// FromValues creates a RawTensor holding a copy of data with the given shape.
func FromValues[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, inferDataType[T](), device)
	if err != nil {
		return nil, err
	}
	copy(Values[T](raw), data)
	return raw, nil
}
