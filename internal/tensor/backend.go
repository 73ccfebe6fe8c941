package tensor

// Backend defines the capability the array engine lowers its operations onto.
// The engine validates every argument and computes every output shape before
// calling a Backend, so implementations receive resolved, in-range axes and
// pre-allocated destinations of the correct shape and dtype.
//
// Implementations:
//   - internal/backend/cpu: Pure Go, parallel over independent lanes
//   - MockBackend: naive single-threaded reference used by tests
//
// Errors returned by a Backend are propagated to the caller unchanged.
type Backend interface {
	// Allocation
	Allocate(shape Shape, dtype DataType) (*RawTensor, error)

	// Bit packing thunks. axis is already resolved to [0, ndim).
	PackBits(dst, src *RawTensor, axis int, order BitOrder) error   // groups of 8 along axis into bytes
	UnpackBits(dst, src *RawTensor, axis int, order BitOrder) error // bytes into 0/1 elements, zero-padded to dst

	// Shape operations
	Reshape(x *RawTensor, shape Shape) (*RawTensor, error)  // same elements, new shape
	Transpose(x *RawTensor, axes []int) (*RawTensor, error) // axes is a full permutation
	Expand(x *RawTensor, shape Shape) (*RawTensor, error)   // broadcast to shape
	Tile(x *RawTensor, reps []int) (*RawTensor, error)      // len(reps) == x.NDim()
	Repeat(x *RawTensor, repeats []int, axis int) (*RawTensor, error)

	// Element-wise binary operations with broadcasting
	Add(a, b *RawTensor) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
