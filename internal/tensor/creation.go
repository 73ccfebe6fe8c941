package tensor

// Full creates a tensor filled with value.
//
// Example:
//
//	t, _ := tensor.Full[bool](Shape{2, 8}, true, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) (*Tensor[T, B], error) {
	t, err := Zeros[T, B](shape, b)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Arange creates a 1D tensor with values from start to end (exclusive).
// An empty tensor is returned when end <= start.
//
// Example:
//
//	t, _ := tensor.Arange[int32](0, 10, backend) // [0, 1, 2, ..., 9]
func Arange[T Number, B Backend](start, end T, b B) (*Tensor[T, B], error) {
	n := 0
	for v := start; v < end; v++ {
		n++
	}

	t, err := Zeros[T, B](Shape{n}, b)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	v := start
	for i := range data {
		data[i] = v
		v++
	}
	return t, nil
}
