package tensor

// BitMask returns the mask of the bit that holds element k (0..7) of a
// packed group under the given order.
func BitMask(k int, order BitOrder) uint8 {
	if order == LittleEndian {
		return 1 << uint(k)
	}
	return 0x80 >> uint(k)
}

// NonZeroFunc returns a predicate reporting whether element i of r is
// non-zero. It panics for float dtypes, which cannot be packed.
func NonZeroFunc(r *RawTensor) func(i int) bool {
	switch r.DType() {
	case Bool:
		data := r.AsBool()
		return func(i int) bool { return data[i] }
	case Int8:
		return nonZero(Values[int8](r))
	case Int16:
		return nonZero(Values[int16](r))
	case Int32:
		return nonZero(Values[int32](r))
	case Int64:
		return nonZero(Values[int64](r))
	case Uint8:
		return nonZero(Values[uint8](r))
	case Uint16:
		return nonZero(Values[uint16](r))
	case Uint32:
		return nonZero(Values[uint32](r))
	case Uint64:
		return nonZero(Values[uint64](r))
	default:
		panic("nonzero: unsupported dtype " + r.DType().String())
	}
}

func nonZero[T Integer](data []T) func(i int) bool {
	return func(i int) bool { return data[i] != 0 }
}
