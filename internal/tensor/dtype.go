// Package tensor provides the core array types, shape resolution and the
// bit packing engine for numgo.
package tensor

import (
	"fmt"
	"strings"
)

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~bool | Integer | ~float32 | ~float64
}

// Integer is the constraint for integer element types.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Number is the constraint for element types that support arithmetic.
type Number interface {
	Integer | ~float32 | ~float64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// Kind classifies a DataType the way NumPy's dtype.kind does.
type Kind byte

// Kinds.
const (
	KindBool     Kind = 'b'
	KindSigned   Kind = 'i'
	KindUnsigned Kind = 'u'
	KindFloat    Kind = 'f'
)

// String returns the NumPy kind character.
func (k Kind) String() string {
	return string(rune(k))
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// Kind returns the kind classifier of the data type.
func (dt DataType) Kind() Kind {
	switch dt {
	case Bool:
		return KindBool
	case Int8, Int16, Int32, Int64:
		return KindSigned
	case Uint8, Uint16, Uint32, Uint64:
		return KindUnsigned
	case Float32, Float64:
		return KindFloat
	default:
		panic("unknown data type")
	}
}

// IsInteger reports whether the data type is a signed or unsigned integer.
func (dt DataType) IsInteger() bool {
	k := dt.Kind()
	return k == KindSigned || k == KindUnsigned
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType converts a NumPy dtype name into a DataType.
// Single-character codes follow NumPy: "B" is uint8 and "b" is int8.
func ParseDataType(name string) (DataType, error) {
	switch strings.TrimSpace(name) {
	case "bool", "?", "b1":
		return Bool, nil
	case "int8", "i1", "b":
		return Int8, nil
	case "int16", "i2":
		return Int16, nil
	case "int32", "i4":
		return Int32, nil
	case "int64", "i8", "int":
		return Int64, nil
	case "uint8", "u1", "B":
		return Uint8, nil
	case "uint16", "u2":
		return Uint16, nil
	case "uint32", "u4":
		return Uint32, nil
	case "uint64", "u8":
		return Uint64, nil
	case "float32", "f4":
		return Float32, nil
	case "float64", "f8", "float":
		return Float64, nil
	default:
		return 0, fmt.Errorf("%w: unknown dtype %q", ErrTypeMismatch, name)
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}

// DataTypeOf returns the DataType matching the Go element type T.
func DataTypeOf[T DType]() DataType {
	return inferDataType[T]()
}
