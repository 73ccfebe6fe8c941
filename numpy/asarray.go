// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package numpy

import (
	"fmt"
	"reflect"

	"github.com/born-ml/numgo/tensor"
)

// AsArray converts v into an array on the CPU.
//
// Accepted inputs:
//   - *tensor.RawTensor, returned as is
//   - flat slices of bool, signed or unsigned integers and floats
//   - nested rectangular slices or arrays of those, including []any
//   - Go scalars, which become 0-d arrays
//
// Go int and uint map to int64 and uint64. Ragged input fails with
// tensor.ErrShapeMismatch; other element types and mixed element kinds fail
// with tensor.ErrTypeMismatch.
func AsArray(v any) (*tensor.RawTensor, error) {
	// Flat slices of supported element types need no reflection.
	switch x := v.(type) {
	case *tensor.RawTensor:
		if x == nil {
			return nil, fmt.Errorf("asarray: %w: nil array", tensor.ErrTypeMismatch)
		}
		return x, nil
	case []bool:
		return flat(x)
	case []int8:
		return flat(x)
	case []int16:
		return flat(x)
	case []int32:
		return flat(x)
	case []int64:
		return flat(x)
	case []uint8:
		return flat(x)
	case []uint16:
		return flat(x)
	case []uint32:
		return flat(x)
	case []uint64:
		return flat(x)
	case []float32:
		return flat(x)
	case []float64:
		return flat(x)
	case nil:
		return nil, fmt.Errorf("asarray: %w: nil input", tensor.ErrTypeMismatch)
	}

	var c collector
	if err := c.walk(reflect.ValueOf(v), 0); err != nil {
		return nil, fmt.Errorf("asarray: %w", err)
	}
	return c.build()
}

func flat[T tensor.DType](data []T) (*tensor.RawTensor, error) {
	return tensor.FromValues(data, tensor.Shape{len(data)}, tensor.CPU)
}

// collector flattens nested Go values into leaves while recording the shape.
type collector struct {
	shape  tensor.Shape
	leaves []reflect.Value
	kind   reflect.Kind
	seen   bool // shape is fixed once the first leaf is reached
}

func (c *collector) walk(v reflect.Value, depth int) error {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil element", tensor.ErrTypeMismatch)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := v.Len()
		switch {
		case !c.seen && depth == len(c.shape):
			c.shape = append(c.shape, n)
		case depth >= len(c.shape) || c.shape[depth] != n:
			return fmt.Errorf("%w: inhomogeneous nested sequence at depth %d", tensor.ErrShapeMismatch, depth)
		}
		if n == 0 {
			// No leaves below: the element type decides the dtype.
			if !c.seen {
				c.kind = leafKind(v.Type().Elem())
				c.seen = true
			}
			return nil
		}
		for i := 0; i < n; i++ {
			if err := c.walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		if !c.seen {
			c.kind = v.Kind()
			c.seen = true
		}
		if depth != len(c.shape) {
			return fmt.Errorf("%w: inhomogeneous nested sequence at depth %d", tensor.ErrShapeMismatch, depth)
		}
		if v.Kind() != c.kind {
			return fmt.Errorf("%w: mixed element kinds %s and %s", tensor.ErrTypeMismatch, c.kind, v.Kind())
		}
		c.leaves = append(c.leaves, v)
		return nil
	}
}

// leafKind returns the kind of the innermost element type of t.
func leafKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind()
}

var kindTypes = map[reflect.Kind]tensor.DataType{
	reflect.Bool:    tensor.Bool,
	reflect.Int8:    tensor.Int8,
	reflect.Int16:   tensor.Int16,
	reflect.Int32:   tensor.Int32,
	reflect.Int64:   tensor.Int64,
	reflect.Int:     tensor.Int64,
	reflect.Uint8:   tensor.Uint8,
	reflect.Uint16:  tensor.Uint16,
	reflect.Uint32:  tensor.Uint32,
	reflect.Uint64:  tensor.Uint64,
	reflect.Uint:    tensor.Uint64,
	reflect.Float32: tensor.Float32,
	reflect.Float64: tensor.Float64,
}

func (c *collector) build() (*tensor.RawTensor, error) {
	dt, ok := kindTypes[c.kind]
	if c.kind == reflect.Interface && len(c.leaves) == 0 {
		// An empty []any carries no element type; NumPy defaults to float64.
		dt, ok = tensor.Float64, true
	}
	if !ok {
		return nil, fmt.Errorf("asarray: %w: unsupported element kind %s", tensor.ErrTypeMismatch, c.kind)
	}
	raw, err := tensor.NewRaw(c.shape, dt, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("asarray: %w", err)
	}

	switch dt {
	case tensor.Bool:
		fill(raw.AsBool(), c.leaves, reflect.Value.Bool)
	case tensor.Int8:
		fill(tensor.Values[int8](raw), c.leaves, signed[int8])
	case tensor.Int16:
		fill(tensor.Values[int16](raw), c.leaves, signed[int16])
	case tensor.Int32:
		fill(tensor.Values[int32](raw), c.leaves, signed[int32])
	case tensor.Int64:
		fill(tensor.Values[int64](raw), c.leaves, reflect.Value.Int)
	case tensor.Uint8:
		fill(raw.AsUint8(), c.leaves, unsigned[uint8])
	case tensor.Uint16:
		fill(tensor.Values[uint16](raw), c.leaves, unsigned[uint16])
	case tensor.Uint32:
		fill(tensor.Values[uint32](raw), c.leaves, unsigned[uint32])
	case tensor.Uint64:
		fill(tensor.Values[uint64](raw), c.leaves, reflect.Value.Uint)
	case tensor.Float32:
		fill(tensor.Values[float32](raw), c.leaves, func(v reflect.Value) float32 { return float32(v.Float()) })
	case tensor.Float64:
		fill(tensor.Values[float64](raw), c.leaves, reflect.Value.Float)
	}
	return raw, nil
}

func fill[T any](dst []T, leaves []reflect.Value, get func(reflect.Value) T) {
	for i, leaf := range leaves {
		dst[i] = get(leaf)
	}
}

func signed[T ~int8 | ~int16 | ~int32](v reflect.Value) T {
	return T(v.Int())
}

func unsigned[T ~uint8 | ~uint16 | ~uint32](v reflect.Value) T {
	return T(v.Uint())
}
