// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package numpy

import (
	"fmt"
	"reflect"

	"github.com/born-ml/numgo/tensor"
)

// AxisArg converts an axis argument: nil is None, any Go integer is an
// explicit axis. Floats are rejected even when integral, like NumPy.
func AxisArg(v any) (tensor.Axis, error) {
	if a, ok := v.(tensor.Axis); ok {
		return a, nil
	}
	n, set, err := intArg("axis", v)
	if err != nil || !set {
		return tensor.NoAxis, err
	}
	return tensor.AxisOf(n), nil
}

// CountArg converts a count argument: nil is None, any Go integer is an
// explicit count.
func CountArg(v any) (tensor.Count, error) {
	if c, ok := v.(tensor.Count); ok {
		return c, nil
	}
	n, set, err := intArg("count", v)
	if err != nil || !set {
		return tensor.AllBits, err
	}
	return tensor.CountOf(n), nil
}

// OrderArg converts a bitorder argument. The empty string means "big".
func OrderArg(order string) tensor.BitOrder {
	if order == "" {
		return tensor.BigEndian
	}
	return tensor.BitOrder(order)
}

func intArg(name string, v any) (n int, set bool, err error) {
	if v == nil {
		return 0, false, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(maxInt) {
			return 0, false, fmt.Errorf("%w: %s %d does not fit in int", tensor.ErrOutOfBounds, name, u)
		}
		return int(u), true, nil
	case reflect.Float32, reflect.Float64:
		return 0, false, fmt.Errorf("%w: %s must be an integer, got float %v", tensor.ErrTypeMismatch, name, v)
	default:
		return 0, false, fmt.Errorf("%w: %s must be an integer or None, got %T", tensor.ErrTypeMismatch, name, v)
	}
}

const maxInt = int(^uint(0) >> 1)
