// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/numgo/backend/cpu"
	internalcpu "github.com/born-ml/numgo/internal/backend/cpu"
	"github.com/born-ml/numgo/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*internalcpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Uint16, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want (2, 3)", raw.Shape())
	}
	if raw.DType() != tensor.Uint16 {
		t.Errorf("DType() = %v, want uint16", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if n := raw.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}
	if got, want := raw.ByteSize(), 6*2; got != want {
		t.Errorf("ByteSize() = %d, want %d", got, want)
	}

	data := tensor.Values[uint16](raw)
	data[0] = 7
	clone := raw.Clone()
	data[0] = 8
	if tensor.Values[uint16](clone)[0] != 7 {
		t.Error("Clone() shares memory with the original")
	}
}

func TestPackBitsPublicAPI(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromValues([]bool{true, false, true, true}, tensor.Shape{2, 2}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}

	packed, err := tensor.PackBits(backend, a, tensor.AxisOf(-1), tensor.BigEndian)
	if err != nil {
		t.Fatalf("PackBits failed: %v", err)
	}
	if !packed.Shape().Equal(tensor.Shape{2, 1}) {
		t.Errorf("packed shape = %v, want (2, 1)", packed.Shape())
	}
	if got := packed.AsUint8(); got[0] != 128 || got[1] != 192 {
		t.Errorf("packed = %v, want [128 192]", got)
	}

	bits, err := tensor.UnpackBits(backend, packed, tensor.AxisOf(-1), tensor.CountOf(2), tensor.BigEndian)
	if err != nil {
		t.Fatalf("UnpackBits failed: %v", err)
	}
	want := []uint8{1, 0, 1, 1}
	for i, v := range bits.AsUint8() {
		if v != want[i] {
			t.Errorf("bits[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestShapeFunctions(t *testing.T) {
	out, err := tensor.PackBitsShape(tensor.Shape{3, 17}, tensor.Int32, tensor.AxisOf(1), tensor.LittleEndian)
	if err != nil || !out.Equal(tensor.Shape{3, 3}) {
		t.Errorf("PackBitsShape = %v, %v; want (3, 3)", out, err)
	}

	out, err = tensor.UnpackBitsShape(tensor.Shape{4}, tensor.Uint8, tensor.NoAxis, tensor.AllBits, tensor.BigEndian)
	if err != nil || !out.Equal(tensor.Shape{32}) {
		t.Errorf("UnpackBitsShape = %v, %v; want (32,)", out, err)
	}

	_, err = tensor.PackBitsShape(tensor.Shape{3}, tensor.Float64, tensor.AxisOf(5), tensor.BigEndian)
	if !errors.Is(err, tensor.ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch before the axis check, got %v", err)
	}

	_, err = tensor.PackBitsShape(tensor.Shape{3}, tensor.Bool, tensor.AxisOf(1), tensor.BigEndian)
	var axisErr *tensor.AxisError
	if !errors.As(err, &axisErr) || !errors.Is(err, tensor.ErrOutOfBounds) {
		t.Errorf("expected *AxisError, got %v", err)
	}
}

func TestTypedPack(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]int16{0, 5, 0, -1, 0, 0, 0, 9, 1}, tensor.Shape{9}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	packed, err := tensor.Pack(x, tensor.NoAxis, tensor.LittleEndian)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	// Bits 1, 3 and 7 of the first byte, bit 0 of the second.
	if got := packed.Data(); len(got) != 2 || got[0] != 0x8A || got[1] != 0x01 {
		t.Errorf("Pack = %v, want [138 1]", got)
	}

	bits, err := tensor.Unpack(packed, tensor.NoAxis, tensor.CountOf(9), tensor.LittleEndian)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got := bits.NumElements(); got != 9 {
		t.Errorf("Unpack kept %d elements, want 9", got)
	}
}

func TestManipulationPublicAPI(t *testing.T) {
	backend := cpu.New()
	a, _ := tensor.FromValues([]int64{1, 2}, tensor.Shape{2}, tensor.CPU)

	tiled, err := tensor.Tile(backend, a, 2, 2)
	if err != nil || !tiled.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("Tile = %v, %v; want shape (2, 4)", tiled, err)
	}

	col, _ := tensor.FromValues([]int64{10, 20}, tensor.Shape{2, 1}, tensor.CPU)
	sum, err := tensor.Add(backend, col, a)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := []int64{11, 12, 21, 22}
	for i, v := range tensor.Values[int64](sum) {
		if v != want[i] {
			t.Errorf("sum[%d] = %d, want %d", i, v, want[i])
		}
	}

	shape, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4})
	if err != nil || !shape.Equal(tensor.Shape{3, 4}) {
		t.Errorf("BroadcastShapes = %v, %v; want (3, 4)", shape, err)
	}

	if dt, err := tensor.ParseDataType("u1"); err != nil || dt != tensor.Uint8 {
		t.Errorf("ParseDataType(u1) = %v, %v", dt, err)
	}
}
