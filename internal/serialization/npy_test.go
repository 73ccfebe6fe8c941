package serialization

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/numgo/internal/tensor"
)

// buildNPY assembles a .npy stream by hand. The header gets its terminating
// newline but no padding.
func buildNPY(major byte, header string, data []byte) []byte {
	header += "\n"
	var buf bytes.Buffer
	buf.WriteString(MagicBytes)
	buf.WriteByte(major)
	buf.WriteByte(0)
	if major == 1 {
		_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	} else {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(header)))
	}
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func TestRoundTripAllDTypes(t *testing.T) {
	arrays := []*tensor.RawTensor{
		mustValues(t, []bool{true, false, true}, tensor.Shape{3}),
		mustValues(t, []int8{-1, 2, -3, 4}, tensor.Shape{2, 2}),
		mustValues(t, []int16{-300, 300}, tensor.Shape{2}),
		mustValues(t, []int32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3}),
		mustValues(t, []int64{-1 << 40}, tensor.Shape{}),
		mustValues(t, []uint8{0, 255, 7}, tensor.Shape{3, 1}),
		mustValues(t, []uint16{65535}, tensor.Shape{1}),
		mustValues(t, []uint32{1 << 31, 1}, tensor.Shape{2}),
		mustValues(t, []uint64{1 << 63}, tensor.Shape{1, 1}),
		mustValues(t, []float32{1.5, -2.25}, tensor.Shape{2}),
		mustValues(t, []float64{3.141592653589793}, tensor.Shape{1}),
		mustValues(t, []uint8{}, tensor.Shape{2, 0, 3}),
	}

	for _, a := range arrays {
		t.Run(a.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, a))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, a.DType(), got.DType())
			assert.Equal(t, a.Shape(), got.Shape())
			assert.Equal(t, a.Data(), got.Data())
			assert.Zero(t, buf.Len(), "reader must consume the whole stream")
		})
	}
}

func TestWriteHeaderLayout(t *testing.T) {
	a := mustValues(t, []uint8{3}, tensor.Shape{1, 1})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))
	out := buf.Bytes()

	assert.Equal(t, MagicBytes, string(out[:6]))
	assert.Equal(t, []byte{1, 0}, out[6:8])

	headerLen := int(binary.LittleEndian.Uint16(out[8:10]))
	dataStart := 10 + headerLen
	assert.Zero(t, dataStart%HeaderAlignment, "data must be 64-byte aligned")
	assert.Equal(t, byte('\n'), out[dataStart-1])

	header := strings.TrimRight(string(out[10:dataStart]), " \n")
	assert.Equal(t, "{'descr': '|u1', 'fortran_order': False, 'shape': (1, 1), }", header)
	assert.Equal(t, []byte{3}, out[dataStart:])
}

func TestWriteFlatArrays(t *testing.T) {
	tests := []struct {
		name  string
		a     *tensor.RawTensor
		shape string
	}{
		{"vector", mustValues(t, []int16{1, -2, 3}, tensor.Shape{3}), "(3,)"},
		{"scalar", mustValues(t, []float64{0.5}, tensor.Shape{}), "()"},
		{"empty", mustValues(t, []bool{}, tensor.Shape{0}), "(0,)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.a))
			assert.Contains(t, buf.String(), "'shape': "+tt.shape+", }")

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.a.Shape(), got.Shape())
			assert.Equal(t, tt.a.Data(), got.Data())
		})
	}
}

func TestEncodeHeaderSwitchesToV2(t *testing.T) {
	shape := make(tensor.Shape, 30000)
	for i := range shape {
		shape[i] = 1
	}
	text, major := encodeHeader(Header{Descr: "|u1", Shape: shape})
	assert.Equal(t, byte(2), major)
	assert.Zero(t, (prefixSizeV2+len(text))%HeaderAlignment)
}

func TestReadVariants(t *testing.T) {
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}

	tests := []struct {
		name   string
		stream []byte
		shape  tensor.Shape
	}{
		{"version 1.0", buildNPY(1, "{'descr': '<i4', 'fortran_order': False, 'shape': (3,), }", data), tensor.Shape{3}},
		{"version 2.0", buildNPY(2, "{'descr': '<i4', 'fortran_order': False, 'shape': (3,), }", data), tensor.Shape{3}},
		{"padded", buildNPY(1, "{'descr': '<i4', 'fortran_order': False, 'shape': (1, 3), }        ", data), tensor.Shape{1, 3}},
		{"fortran 1-D", buildNPY(1, "{'descr': '<i4', 'fortran_order': True, 'shape': (3,), }", data), tensor.Shape{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(bytes.NewReader(tt.stream))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, got.Shape())
			assert.Equal(t, []int32{1, 2, 3}, tensor.Values[int32](got))
		})
	}
}

func TestReadErrors(t *testing.T) {
	valid := "{'descr': '<i4', 'fortran_order': False, 'shape': (2,), }"
	data := make([]byte, 8)

	bigHeader := []byte(MagicBytes + "\x02\x00")
	bigHeader = binary.LittleEndian.AppendUint32(bigHeader, MaxHeaderSize+1)

	tests := []struct {
		name   string
		stream []byte
		want   error
	}{
		{"bad magic", append([]byte("\x93NUMPZ\x01\x00"), make([]byte, 10)...), ErrInvalidMagic},
		{"empty", nil, ErrTruncated},
		{"version 3.0", buildNPY(3, valid, data), ErrUnsupportedVersion},
		{"minor version", append([]byte(MagicBytes+"\x01\x01"), make([]byte, 4)...), ErrUnsupportedVersion},
		{"header too large", bigHeader, ErrHeaderTooLarge},
		{"truncated header", buildNPY(1, valid, nil)[:20], ErrTruncated},
		{"truncated data", buildNPY(1, valid, data[:5]), ErrTruncated},
		{"big endian", buildNPY(1, "{'descr': '>i4', 'fortran_order': False, 'shape': (2,), }", data), ErrUnsupportedDType},
		{"unicode dtype", buildNPY(1, "{'descr': '<U3', 'fortran_order': False, 'shape': (2,), }", data), ErrUnsupportedDType},
		{"structured", buildNPY(1, "{'descr': [('x', '<i4')], 'fortran_order': False, 'shape': (2,), }", data), ErrUnsupportedDType},
		{"fortran 2-D", buildNPY(1, "{'descr': '<i4', 'fortran_order': True, 'shape': (1, 2), }", data), ErrFortranOrder},
		{"missing shape", buildNPY(1, "{'descr': '<i4', 'fortran_order': False}", data), ErrInvalidHeader},
		{"key order", buildNPY(1, "{'shape': (2,), 'fortran_order': False, 'descr': '<i4', }", data), ErrInvalidHeader},
		{"python 2 long", buildNPY(1, "{'descr': '<i4', 'fortran_order': False, 'shape': (2L,), }", data), ErrInvalidHeader},
		{"no trailing comma", buildNPY(1, "{'descr': '<i4', 'fortran_order': False, 'shape': (2,)}", data), ErrInvalidHeader},
		{"bad fortran flag", buildNPY(1, "{'descr': '<i4', 'fortran_order': 0, 'shape': (2,), }", data), ErrInvalidHeader},
		{"native order", buildNPY(1, "{'descr': '=i4', 'fortran_order': False, 'shape': (2,), }", data), ErrUnsupportedDType},
		{"bad shape", buildNPY(1, "{'descr': '<i4', 'fortran_order': False, 'shape': (-2,)}", data), ErrInvalidHeader},
		{"not a dict", buildNPY(1, "['descr']", data), ErrInvalidHeader},
		{"trailing data", buildNPY(1, valid+" x", data), ErrInvalidHeader},
		{"unterminated", buildNPY(1, "{'descr: '<i4'", data), ErrInvalidHeader},
		{"huge shape", buildNPY(1, "{'descr': '<f8', 'fortran_order': False, 'shape': (4294967296, 4294967296), }", data), ErrInvalidHeader},
		{"shape larger than data", buildNPY(1, "{'descr': '|u1', 'fortran_order': False, 'shape': (1073741824,), }", data), ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.stream))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Streams that do not report their length are buffered up to the declared
// size, so a short stream fails without allocating the declared array.
func TestReadShortUnsizedStream(t *testing.T) {
	stream := buildNPY(1, "{'descr': '|u1', 'fortran_order': False, 'shape': (1073741824,), }", []byte{1, 2, 3})
	_, err := Read(io.MultiReader(bytes.NewReader(stream)))
	assert.ErrorIs(t, err, ErrTruncated)

	stream = buildNPY(1, "{'descr': '|u1', 'fortran_order': False, 'shape': (3,), }", []byte{1, 2, 3})
	got, err := Read(io.MultiReader(bytes.NewReader(stream)))
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3}, got.AsUint8())
}

func TestReadFileDeclaredSizeExceedsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostile.npy")
	stream := buildNPY(1, "{'descr': '<f8', 'fortran_order': False, 'shape': (1024, 1024, 1024), }", make([]byte, 16))
	require.NoError(t, os.WriteFile(path, stream, 0o600))

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Contains(t, err.Error(), "header declares 8589934592 data bytes, 16 remain")
}

func TestHeaderErrorMessage(t *testing.T) {
	text := "{'descr': '<i4', 'fortran_order': False}\n"
	_, err := parseHeader(buildNPY(1, "{'descr': '<i4', 'fortran_order': False}", nil), text)
	var headerErr *HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, "shape", headerErr.Field)
	assert.Equal(t, "invalid header: shape: missing or out of order", err.Error())
}

func TestDescr(t *testing.T) {
	for dt, descr := range descrs {
		got, err := ParseDescr(descr)
		require.NoError(t, err)
		assert.Equal(t, dt, got)

		back, err := DescrOf(dt)
		require.NoError(t, err)
		assert.Equal(t, descr, back)
	}

	got, err := ParseDescr("<u1")
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, got)

	for _, descr := range []string{">u1", ">i4", "=i4", "|i4"} {
		_, err = ParseDescr(descr)
		assert.ErrorIs(t, err, ErrUnsupportedDType, descr)
	}

	_, err = DescrOf(tensor.DataType(99))
	assert.ErrorIs(t, err, ErrUnsupportedDType)
	_, err = ParseDescr("<c16")
	assert.ErrorIs(t, err, ErrUnsupportedDType)
	_, err = ParseDescr("!i4")
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bits.npy")
	a := mustValues(t, []bool{true, true, false, true, false, false, false, false, true}, tensor.Shape{3, 3})

	require.NoError(t, WriteFile(path, a))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.AsBool(), got.AsBool())
	assert.Equal(t, a.Shape(), got.Shape())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.npy"))
	assert.Error(t, err)
	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.npy"), a))
}

func mustValues[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromValues(data, shape, tensor.CPU)
	require.NoError(t, err)
	return raw
}
