package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"

	"github.com/born-ml/numgo/internal/tensor"
)

// Write encodes r to w in .npy format, C order.
//
// Scalars and 1-D arrays are written by npyio as version 2.0 files. Arrays of
// higher rank get a version 1.0 header padded to HeaderAlignment, or 2.0
// when the header does not fit a uint16 length.
func Write(w io.Writer, r *tensor.RawTensor) error {
	descr, err := DescrOf(r.DType())
	if err != nil {
		return err
	}
	if r.NDim() <= 1 {
		if err := writeFlat(w, r); err != nil {
			return fmt.Errorf("failed to write array: %w", err)
		}
		return nil
	}
	text, major := encodeHeader(Header{Descr: descr, Shape: r.Shape()})

	prefix := make([]byte, 0, prefixSizeV2)
	prefix = append(prefix, MagicBytes...)
	prefix = append(prefix, major, 0)
	if major == 1 {
		prefix = binary.LittleEndian.AppendUint16(prefix, uint16(len(text))) //nolint:gosec // G115: bounded by encodeHeader
	} else {
		prefix = binary.LittleEndian.AppendUint32(prefix, uint32(len(text))) //nolint:gosec // G115: bounded by MaxHeaderSize
	}

	if _, err := w.Write(prefix); err != nil {
		return fmt.Errorf("failed to write prefix: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(r.Data()[:r.ByteSize()]); err != nil {
		return fmt.Errorf("failed to write array data: %w", err)
	}
	return nil
}

func writeFlat(w io.Writer, r *tensor.RawTensor) error {
	switch r.DType() {
	case tensor.Bool:
		return writeValues(w, r.AsBool(), r.NDim())
	case tensor.Int8:
		return writeValues(w, tensor.Values[int8](r), r.NDim())
	case tensor.Int16:
		return writeValues(w, tensor.Values[int16](r), r.NDim())
	case tensor.Int32:
		return writeValues(w, tensor.Values[int32](r), r.NDim())
	case tensor.Int64:
		return writeValues(w, tensor.Values[int64](r), r.NDim())
	case tensor.Uint8:
		return writeValues(w, r.AsUint8(), r.NDim())
	case tensor.Uint16:
		return writeValues(w, tensor.Values[uint16](r), r.NDim())
	case tensor.Uint32:
		return writeValues(w, tensor.Values[uint32](r), r.NDim())
	case tensor.Uint64:
		return writeValues(w, tensor.Values[uint64](r), r.NDim())
	case tensor.Float32:
		return writeValues(w, tensor.Values[float32](r), r.NDim())
	case tensor.Float64:
		return writeValues(w, tensor.Values[float64](r), r.NDim())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDType, r.DType())
	}
}

// writeValues writes data as a 1-D array, or as a scalar when ndim is 0.
func writeValues[T tensor.DType](w io.Writer, data []T, ndim int) error {
	if ndim == 0 {
		return npyio.Write(w, data[0])
	}
	return npyio.Write(w, data)
}

// WriteFile saves r as a .npy file, replacing any existing file.
func WriteFile(path string, r *tensor.RawTensor) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	buf := bufio.NewWriter(file)
	if err := Write(buf, r); err != nil {
		return err
	}
	return buf.Flush()
}
