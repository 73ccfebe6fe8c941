package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"

	"github.com/born-ml/numgo/internal/tensor"
)

// Read decodes one .npy array from r. The array is placed on the CPU device.
//
// When r reports the bytes it holds (bytes.Reader, strings.Reader,
// bytes.Buffer), a header that declares more data than that is rejected
// before the array is allocated. Other streams are buffered up to the
// declared size first.
func Read(r io.Reader) (*tensor.RawTensor, error) {
	avail := int64(-1)
	if l, ok := r.(interface{ Len() int }); ok {
		avail = int64(l.Len())
	}
	return read(r, avail)
}

// ReadFile loads a .npy file.
func ReadFile(path string) (*tensor.RawTensor, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	raw, err := read(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// read decodes an array from r, which holds avail bytes, or an unknown
// number when avail is negative.
func read(r io.Reader, avail int64) (*tensor.RawTensor, error) {
	br := bufio.NewReader(r)
	block, prefixLen, err := readHeaderBlock(br)
	if err != nil {
		return nil, err
	}

	h, err := parseHeader(block, string(block[prefixLen:]))
	if err != nil {
		return nil, err
	}
	dt, err := validateHeader(h)
	if err != nil {
		return nil, err
	}

	size := int64(h.Shape.NumElements()) * int64(dt.Size())
	var data io.Reader = br
	if avail >= 0 {
		if left := avail - int64(len(block)); size > left {
			return nil, fmt.Errorf("%w: header declares %d data bytes, %d remain", ErrTruncated, size, left)
		}
	} else {
		buf, err := io.ReadAll(io.LimitReader(br, size))
		if err != nil {
			return nil, fmt.Errorf("failed to read array data: %w", err)
		}
		if int64(len(buf)) < size {
			return nil, fmt.Errorf("%w: header declares %d data bytes, %d remain", ErrTruncated, size, len(buf))
		}
		data = bytes.NewReader(buf)
	}

	raw, err := tensor.NewRaw(h.Shape, dt, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate array: %w", err)
	}
	nr, err := npyio.NewReader(io.MultiReader(bytes.NewReader(block), data))
	if err != nil {
		return nil, &HeaderError{Details: err.Error()}
	}
	if err := decode(nr, raw); err != nil {
		return nil, truncated("array data", err)
	}
	return raw, nil
}

// readHeaderBlock reads the magic, version, header length and header text,
// and returns them as one block together with the length of the prefix.
func readHeaderBlock(br *bufio.Reader) (block []byte, prefixLen int, err error) {
	prefix, err := br.Peek(len(MagicBytes) + 2)
	if err != nil {
		return nil, 0, truncated("magic", err)
	}
	if string(prefix[:len(MagicBytes)]) != MagicBytes {
		return nil, 0, fmt.Errorf("%w: expected %q, got %q", ErrInvalidMagic, MagicBytes, prefix[:len(MagicBytes)])
	}

	major, minor := prefix[len(MagicBytes)], prefix[len(MagicBytes)+1]
	if minor != 0 {
		return nil, 0, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, minor)
	}
	switch major {
	case 1:
		prefixLen = prefixSizeV1
	case 2:
		prefixLen = prefixSizeV2
	default:
		return nil, 0, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, minor)
	}

	prefix, err = br.Peek(prefixLen)
	if err != nil {
		return nil, 0, truncated("header length", err)
	}
	var headerLen int
	if major == 1 {
		headerLen = int(binary.LittleEndian.Uint16(prefix[len(MagicBytes)+2:]))
	} else {
		headerLen = int(binary.LittleEndian.Uint32(prefix[len(MagicBytes)+2:]))
	}
	if headerLen > MaxHeaderSize {
		return nil, 0, fmt.Errorf("%w: %d bytes (max %d)", ErrHeaderTooLarge, headerLen, MaxHeaderSize)
	}

	block = make([]byte, prefixLen+headerLen)
	if _, err := io.ReadFull(br, block); err != nil {
		return nil, 0, truncated("header", err)
	}
	return block, prefixLen, nil
}

// decode reads the array data into raw in place.
func decode(nr *npyio.Reader, raw *tensor.RawTensor) error {
	if raw.NumElements() == 0 {
		return nil
	}
	switch raw.DType() {
	case tensor.Bool:
		return readInto(nr, raw.AsBool())
	case tensor.Int8:
		return readInto(nr, tensor.Values[int8](raw))
	case tensor.Int16:
		return readInto(nr, tensor.Values[int16](raw))
	case tensor.Int32:
		return readInto(nr, tensor.Values[int32](raw))
	case tensor.Int64:
		return readInto(nr, tensor.Values[int64](raw))
	case tensor.Uint8:
		return readInto(nr, raw.AsUint8())
	case tensor.Uint16:
		return readInto(nr, tensor.Values[uint16](raw))
	case tensor.Uint32:
		return readInto(nr, tensor.Values[uint32](raw))
	case tensor.Uint64:
		return readInto(nr, tensor.Values[uint64](raw))
	case tensor.Float32:
		return readInto(nr, tensor.Values[float32](raw))
	case tensor.Float64:
		return readInto(nr, tensor.Values[float64](raw))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDType, raw.DType())
	}
}

// readInto fills dst, which must already have one slot per element.
func readInto[T tensor.DType](nr *npyio.Reader, dst []T) error {
	return nr.Read(&dst)
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
