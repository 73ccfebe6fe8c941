package serialization

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sbinet/npyio"

	"github.com/born-ml/numgo/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "\x93NUMPY"
	HeaderAlignment = 64 // Array data starts on a 64-byte boundary
	prefixSizeV1    = len(MagicBytes) + 2 + 2
	prefixSizeV2    = len(MagicBytes) + 2 + 4
)

// Header represents the dict literal stored in a .npy file.
type Header struct {
	Descr        string       // Array-protocol type string, e.g. "<i4"
	FortranOrder bool         // Column-major data
	Shape        tensor.Shape // Array dimensions
}

// descrs maps each supported dtype to the type string numpy writes for it.
var descrs = map[tensor.DataType]string{
	tensor.Bool:    "|b1",
	tensor.Int8:    "|i1",
	tensor.Int16:   "<i2",
	tensor.Int32:   "<i4",
	tensor.Int64:   "<i8",
	tensor.Uint8:   "|u1",
	tensor.Uint16:  "<u2",
	tensor.Uint32:  "<u4",
	tensor.Uint64:  "<u8",
	tensor.Float32: "<f4",
	tensor.Float64: "<f8",
}

// DescrOf returns the .npy type string for dt.
func DescrOf(dt tensor.DataType) (string, error) {
	descr, ok := descrs[dt]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
	return descr, nil
}

// ParseDescr converts a .npy type string into a DataType.
// Little-endian ('<') strings are accepted for every type and
// byte-order-free ('|') strings for one-byte types.
func ParseDescr(descr string) (tensor.DataType, error) {
	if len(descr) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}
	dt, err := tensor.ParseDataType(descr[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	switch {
	case descr[0] == '<':
		return dt, nil
	case descr[0] == '|' && dt.Size() == 1:
		return dt, nil
	default:
		return 0, fmt.Errorf("%w: byte order of %q", ErrUnsupportedDType, descr)
	}
}

// String formats the header the way numpy does, without padding.
func (h Header) String() string {
	order := "False"
	if h.FortranOrder {
		order = "True"
	}
	return fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", h.Descr, order, h.Shape)
}

// encodeHeader returns the padded header text and the format major version
// needed to store its length.
func encodeHeader(h Header) (text string, major byte) {
	raw := h.String()

	major = 1
	prefix := prefixSizeV1
	// +1 for the terminating newline.
	if prefix+len(raw)+1 > 0xFFFF {
		major = 2
		prefix = prefixSizeV2
	}

	total := prefix + len(raw) + 1
	padding := (HeaderAlignment - total%HeaderAlignment) % HeaderAlignment
	return raw + strings.Repeat(" ", padding) + "\n", major
}

// layoutKeys are the header keys in the order numpy writes them.
var layoutKeys = []struct{ field, prefix string }{
	{"descr", "'descr': '"},
	{"fortran_order", "'fortran_order': "},
	{"shape", "'shape': ("},
}

// checkLayout verifies that text is the dict numpy writes: the three keys in
// order, a "), }" terminator and a trailing newline. The dict decoder relies
// on that layout.
func checkLayout(text string) error {
	if !strings.HasSuffix(text, "\n") {
		return &HeaderError{Details: "missing terminating newline"}
	}
	if !strings.HasPrefix(text, "{") {
		return &HeaderError{Details: "not a dict"}
	}
	if strings.HasPrefix(text, "{'descr': [") {
		return fmt.Errorf("%w: structured dtypes", ErrUnsupportedDType)
	}

	pos := 0
	for _, key := range layoutKeys {
		i := strings.Index(text[pos:], key.prefix)
		if i < 0 {
			return &HeaderError{Field: key.field, Details: "missing or out of order"}
		}
		pos += i + len(key.prefix)
	}
	if !strings.HasSuffix(strings.TrimRight(text, " \n"), "), }") {
		return &HeaderError{Details: `dict must end with "), }"`}
	}
	return nil
}

// parseHeader decodes the header of a complete prefix+header block. text is
// the dict part of block.
func parseHeader(block []byte, text string) (Header, error) {
	if err := checkLayout(text); err != nil {
		return Header{}, err
	}

	nh, err := decodeHeader(block)
	if err != nil {
		return Header{}, &HeaderError{Details: err.Error()}
	}

	shape := tensor.Shape{}
	if nh.Descr.Shape != nil {
		shape = tensor.Shape(nh.Descr.Shape)
	}
	return Header{
		Descr:        nh.Descr.Type,
		FortranOrder: nh.Descr.Fortran,
		Shape:        shape,
	}, nil
}

func decodeHeader(block []byte) (h npyio.Header, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed dict: %v", r)
		}
	}()

	nr, err := npyio.NewReader(bytes.NewReader(block))
	if err != nil {
		return npyio.Header{}, err
	}
	return nr.Header, nil
}
