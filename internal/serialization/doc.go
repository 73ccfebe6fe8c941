// Package serialization reads and writes arrays in NumPy's .npy format.
//
//	Format Structure:
//	  [6 bytes: Magic "\x93NUMPY"]
//	  [2 bytes: Version major, minor]
//	  [2 or 4 bytes: Header length (uint16 LE for v1.0, uint32 LE for v2.0)]
//	  [Header: Python dict literal, space padded, ending in '\n']
//	  [Array data: raw little-endian bytes in C order]
//
// The header is padded so that the array data starts on a 64-byte boundary.
// It describes the dtype, the memory order and the shape:
//
//	{'descr': '<i4', 'fortran_order': False, 'shape': (2, 3), }
//
// Headers and array data are decoded with github.com/sbinet/npyio, which
// expects the dict in the layout above: keys in that order, a trailing
// ", }" and a terminating newline. Headers in any other layout are rejected
// as invalid, and so are big-endian dtypes and Fortran-ordered arrays with
// more than one dimension.
//
// Version 1.0 and 2.0 files are read. Scalars and 1-D arrays are written by
// npyio as version 2.0. Higher ranks are written as version 1.0, or 2.0 when
// the header does not fit a uint16 length.
//
// Example usage:
//
//	a, err := serialization.ReadFile("mask.npy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	packed, _ := tensor.PackBits(backend, a, tensor.NoAxis, tensor.BigEndian)
//	if err := serialization.WriteFile("mask_packed.npy", packed); err != nil {
//	    log.Fatal(err)
//	}
package serialization
