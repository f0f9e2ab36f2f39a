// Package bufread provides bounds-checked fixed-width field extraction from a
// fully-loaded byte buffer.
//
// Every function is a pure function of (buffer, offset): it reads one field at
// the given byte offset and returns the value together with the offset
// advanced past it. A read whose span exceeds the buffer fails with
// errs.ErrTruncatedData carrying the offending offset and sizes.
package bufread

import (
	"fmt"
	"math"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/errs"
)

// check verifies that size bytes are available at offset.
func check(data []byte, offset, size int) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", errs.ErrTruncatedData, offset)
	}
	if offset+size > len(data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrTruncatedData, size, offset, len(data)-offset)
	}

	return nil
}

// Uint32 reads a 4-byte unsigned integer at offset.
func Uint32(data []byte, offset int, engine endian.EndianEngine) (uint32, int, error) {
	if err := check(data, offset, 4); err != nil {
		return 0, offset, err
	}

	return engine.Uint32(data[offset : offset+4]), offset + 4, nil
}

// Float32 reads a 4-byte IEEE 754 float at offset.
func Float32(data []byte, offset int, engine endian.EndianEngine) (float32, int, error) {
	if err := check(data, offset, 4); err != nil {
		return 0, offset, err
	}

	return math.Float32frombits(engine.Uint32(data[offset : offset+4])), offset + 4, nil
}

// Float64 reads an 8-byte IEEE 754 float at offset.
func Float64(data []byte, offset int, engine endian.EndianEngine) (float64, int, error) {
	if err := check(data, offset, 8); err != nil {
		return 0, offset, err
	}

	return math.Float64frombits(engine.Uint64(data[offset : offset+8])), offset + 8, nil
}

// Span verifies that the byte range [offset, offset+size) lies inside the
// buffer without reading it. Used to validate whole regions before decoding.
func Span(data []byte, offset, size int) error {
	return check(data, offset, size)
}
