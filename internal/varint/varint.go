// Package varint reads and writes unsigned LEB128 integers: seven data bits
// per byte, least significant group first, high bit set on every byte but
// the last.
package varint

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned when the input ends before a terminating byte.
	ErrTruncated = errors.New("truncated varint")
	// ErrOverflow is returned when a varint does not fit in 64 bits.
	ErrOverflow = errors.New("varint overflows uint64")
)

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// Len returns the number of bytes Append writes for v.
func Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Read decodes the varint starting at buf[pos] and returns its value and the
// position just past it. On error the returned position is pos.
func Read(buf []byte, pos int) (uint64, int, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, pos, errors.Wrapf(ErrTruncated, "at offset %d", pos)
	}
	v, n := binary.Uvarint(buf[pos:])
	switch {
	case n == 0:
		return 0, pos, errors.Wrapf(ErrTruncated, "at offset %d", pos)
	case n < 0:
		return 0, pos, errors.Wrapf(ErrOverflow, "at offset %d", pos)
	}
	return v, pos + n, nil
}
