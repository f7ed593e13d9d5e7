package codes

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MaxLength is the maximum number of indices a code can hold.
	MaxLength = 8

	// MaxIndex is the largest index that fits into one code byte.
	MaxIndex = 255
)

// Encoding overflow errors.
var (
	ErrSequenceTooLong = errors.New("index sequence exceeds 8 entries")
	ErrIndexOutOfRange = errors.New("index outside byte range [0,255]")
)

// ByteCode64 is a packed sequence of up to eight byte-sized indices.
type ByteCode64 int64

// Int64 returns the code as a signed 64-bit integer, the form stored in records.
func (c ByteCode64) Int64() int64 {
	return int64(c)
}

// Bytes returns the eight code bytes, lowest index first.
func (c ByteCode64) Bytes() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(c))
	return b
}

// String returns the code in hexadecimal notation.
func (c ByteCode64) String() string {
	return fmt.Sprintf("0x%016x", uint64(c))
}

// FromBytes builds a code from its eight bytes.
func FromBytes(b [8]byte) ByteCode64 {
	return ByteCode64(binary.LittleEndian.Uint64(b[:]))
}

// Encoder packs index sequences using a reusable scratch buffer.
type Encoder struct {
	buf [MaxLength]byte
}

// NewEncoder creates an encoder with a zeroed scratch buffer.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Pack writes each index as one byte and reinterprets the buffer as a
// little-endian 64-bit code. The sequence is validated before anything is
// written, so a failed call leaves the buffer untouched.
func (e *Encoder) Pack(indices []int) (ByteCode64, error) {
	if len(indices) > MaxLength {
		return 0, fmt.Errorf("%w: length %d", ErrSequenceTooLong, len(indices))
	}
	for i, v := range indices {
		if v < 0 || v > MaxIndex {
			return 0, fmt.Errorf("%w: value %d at slot %d", ErrIndexOutOfRange, v, i)
		}
	}

	for i, v := range indices {
		e.buf[i] = byte(v)
	}
	code := ByteCode64(binary.LittleEndian.Uint64(e.buf[:]))

	// The buffer is shared between calls; stale bytes would leak into
	// the high bytes of the next shorter code.
	for i := range indices {
		e.buf[i] = 0
	}
	return code, nil
}

// Pack packs indices with a temporary encoder.
func Pack(indices []int) (ByteCode64, error) {
	var e Encoder
	return e.Pack(indices)
}
