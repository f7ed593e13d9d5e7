package interop

import (
	"errors"
	"fmt"
)

// ErrArrayLayout is returned for malformed array dimensions or blob headers.
var ErrArrayLayout = errors.New("invalid array layout")

// Array is a multi-dimensional table of records stored row-major.
type Array[T any, P interface {
	*T
	Record
}] struct {
	// Skips holds the number of values between consecutive indices of
	// every dimension but the last.
	Skips  []int
	Values []T
}

// NewArray creates a zero filled array with the given dimensions.
func NewArray[T any, P interface {
	*T
	Record
}](dims ...int) (*Array[T, P], error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: rank 0", ErrArrayLayout)
	}
	length := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrArrayLayout, d)
		}
		length *= d
	}
	skips := make([]int, len(dims)-1)
	step := 1
	for k := len(dims) - 1; k > 0; k-- {
		step *= dims[k]
		skips[k-1] = step
	}
	return &Array[T, P]{Skips: skips, Values: make([]T, length)}, nil
}

// Rank returns the number of dimensions.
func (a *Array[T, P]) Rank() int { return len(a.Skips) + 1 }

// Len returns the total number of values.
func (a *Array[T, P]) Len() int { return len(a.Values) }

// ElementSize returns the encoded size of one value.
func (a *Array[T, P]) ElementSize() int {
	var zero T
	return P(&zero).Size()
}

// HeaderSize returns the size of the blob header.
func (a *Array[T, P]) HeaderSize() int { return 4 * (2 + len(a.Skips)) }

// BlobSize returns the size of the full blob.
func (a *Array[T, P]) BlobSize() int { return a.HeaderSize() + a.Len()*a.ElementSize() }

// IndexOf returns the linear position of the given indices.
func (a *Array[T, P]) IndexOf(indices ...int) (int, error) {
	if len(indices) != a.Rank() {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrArrayLayout, len(indices), a.Rank())
	}
	index := indices[len(indices)-1]
	for i, skip := range a.Skips {
		index += indices[i] * skip
	}
	if index < 0 || index >= len(a.Values) {
		return 0, fmt.Errorf("%w: indices %v outside %d values", ErrArrayLayout, indices, len(a.Values))
	}
	return index, nil
}

// At returns the value at the given indices.
func (a *Array[T, P]) At(indices ...int) (T, error) {
	i, err := a.IndexOf(indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.Values[i], nil
}

// Set stores v at the given indices.
func (a *Array[T, P]) Set(v T, indices ...int) error {
	i, err := a.IndexOf(indices...)
	if err != nil {
		return err
	}
	a.Values[i] = v
	return nil
}

// PutHeader writes rank, length and skips to the start of b.
func (a *Array[T, P]) PutHeader(b []byte) error {
	if len(b) < a.HeaderSize() {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrShortBuffer, a.HeaderSize(), len(b))
	}
	putInt32(b, 0, int32(a.Rank()))
	putInt32(b, 4, int32(a.Len()))
	for i, skip := range a.Skips {
		putInt32(b, 8+4*i, int32(skip))
	}
	return nil
}

// ArrayHeader is the decoded header of an array blob.
type ArrayHeader struct {
	Rank   int
	Length int
	Skips  []int
}

// Size returns the encoded header size.
func (h ArrayHeader) Size() int { return 4 * (2 + len(h.Skips)) }

// ParseArrayHeader reads the header of blob and checks that the remaining
// bytes hold exactly Length values of elemSize bytes.
func ParseArrayHeader(blob []byte, elemSize int) (ArrayHeader, error) {
	if len(blob) < 8 {
		return ArrayHeader{}, fmt.Errorf("%w: blob of %d bytes", ErrArrayLayout, len(blob))
	}
	h := ArrayHeader{Rank: int(getInt32(blob, 0)), Length: int(getInt32(blob, 4))}
	if h.Rank < 1 || h.Length < 0 {
		return ArrayHeader{}, fmt.Errorf("%w: rank %d length %d", ErrArrayLayout, h.Rank, h.Length)
	}
	if len(blob) < 4*(1+h.Rank) {
		return ArrayHeader{}, fmt.Errorf("%w: header of rank %d truncated", ErrArrayLayout, h.Rank)
	}
	h.Skips = make([]int, h.Rank-1)
	for i := range h.Skips {
		h.Skips[i] = int(getInt32(blob, 8+4*i))
	}
	if want := h.Size() + h.Length*elemSize; len(blob) != want {
		return ArrayHeader{}, fmt.Errorf("%w: blob of %d bytes, header announces %d", ErrArrayLayout, len(blob), want)
	}
	return h, nil
}
