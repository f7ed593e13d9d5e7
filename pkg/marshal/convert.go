package marshal

import (
	"context"
	"fmt"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
)

func span(buf []byte, offset, size int) ([]byte, error) {
	if offset < 0 || offset > len(buf) || len(buf)-offset < size {
		return nil, fmt.Errorf("%w: %d bytes at offset %d in buffer of %d", ErrSizeMismatch, size, offset, len(buf))
	}
	return buf[offset : offset+size], nil
}

// ToBytes encodes v into buf at offset.
func (s *Service) ToBytes(buf []byte, offset int, v interop.Record) error {
	ctx, cancel := s.background()
	defer cancel()
	return s.ToBytesContext(ctx, buf, offset, v)
}

// ToBytesContext encodes v into buf at offset. The context bounds only the
// wait for a pool block.
func (s *Service) ToBytesContext(ctx context.Context, buf []byte, offset int, v interop.Record) error {
	dst, err := span(buf, offset, v.Size())
	if err != nil {
		return err
	}
	return s.withBlock(ctx, v.Kind(), v.Size(), func(b []byte) error {
		if err := v.MarshalTo(b); err != nil {
			return err
		}
		copy(dst, b)
		return nil
	})
}

// FromBytesInto decodes the record at offset of buf into rec.
func (s *Service) FromBytesInto(buf []byte, offset int, rec interop.Record) error {
	ctx, cancel := s.background()
	defer cancel()
	return s.FromBytesContext(ctx, buf, offset, rec)
}

// FromBytesContext decodes the record at offset of buf into rec. The
// context bounds only the wait for a pool block.
func (s *Service) FromBytesContext(ctx context.Context, buf []byte, offset int, rec interop.Record) error {
	src, err := span(buf, offset, rec.Size())
	if err != nil {
		return err
	}
	return s.withBlock(ctx, rec.Kind(), rec.Size(), func(b []byte) error {
		copy(b, src)
		return rec.UnmarshalFrom(b)
	})
}

// FromBytesKind decodes a record of the given kind at offset of buf.
func (s *Service) FromBytesKind(buf []byte, offset int, kind interop.Kind) (interop.Record, error) {
	rec, err := interop.New(kind)
	if err != nil {
		return nil, err
	}
	if err := s.FromBytesInto(buf, offset, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// EncodeSpan encodes v into dst, which must be exactly v.Size() bytes long.
func (s *Service) EncodeSpan(dst []byte, v interop.Record) error {
	if len(dst) != v.Size() {
		return fmt.Errorf("%w: span of %d bytes for %s of %d", ErrSizeMismatch, len(dst), v.Kind(), v.Size())
	}
	return s.ToBytes(dst, 0, v)
}

// DecodeSpan decodes src into rec; src must be exactly rec.Size() bytes long.
func (s *Service) DecodeSpan(src []byte, rec interop.Record) error {
	if len(src) != rec.Size() {
		return fmt.Errorf("%w: span of %d bytes for %s of %d", ErrSizeMismatch, len(src), rec.Kind(), rec.Size())
	}
	return s.FromBytesInto(src, 0, rec)
}

// FromBytes decodes a record of type T at offset of buf.
func FromBytes[T any, P interface {
	*T
	interop.Record
}](s *Service, buf []byte, offset int) (T, error) {
	var v T
	if err := s.FromBytesInto(buf, offset, P(&v)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ToBytesMany encodes values back to back into buf starting at offset. One
// block is held for the whole run.
func ToBytesMany[T any, P interface {
	*T
	interop.Record
}](s *Service, buf []byte, offset int, values []T) error {
	if len(values) == 0 {
		return nil
	}
	size := P(&values[0]).Size()
	dst, err := span(buf, offset, size*len(values))
	if err != nil {
		return err
	}

	ctx, cancel := s.background()
	defer cancel()
	return s.withBlock(ctx, P(&values[0]).Kind(), size, func(b []byte) error {
		for i := range values {
			if err := P(&values[i]).MarshalTo(b); err != nil {
				return fmt.Errorf("value %d: %w", i, err)
			}
			copy(dst[i*size:], b)
		}
		return nil
	})
}

// FromBytesMany decodes count values of type T stored back to back in buf
// starting at offset.
func FromBytesMany[T any, P interface {
	*T
	interop.Record
}](s *Service, buf []byte, offset, count int) ([]T, error) {
	out := make([]T, count)
	if count == 0 {
		return out, nil
	}
	size := P(&out[0]).Size()
	src, err := span(buf, offset, size*count)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.background()
	defer cancel()
	err = s.withBlock(ctx, P(&out[0]).Kind(), size, func(b []byte) error {
		for i := range out {
			copy(b, src[i*size:(i+1)*size])
			if err := P(&out[i]).UnmarshalFrom(b); err != nil {
				return fmt.Errorf("value %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeArray returns the linearized blob of a.
func EncodeArray[T any, P interface {
	*T
	interop.Record
}](s *Service, a *interop.Array[T, P]) ([]byte, error) {
	blob := make([]byte, a.BlobSize())
	if err := a.PutHeader(blob); err != nil {
		return nil, err
	}
	if err := ToBytesMany[T, P](s, blob, a.HeaderSize(), a.Values); err != nil {
		return nil, err
	}
	return blob, nil
}

// DecodeArray parses a linearized blob.
func DecodeArray[T any, P interface {
	*T
	interop.Record
}](s *Service, blob []byte) (*interop.Array[T, P], error) {
	var zero T
	h, err := interop.ParseArrayHeader(blob, P(&zero).Size())
	if err != nil {
		return nil, err
	}
	values, err := FromBytesMany[T, P](s, blob, h.Size(), h.Length)
	if err != nil {
		return nil, err
	}
	return &interop.Array[T, P]{Skips: h.Skips, Values: values}, nil
}
