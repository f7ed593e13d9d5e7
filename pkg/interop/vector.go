package interop

// Record sizes of the basic value records.
const (
	Vector3Size      = 24
	Vector4ISize     = 16
	ByteBuffer64Size = 64
	DoubleSize       = 8
)

// Vector3 is a fractional or cartesian vector.
type Vector3 struct {
	A, B, C float64
}

// Kind identifies the Vector3 record layout.
func (*Vector3) Kind() Kind { return KindVector3 }

// Size is the encoded length of a Vector3 in bytes.
func (*Vector3) Size() int { return Vector3Size }

// MarshalTo writes the Vector3 into b in wire layout.
func (r *Vector3) MarshalTo(b []byte) error {
	if err := checkSize(b, KindVector3, Vector3Size); err != nil {
		return err
	}
	putFloat64(b, 0, r.A)
	putFloat64(b, 8, r.B)
	putFloat64(b, 16, r.C)
	return nil
}

// UnmarshalFrom reads a Vector3 from b.
func (r *Vector3) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindVector3, Vector3Size); err != nil {
		return err
	}
	r.A = getFloat64(b, 0)
	r.B = getFloat64(b, 8)
	r.C = getFloat64(b, 16)
	return nil
}

// Vector4I is a crystal vector: cell offset A, B, C and position index D.
type Vector4I struct {
	A, B, C, D int32
}

// Kind identifies the Vector4I record layout.
func (*Vector4I) Kind() Kind { return KindVector4I }

// Size is the encoded length of a Vector4I in bytes.
func (*Vector4I) Size() int { return Vector4ISize }

// MarshalTo writes the Vector4I into b in wire layout.
func (r *Vector4I) MarshalTo(b []byte) error {
	if err := checkSize(b, KindVector4I, Vector4ISize); err != nil {
		return err
	}
	r.put(b, 0)
	return nil
}

// UnmarshalFrom reads a Vector4I from b.
func (r *Vector4I) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindVector4I, Vector4ISize); err != nil {
		return err
	}
	r.get(b, 0)
	return nil
}

func (r *Vector4I) put(b []byte, off int) {
	putInt32(b, off, r.A)
	putInt32(b, off+4, r.B)
	putInt32(b, off+8, r.C)
	putInt32(b, off+12, r.D)
}

func (r *Vector4I) get(b []byte, off int) {
	r.A = getInt32(b, off)
	r.B = getInt32(b, off+4)
	r.C = getInt32(b, off+8)
	r.D = getInt32(b, off+12)
}

// ByteBuffer64 is an opaque 64 byte block, e.g. a particle mask.
type ByteBuffer64 [64]byte

// Kind identifies the ByteBuffer64 record layout.
func (*ByteBuffer64) Kind() Kind { return KindByteBuffer64 }

// Size is the encoded length of a ByteBuffer64 in bytes.
func (*ByteBuffer64) Size() int { return ByteBuffer64Size }

// MarshalTo writes the ByteBuffer64 into b in wire layout.
func (r *ByteBuffer64) MarshalTo(b []byte) error {
	if err := checkSize(b, KindByteBuffer64, ByteBuffer64Size); err != nil {
		return err
	}
	copy(b, r[:])
	return nil
}

// UnmarshalFrom reads a ByteBuffer64 from b.
func (r *ByteBuffer64) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindByteBuffer64, ByteBuffer64Size); err != nil {
		return err
	}
	copy(r[:], b)
	return nil
}

// Double is a single table cell.
type Double float64

// Kind identifies the Double record layout.
func (*Double) Kind() Kind { return KindDouble }

// Size is the encoded length of a Double in bytes.
func (*Double) Size() int { return DoubleSize }

// MarshalTo writes the Double into b in wire layout.
func (r *Double) MarshalTo(b []byte) error {
	if err := checkSize(b, KindDouble, DoubleSize); err != nil {
		return err
	}
	putFloat64(b, 0, float64(*r))
	return nil
}

// UnmarshalFrom reads a Double from b.
func (r *Double) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindDouble, DoubleSize); err != nil {
		return err
	}
	*r = Double(getFloat64(b, 0))
	return nil
}
