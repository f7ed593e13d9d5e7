package interop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

// Errors returned by the record layer.
var (
	ErrUnknownKind = errors.New("unknown record kind")
	ErrShortBuffer = errors.New("buffer shorter than record size")
)

// Kind identifies a record layout.
type Kind uint8

// Record kinds.
const (
	KindJobInfo Kind = iota + 1
	KindKmcJobHeader
	KindMmcJobHeader
	KindVector3
	KindVector4I
	KindByteBuffer64
	KindEnergyCode
	KindClusterCode
	KindClusterInteraction
	KindJumpRule
	KindMoveVector
	KindPairInteraction
	KindDouble
)

// Record is a value with a fixed binary layout.
type Record interface {
	// Kind returns the layout identifier.
	Kind() Kind

	// Size returns the exact encoded size in bytes.
	Size() int

	// MarshalTo writes the record into the first Size() bytes of b.
	MarshalTo(b []byte) error

	// UnmarshalFrom reads the record from the first Size() bytes of b.
	UnmarshalFrom(b []byte) error
}

type registration struct {
	name string
	size int
	new  func() Record
}

var registry = map[Kind]registration{}

func register(kind Kind, name string, size int, newFn func() Record) {
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("interop: kind %d registered twice", kind))
	}
	registry[kind] = registration{name: name, size: size, new: newFn}
}

func init() {
	register(KindJobInfo, "JobInfo", JobInfoSize, func() Record { return new(JobInfo) })
	register(KindKmcJobHeader, "KmcJobHeader", KmcJobHeaderSize, func() Record { return new(KmcJobHeader) })
	register(KindMmcJobHeader, "MmcJobHeader", MmcJobHeaderSize, func() Record { return new(MmcJobHeader) })
	register(KindVector3, "Vector3", Vector3Size, func() Record { return new(Vector3) })
	register(KindVector4I, "Vector4I", Vector4ISize, func() Record { return new(Vector4I) })
	register(KindByteBuffer64, "ByteBuffer64", ByteBuffer64Size, func() Record { return new(ByteBuffer64) })
	register(KindEnergyCode, "EnergyCode", EnergyCodeSize, func() Record { return new(EnergyCode) })
	register(KindClusterCode, "ClusterCode", ClusterCodeSize, func() Record { return new(ClusterCode) })
	register(KindClusterInteraction, "ClusterInteraction", ClusterInteractionSize, func() Record { return new(ClusterInteraction) })
	register(KindJumpRule, "JumpRule", JumpRuleSize, func() Record { return new(JumpRule) })
	register(KindMoveVector, "MoveVector", MoveVectorSize, func() Record { return new(MoveVector) })
	register(KindPairInteraction, "PairInteraction", PairInteractionSize, func() Record { return new(PairInteraction) })
	register(KindDouble, "Double", DoubleSize, func() Record { return new(Double) })
}

// String returns the record name of the kind.
func (k Kind) String() string {
	if r, ok := registry[k]; ok {
		return r.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// New returns a zero record of the given kind.
func New(kind Kind) (Record, error) {
	r, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	return r.new(), nil
}

// SizeOf returns the encoded size of the given kind.
func SizeOf(kind Kind) (int, error) {
	r, ok := registry[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	return r.size, nil
}

// Kinds returns all registered kinds in ascending order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func checkSize(b []byte, kind Kind, size int) error {
	if len(b) < size {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrShortBuffer, kind, size, len(b))
	}
	return nil
}

// Little-endian field access at explicit offsets.

func putInt64(b []byte, off int, v int64) { binary.LittleEndian.PutUint64(b[off:], uint64(v)) }
func putInt32(b []byte, off int, v int32) { binary.LittleEndian.PutUint32(b[off:], uint32(v)) }
func putInt16(b []byte, off int, v int16) { binary.LittleEndian.PutUint16(b[off:], uint16(v)) }
func putFloat64(b []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(b[off:], math.Float64bits(v))
}

func getInt64(b []byte, off int) int64 { return int64(binary.LittleEndian.Uint64(b[off:])) }
func getInt32(b []byte, off int) int32 { return int32(binary.LittleEndian.Uint32(b[off:])) }
func getInt16(b []byte, off int) int16 { return int16(binary.LittleEndian.Uint16(b[off:])) }
func getFloat64(b []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
}
