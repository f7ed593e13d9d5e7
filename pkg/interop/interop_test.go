package interop

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padding lists the byte ranges that are written as zero.
var padding = map[Kind][][2]int{
	KindJobInfo:            {{84, 88}},
	KindKmcJobHeader:       {{36, 40}},
	KindMmcJobHeader:       {{28, 32}},
	KindClusterInteraction: {{20, 24}},
	KindMoveVector:         {{28, 32}},
	KindPairInteraction:    {{20, 24}},
}

func expectedRoundTrip(kind Kind, fill byte, size int) []byte {
	want := bytes.Repeat([]byte{fill}, size)
	for _, r := range padding[kind] {
		clear(want[r[0]:r[1]])
	}
	return want
}

func TestRecordRoundTripBoundaries(t *testing.T) {
	for _, kind := range Kinds() {
		for _, fill := range []byte{0x00, 0xFF} {
			t.Run(kind.String(), func(t *testing.T) {
				size, err := SizeOf(kind)
				require.NoError(t, err)

				rec, err := New(kind)
				require.NoError(t, err)
				require.Equal(t, size, rec.Size())
				require.Equal(t, kind, rec.Kind())

				require.NoError(t, rec.UnmarshalFrom(bytes.Repeat([]byte{fill}, size)))

				// Garbage in the destination must not survive in padding.
				out := bytes.Repeat([]byte{0xAB}, size)
				require.NoError(t, rec.MarshalTo(out))
				assert.Equal(t, expectedRoundTrip(kind, fill, size), out)

				again, _ := New(kind)
				require.NoError(t, again.UnmarshalFrom(out))
				out2 := make([]byte, size)
				require.NoError(t, again.MarshalTo(out2))
				assert.Equal(t, out, out2)
			})
		}
	}
}

func TestRecordSizes(t *testing.T) {
	want := map[Kind]int{
		KindJobInfo:            88,
		KindKmcJobHeader:       40,
		KindMmcJobHeader:       32,
		KindVector3:            24,
		KindVector4I:           16,
		KindByteBuffer64:       64,
		KindEnergyCode:         16,
		KindClusterCode:        8,
		KindClusterInteraction: 24,
		KindJumpRule:           48,
		KindMoveVector:         32,
		KindPairInteraction:    24,
		KindDouble:             8,
	}
	require.Len(t, Kinds(), len(want))
	for kind, size := range want {
		got, err := SizeOf(kind)
		require.NoError(t, err)
		assert.Equal(t, size, got, kind.String())
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := New(Kind(200))
	require.ErrorIs(t, err, ErrUnknownKind)
	_, err = SizeOf(0)
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "Kind(200)", Kind(200).String())
	assert.Equal(t, "JumpRule", KindJumpRule.String())
}

func TestShortBuffer(t *testing.T) {
	for _, kind := range Kinds() {
		rec, _ := New(kind)
		short := make([]byte, rec.Size()-1)
		assert.ErrorIs(t, rec.MarshalTo(short), ErrShortBuffer, kind.String())
		assert.ErrorIs(t, rec.UnmarshalFrom(short), ErrShortBuffer, kind.String())
	}
}

func TestJumpRuleLayout(t *testing.T) {
	rule := JumpRule{
		StateCode0:      0x020001,
		StateCode1:      0x0100,
		StateCode2:      0x010002,
		FrequencyFactor: 1,
		FieldFactor:     -2,
		TrackerOrder:    [8]byte{2, 1, 0},
	}
	b := make([]byte, JumpRuleSize)
	require.NoError(t, rule.MarshalTo(b))

	le := binary.LittleEndian
	assert.Equal(t, uint64(0x020001), le.Uint64(b[0:]))
	assert.Equal(t, uint64(0x0100), le.Uint64(b[8:]))
	assert.Equal(t, uint64(0x010002), le.Uint64(b[16:]))
	assert.Equal(t, 1.0, math.Float64frombits(le.Uint64(b[24:])))
	assert.Equal(t, -2.0, math.Float64frombits(le.Uint64(b[32:])))
	assert.Equal(t, []byte{2, 1, 0, 0, 0, 0, 0, 0}, b[40:48])

	var got JumpRule
	require.NoError(t, got.UnmarshalFrom(b))
	assert.Equal(t, rule, got)
}

func TestClusterInteractionLayout(t *testing.T) {
	rec := ClusterInteraction{PositionIDs: [8]int16{0, 1, 2, 3, 4, -1, -1, -1}, TableID: 7}
	b := make([]byte, ClusterInteractionSize)
	require.NoError(t, rec.MarshalTo(b))

	le := binary.LittleEndian
	assert.Equal(t, uint16(3), le.Uint16(b[6:]), "last slot of the first block")
	assert.Equal(t, uint16(4), le.Uint16(b[8:]), "first slot of the second block")
	assert.Equal(t, uint16(0xFFFF), le.Uint16(b[14:]))
	assert.Equal(t, uint32(7), le.Uint32(b[16:]))

	var got ClusterInteraction
	require.NoError(t, got.UnmarshalFrom(b))
	assert.Equal(t, rec, got)
}

func TestJobInfoRoundTrip(t *testing.T) {
	info := JobInfo{
		JobFlags:           1,
		StatusFlags:        2,
		StateSize:          4096,
		TargetMcsp:         math.MaxInt64,
		TimeLimit:          3600,
		RngStateSeed:       math.MinInt64,
		RngIncreaseSeed:    -1,
		Temperature:        1273.15,
		MinimalSuccessRate: 0.5,
		HeaderPtr:          0,
		ObjectID:           math.MaxInt32,
	}
	b := make([]byte, JobInfoSize)
	require.NoError(t, info.MarshalTo(b))

	var got JobInfo
	require.NoError(t, got.UnmarshalFrom(b))
	assert.Equal(t, info, got)
}

func TestArray(t *testing.T) {
	arr, err := NewArray[Double](2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, arr.Rank())
	assert.Equal(t, 6, arr.Len())
	assert.Equal(t, []int{3}, arr.Skips)
	assert.Equal(t, 8, arr.ElementSize())
	assert.Equal(t, 12, arr.HeaderSize())
	assert.Equal(t, 12+48, arr.BlobSize())

	require.NoError(t, arr.Set(4.5, 1, 2))
	idx, err := arr.IndexOf(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
	v, err := arr.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Double(4.5), v)

	_, err = arr.IndexOf(1)
	assert.ErrorIs(t, err, ErrArrayLayout)
	_, err = arr.At(2, 0)
	assert.ErrorIs(t, err, ErrArrayLayout)

	blob := make([]byte, arr.BlobSize())
	require.NoError(t, arr.PutHeader(blob))
	h, err := ParseArrayHeader(blob, arr.ElementSize())
	require.NoError(t, err)
	assert.Equal(t, ArrayHeader{Rank: 2, Length: 6, Skips: []int{3}}, h)
}

func TestArrayRank3Skips(t *testing.T) {
	arr, err := NewArray[EnergyCode](2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 4}, arr.Skips)
	idx, err := arr.IndexOf(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, idx)
}

func TestParseArrayHeaderErrors(t *testing.T) {
	arr, _ := NewArray[Double](4)
	blob := make([]byte, arr.BlobSize())
	require.NoError(t, arr.PutHeader(blob))

	_, err := ParseArrayHeader(blob[:6], 8)
	assert.ErrorIs(t, err, ErrArrayLayout)
	_, err = ParseArrayHeader(blob[:len(blob)-1], 8)
	assert.ErrorIs(t, err, ErrArrayLayout)
	_, err = ParseArrayHeader(append(blob, 0), 8)
	assert.ErrorIs(t, err, ErrArrayLayout)

	bad := append([]byte(nil), blob...)
	binary.LittleEndian.PutUint32(bad, 0)
	_, err = ParseArrayHeader(bad, 8)
	assert.ErrorIs(t, err, ErrArrayLayout)

	_, err = NewArray[Double]()
	assert.ErrorIs(t, err, ErrArrayLayout)
	_, err = NewArray[Double](-1)
	assert.ErrorIs(t, err, ErrArrayLayout)
}
