package interop

// Record sizes of the jump records.
const (
	JumpRuleSize   = 48
	MoveVectorSize = 32
)

// JumpRule is one kinetic or metropolis rule as seen by the engine.
type JumpRule struct {
	// StateCode0, StateCode1 and StateCode2 are the start, transition and
	// final state codes.
	StateCode0      int64
	StateCode1      int64
	StateCode2      int64
	FrequencyFactor float64
	FieldFactor     float64
	// TrackerOrder holds the final tracker order, one byte per position.
	TrackerOrder [8]byte
}

// Kind identifies the JumpRule record layout.
func (*JumpRule) Kind() Kind { return KindJumpRule }

// Size is the encoded length of a JumpRule in bytes.
func (*JumpRule) Size() int { return JumpRuleSize }

// MarshalTo writes the JumpRule into b in wire layout.
func (r *JumpRule) MarshalTo(b []byte) error {
	if err := checkSize(b, KindJumpRule, JumpRuleSize); err != nil {
		return err
	}
	putInt64(b, 0, r.StateCode0)
	putInt64(b, 8, r.StateCode1)
	putInt64(b, 16, r.StateCode2)
	putFloat64(b, 24, r.FrequencyFactor)
	putFloat64(b, 32, r.FieldFactor)
	copy(b[40:48], r.TrackerOrder[:])
	return nil
}

// UnmarshalFrom reads a JumpRule from b.
func (r *JumpRule) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindJumpRule, JumpRuleSize); err != nil {
		return err
	}
	r.StateCode0 = getInt64(b, 0)
	r.StateCode1 = getInt64(b, 8)
	r.StateCode2 = getInt64(b, 16)
	r.FrequencyFactor = getFloat64(b, 24)
	r.FieldFactor = getFloat64(b, 32)
	copy(r.TrackerOrder[:], b[40:48])
	return nil
}

// MoveVector is the displacement of one tracked particle.
type MoveVector struct {
	Vector    Vector3
	TrackerID int32
}

// Kind identifies the MoveVector record layout.
func (*MoveVector) Kind() Kind { return KindMoveVector }

// Size is the encoded length of a MoveVector in bytes.
func (*MoveVector) Size() int { return MoveVectorSize }

// MarshalTo writes the MoveVector into b in wire layout.
func (r *MoveVector) MarshalTo(b []byte) error {
	if err := checkSize(b, KindMoveVector, MoveVectorSize); err != nil {
		return err
	}
	if err := r.Vector.MarshalTo(b); err != nil {
		return err
	}
	putInt32(b, 24, r.TrackerID)
	clear(b[28:32])
	return nil
}

// UnmarshalFrom reads a MoveVector from b.
func (r *MoveVector) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindMoveVector, MoveVectorSize); err != nil {
		return err
	}
	if err := r.Vector.UnmarshalFrom(b); err != nil {
		return err
	}
	r.TrackerID = getInt32(b, 24)
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ Record = (*JobInfo)(nil)
	_ Record = (*KmcJobHeader)(nil)
	_ Record = (*MmcJobHeader)(nil)
	_ Record = (*Vector3)(nil)
	_ Record = (*Vector4I)(nil)
	_ Record = (*ByteBuffer64)(nil)
	_ Record = (*EnergyCode)(nil)
	_ Record = (*ClusterCode)(nil)
	_ Record = (*ClusterInteraction)(nil)
	_ Record = (*PairInteraction)(nil)
	_ Record = (*JumpRule)(nil)
	_ Record = (*MoveVector)(nil)
	_ Record = (*Double)(nil)
)
