package interop

// Record sizes of the energy records.
const (
	EnergyCodeSize         = 16
	ClusterCodeSize        = 8
	ClusterInteractionSize = 24
	PairInteractionSize    = 24
)

// EnergyCode assigns an energy to an occupation code.
type EnergyCode struct {
	Code   int64
	Energy float64
}

// Kind identifies the EnergyCode record layout.
func (*EnergyCode) Kind() Kind { return KindEnergyCode }

// Size is the encoded length of a EnergyCode in bytes.
func (*EnergyCode) Size() int { return EnergyCodeSize }

// MarshalTo writes the EnergyCode into b in wire layout.
func (r *EnergyCode) MarshalTo(b []byte) error {
	if err := checkSize(b, KindEnergyCode, EnergyCodeSize); err != nil {
		return err
	}
	putInt64(b, 0, r.Code)
	putFloat64(b, 8, r.Energy)
	return nil
}

// UnmarshalFrom reads a EnergyCode from b.
func (r *EnergyCode) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindEnergyCode, EnergyCodeSize); err != nil {
		return err
	}
	r.Code = getInt64(b, 0)
	r.Energy = getFloat64(b, 8)
	return nil
}

// ClusterCode is the occupation code of up to eight cluster positions.
type ClusterCode struct {
	Code int64
}

// Kind identifies the ClusterCode record layout.
func (*ClusterCode) Kind() Kind { return KindClusterCode }

// Size is the encoded length of a ClusterCode in bytes.
func (*ClusterCode) Size() int { return ClusterCodeSize }

// MarshalTo writes the ClusterCode into b in wire layout.
func (r *ClusterCode) MarshalTo(b []byte) error {
	if err := checkSize(b, KindClusterCode, ClusterCodeSize); err != nil {
		return err
	}
	putInt64(b, 0, r.Code)
	return nil
}

// UnmarshalFrom reads a ClusterCode from b.
func (r *ClusterCode) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindClusterCode, ClusterCodeSize); err != nil {
		return err
	}
	r.Code = getInt64(b, 0)
	return nil
}

// ClusterInteraction links up to eight environment positions to a group
// energy table. Unused position slots hold -1.
type ClusterInteraction struct {
	// PositionIDs are stored as two blocks of four int16 values.
	PositionIDs [8]int16
	TableID     int32
}

// Kind identifies the ClusterInteraction record layout.
func (*ClusterInteraction) Kind() Kind { return KindClusterInteraction }

// Size is the encoded length of a ClusterInteraction in bytes.
func (*ClusterInteraction) Size() int { return ClusterInteractionSize }

// MarshalTo writes the ClusterInteraction into b in wire layout.
func (r *ClusterInteraction) MarshalTo(b []byte) error {
	if err := checkSize(b, KindClusterInteraction, ClusterInteractionSize); err != nil {
		return err
	}
	for i, id := range r.PositionIDs {
		putInt16(b, 2*i, id)
	}
	putInt32(b, 16, r.TableID)
	clear(b[20:24])
	return nil
}

// UnmarshalFrom reads a ClusterInteraction from b.
func (r *ClusterInteraction) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindClusterInteraction, ClusterInteractionSize); err != nil {
		return err
	}
	for i := range r.PositionIDs {
		r.PositionIDs[i] = getInt16(b, 2*i)
	}
	r.TableID = getInt32(b, 16)
	return nil
}

// PairInteraction links a relative position to a pair energy table.
type PairInteraction struct {
	RelativeVector Vector4I
	TableID        int32
}

// Kind identifies the PairInteraction record layout.
func (*PairInteraction) Kind() Kind { return KindPairInteraction }

// Size is the encoded length of a PairInteraction in bytes.
func (*PairInteraction) Size() int { return PairInteractionSize }

// MarshalTo writes the PairInteraction into b in wire layout.
func (r *PairInteraction) MarshalTo(b []byte) error {
	if err := checkSize(b, KindPairInteraction, PairInteractionSize); err != nil {
		return err
	}
	r.RelativeVector.put(b, 0)
	putInt32(b, 16, r.TableID)
	clear(b[20:24])
	return nil
}

// UnmarshalFrom reads a PairInteraction from b.
func (r *PairInteraction) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindPairInteraction, PairInteractionSize); err != nil {
		return err
	}
	r.RelativeVector.get(b, 0)
	r.TableID = getInt32(b, 16)
	return nil
}
