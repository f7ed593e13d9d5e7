package model

// Snapshot is the immutable reference data of one build pass.
type Snapshot struct {
	Name                  string
	Particles             []Particle
	Positions             []UnitCellPosition
	GroupInteractions     []GroupInteraction
	PositionGroupInfos    []PositionGroupInfo
	PairInteractions      []PairInteraction
	KineticTransitions    []KineticTransition
	MetropolisTransitions []MetropolisTransition
}

// Particle returns the particle with the given index.
func (s *Snapshot) Particle(index int) (Particle, bool) {
	for _, p := range s.Particles {
		if p.Index == index {
			return p, true
		}
	}
	return Particle{}, false
}

// PositionGroupInfo returns the group info of the group interaction with
// the given index.
func (s *Snapshot) PositionGroupInfo(groupIndex int) (PositionGroupInfo, bool) {
	for _, info := range s.PositionGroupInfos {
		if info.GroupIndex == groupIndex {
			return info, true
		}
	}
	return PositionGroupInfo{}, false
}

// Position returns the unit cell position with the given index.
func (s *Snapshot) Position(index int) (UnitCellPosition, bool) {
	for _, p := range s.Positions {
		if p.Index == index {
			return p, true
		}
	}
	return UnitCellPosition{}, false
}
