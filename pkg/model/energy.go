package model

// GroupInteraction is a cluster of positions around a center position whose
// occupation contributes one energy value.
type GroupInteraction struct {
	Index          int
	CenterPosition UnitCellPosition
	// Geometry holds the absolute fractional vectors of the surrounding
	// positions; at most eight.
	Geometry []Vector3
}

// GroupEnergyEntry assigns an energy to one center particle and one
// surrounding occupation.
type GroupEnergyEntry struct {
	CenterParticle Particle
	Occupation     OccupationState
	Energy         float64
}

// Reordered returns the entry with its occupation reordered.
func (e GroupEnergyEntry) Reordered(order []int) (GroupEnergyEntry, bool) {
	occ, ok := e.Occupation.Reordered(order)
	if !ok {
		return GroupEnergyEntry{}, false
	}
	return GroupEnergyEntry{CenterParticle: e.CenterParticle, Occupation: occ, Energy: e.Energy}, true
}

// PositionGroupInfo carries the symmetry reduced energy description of a
// group interaction.
type PositionGroupInfo struct {
	GroupIndex    int
	EnergyEntries []GroupEnergyEntry
}

// PairInteraction is the interaction between two positions at a fixed
// relative geometry.
type PairInteraction struct {
	Index     int
	Position0 UnitCellPosition
	Position1 UnitCellPosition
	// Distance is the fractional vector from Position0 to Position1.
	Distance Vector3
	// Symmetric pairs have an energy independent of particle order.
	Symmetric     bool
	EnergyEntries []PairEnergyEntry
}

// PairEnergyEntry assigns an energy to an ordered particle pair.
type PairEnergyEntry struct {
	Particle0 Particle
	Particle1 Particle
	Energy    float64
}
