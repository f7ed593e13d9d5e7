package model

// ConnectorType describes how two consecutive path positions are linked.
type ConnectorType uint8

const (
	// ConnectorStatic links positions that exchange state without movement.
	ConnectorStatic ConnectorType = iota
	// ConnectorDynamic links positions a particle moves between.
	ConnectorDynamic
)

// String returns the connector name.
func (c ConnectorType) String() string {
	switch c {
	case ConnectorStatic:
		return "STATIC"
	case ConnectorDynamic:
		return "DYNAMIC"
	default:
		return "UNKNOWN"
	}
}

// StateExchangePair is a donor particle that turns into the acceptor.
type StateExchangePair struct {
	Donor    Particle
	Acceptor Particle
}

// StateExchangeGroup lists the state exchanges allowed at one path position.
type StateExchangeGroup struct {
	// Unstable positions are transition sites that are void in stable states.
	Unstable bool
	Pairs    []StateExchangePair
}

// Swap exchanges the contents of two path positions.
type Swap struct {
	From int
	To   int
}

// AbstractTransition is the symmetry level template of a transition.
type AbstractTransition struct {
	Index          int
	Name           string
	Connectors     []ConnectorType
	ExchangeGroups []StateExchangeGroup
	// Movement is the ordered list of position swaps. Empty means the
	// movement is derived from the connector sequence.
	Movement   []Swap
	Metropolis bool
}

// PathLength returns the number of positions on the transition path.
func (t *AbstractTransition) PathLength() int {
	return len(t.ExchangeGroups)
}

// KineticMapping is one concrete geometric realization of a kinetic transition.
type KineticMapping struct {
	// PositionSequence holds the crystal vectors of the path, start first.
	PositionSequence []Vector4
	// FractionalSequence holds the fractional vectors of the path.
	FractionalSequence []Vector3
}

// KineticTransition is a migration transition on a geometric path.
type KineticTransition struct {
	Index            int
	Name             string
	Abstract         *AbstractTransition
	AttemptFrequency float64
	Mappings         []KineticMapping
	// MappingsContainInversion is set when every mapping's reverse path is
	// itself one of the mappings, so no inverse model is required.
	MappingsContainInversion bool
}

// MetropolisTransition is a site exchange between two sublattices.
type MetropolisTransition struct {
	Index     int
	Name      string
	Abstract  *AbstractTransition
	Position0 int
	Position1 int
}

// MetropolisMapping is one pair of unit cell positions exchanged by a
// metropolis transition.
type MetropolisMapping struct {
	Position0 int
	Position1 int
}

// Mappings returns the position pairs of the transition.
func (t *MetropolisTransition) Mappings() []MetropolisMapping {
	return []MetropolisMapping{{Position0: t.Position0, Position1: t.Position1}}
}

// MappingsContainInversion reports whether both sides of the exchange lie
// on the same sublattice, so that every mapping is its own reversal.
func (t *MetropolisTransition) MappingsContainInversion() bool {
	return t.Position0 == t.Position1
}
