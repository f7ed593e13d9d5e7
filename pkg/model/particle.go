package model

import (
	"math"
	"slices"
)

// VoidIndex is the reserved particle index of the void particle.
const VoidIndex = 0

// Particle is a species that can occupy a position.
type Particle struct {
	Index     int     `yaml:"index"`
	Name      string  `yaml:"name"`
	Symbol    string  `yaml:"symbol"`
	Charge    float64 `yaml:"charge"`
	IsVacancy bool    `yaml:"vacancy"`
}

// Void is the particle that marks an unoccupied position.
var Void = Particle{Index: VoidIndex, Name: "Void", Symbol: "Void"}

// IsVoid reports whether p is the void particle.
func (p Particle) IsVoid() bool {
	return p.Index == VoidIndex
}

// ParticleSet is a set of particles ordered by index.
type ParticleSet []Particle

// NewParticleSet returns the particles sorted by index with duplicates removed.
func NewParticleSet(particles ...Particle) ParticleSet {
	set := slices.Clone(particles)
	slices.SortFunc(set, func(a, b Particle) int { return a.Index - b.Index })
	return slices.CompactFunc(set, func(a, b Particle) bool { return a.Index == b.Index })
}

// Indices returns the particle indices in set order.
func (s ParticleSet) Indices() []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.Index
	}
	return out
}

// Contains reports whether a particle with the index of p is in the set.
func (s ParticleSet) Contains(p Particle) bool {
	_, found := slices.BinarySearchFunc(s, p.Index, func(e Particle, idx int) int { return e.Index - idx })
	return found
}

// ChargesEqual compares two charges with an absolute tolerance.
func ChargesEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
