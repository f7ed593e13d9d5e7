package model

import (
	"cmp"
	"slices"
	"strings"
)

// OccupationState assigns one particle to each slot of a position sequence.
type OccupationState []Particle

// Indices returns the particle index of every slot.
func (s OccupationState) Indices() []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.Index
	}
	return out
}

// Reordered returns the state where slot i holds the particle of slot order[i].
// The order must be a permutation of the slot indices.
func (s OccupationState) Reordered(order []int) (OccupationState, bool) {
	if len(order) != len(s) {
		return nil, false
	}
	out := make(OccupationState, len(s))
	for i, from := range order {
		if from < 0 || from >= len(s) {
			return nil, false
		}
		out[i] = s[from]
	}
	return out, true
}

// Reversed returns the state with slot order reversed.
func (s OccupationState) Reversed() OccupationState {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

// Compare orders states lexicographically by particle index.
func (s OccupationState) Compare(o OccupationState) int {
	for i := 0; i < len(s) && i < len(o); i++ {
		if c := cmp.Compare(s[i].Index, o[i].Index); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(s), len(o))
}

// Equal reports whether both states hold the same particles in the same order.
func (s OccupationState) Equal(o OccupationState) bool {
	return s.Compare(o) == 0
}

// Symbols returns the slot symbols joined by commas.
func (s OccupationState) Symbols() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.Symbol
	}
	return strings.Join(parts, ",")
}
