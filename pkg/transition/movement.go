package transition

import (
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// Movement returns the swap sequence of the abstract transition. Declared
// swaps are validated; without declared swaps the movement is derived from
// the connector sequence.
func Movement(t *model.AbstractTransition) ([]model.Swap, error) {
	n := t.PathLength()
	if len(t.Connectors) != max(n-1, 0) {
		return nil, model.Inconsistency("abstract transition", t.Index,
			"%d connectors for a path of %d positions", len(t.Connectors), n)
	}
	if len(t.Movement) == 0 {
		return defaultMovement(t), nil
	}
	for _, s := range t.Movement {
		if s.From < 0 || s.From >= n || s.To < 0 || s.To >= n {
			return nil, model.Inconsistency("abstract transition", t.Index,
				"swap (%d,%d) outside path of %d positions", s.From, s.To, n)
		}
		if s.From == s.To {
			return nil, model.Inconsistency("abstract transition", t.Index, "self swap at %d", s.From)
		}
	}
	return append([]model.Swap(nil), t.Movement...), nil
}

// defaultMovement walks every run of dynamically connected positions and
// swaps its stable positions from right to left, so each particle advances
// to the next stable position and the rightmost content ends at the left.
func defaultMovement(t *model.AbstractTransition) []model.Swap {
	var movement []model.Swap
	n := t.PathLength()
	for start := 0; start < n; {
		end := start
		for end < n-1 && t.Connectors[end] == model.ConnectorDynamic {
			end++
		}

		var stable []int
		for i := start; i <= end; i++ {
			if !t.ExchangeGroups[i].Unstable {
				stable = append(stable, i)
			}
		}
		for i := len(stable) - 1; i > 0; i-- {
			movement = append(movement, model.Swap{From: stable[i-1], To: stable[i]})
		}
		start = end + 1
	}
	return movement
}

// applyMovement returns the state after all swaps.
func applyMovement(state model.OccupationState, movement []model.Swap) model.OccupationState {
	out := append(model.OccupationState(nil), state...)
	for _, s := range movement {
		out[s.From], out[s.To] = out[s.To], out[s.From]
	}
	return out
}

// invertMovement returns the swaps that undo movement on the same path.
func invertMovement(movement []model.Swap) []model.Swap {
	out := make([]model.Swap, len(movement))
	for i, s := range movement {
		out[len(movement)-1-i] = s
	}
	return out
}

// mirrorMovement returns the swaps that undo movement on the reversed path.
func mirrorMovement(n int, movement []model.Swap) []model.Swap {
	out := invertMovement(movement)
	for i, s := range out {
		out[i] = model.Swap{From: n - 1 - s.From, To: n - 1 - s.To}
	}
	return out
}

// isChained reports whether the movement is not its own inverse, e.g. a
// push chain where every particle advances one position.
func isChained(n int, movement []model.Swap) bool {
	deltas := EndIndexingDeltas(n, movement)
	for i, d := range deltas {
		j := i + d
		if j+deltas[j] != i {
			return true
		}
	}
	return false
}

// passingParticle returns the particle that crosses the unstable position
// pos, or false if no swap spans it. Of the two swapped particles the one
// that is neither void nor a vacancy passes.
func passingParticle(start model.OccupationState, movement []model.Swap, pos int) (model.Particle, bool) {
	state := append(model.OccupationState(nil), start...)
	for _, s := range movement {
		lo, hi := min(s.From, s.To), max(s.From, s.To)
		if lo < pos && pos < hi {
			a, b := state[s.From], state[s.To]
			if a.IsVoid() || a.IsVacancy {
				return b, true
			}
			return a, true
		}
		state[s.From], state[s.To] = state[s.To], state[s.From]
	}
	return model.Particle{}, false
}
