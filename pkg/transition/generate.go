package transition

import (
	"slices"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// DefaultChargeTolerance is the absolute tolerance of charge comparisons.
const DefaultChargeTolerance = 1e-6

// candidate is one start/final assignment of a path.
type candidate struct {
	start model.OccupationState
	final model.OccupationState
}

// enumerate returns the cartesian product of the exchange pair choices of
// every position. Unstable positions are void in both states.
func enumerate(groups []model.StateExchangeGroup) []candidate {
	choices := make([][]model.StateExchangePair, len(groups))
	for i, g := range groups {
		if g.Unstable {
			choices[i] = []model.StateExchangePair{{Donor: model.Void, Acceptor: model.Void}}
			continue
		}
		if len(g.Pairs) == 0 {
			return nil
		}
		choices[i] = g.Pairs
	}

	var out []candidate
	pick := make([]int, len(groups))
	for {
		c := candidate{
			start: make(model.OccupationState, len(groups)),
			final: make(model.OccupationState, len(groups)),
		}
		for i, j := range pick {
			c.start[i] = choices[i][j].Donor
			c.final[i] = choices[i][j].Acceptor
		}
		out = append(out, c)

		// Odometer increment, last position fastest.
		i := len(pick) - 1
		for ; i >= 0; i-- {
			pick[i]++
			if pick[i] < len(choices[i]) {
				break
			}
			pick[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

func totalCharge(state model.OccupationState) float64 {
	var sum float64
	for _, p := range state {
		sum += p.Charge
	}
	return sum
}

func sameParticles(a, b model.OccupationState) bool {
	x, y := a.Indices(), b.Indices()
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func checkPath(t *model.AbstractTransition) error {
	if t.PathLength() == 0 {
		return model.Inconsistency("abstract transition", t.Index, "empty path")
	}
	if t.PathLength() > codes.MaxLength {
		return model.Inconsistency("abstract transition", t.Index,
			"path of %d positions exceeds %d", t.PathLength(), codes.MaxLength)
	}
	return nil
}

// generateKineticRules enumerates the kinetic rules of an abstract
// transition. A candidate is valid when the movement turns its start into its
// final state, both differ and charge is conserved. Missing inverses are
// added afterwards.
func generateKineticRules(t *model.AbstractTransition, tolerance float64) ([]*KineticRuleModel, error) {
	if err := checkPath(t); err != nil {
		return nil, err
	}
	movement, err := Movement(t)
	if err != nil {
		return nil, err
	}

	var rules []*KineticRuleModel
	for _, c := range enumerate(t.ExchangeGroups) {
		if c.start.Equal(c.final) || !applyMovement(c.start, movement).Equal(c.final) {
			continue
		}
		if !model.ChargesEqual(totalCharge(c.start), totalCharge(c.final), tolerance) {
			continue
		}
		ts, ok, err := transitionState(t, c.start, movement)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rules = append(rules, &KineticRuleModel{
			RuleModel: RuleModel{
				Abstract:   t,
				StartState: c.start,
				FinalState: c.final,
				Movement:   movement,
			},
			TransitionState: ts,
		})
	}

	for _, r := range rules {
		if slices.ContainsFunc(rules, func(o *KineticRuleModel) bool { return r.IsLogicalInverse(&o.RuleModel) }) {
			continue
		}
		rules = append(rules, &KineticRuleModel{
			RuleModel: RuleModel{
				Abstract:   t,
				StartState: r.FinalState,
				FinalState: r.StartState,
				Movement:   invertMovement(r.Movement),
			},
			TransitionState: r.TransitionState,
		})
	}
	return rules, nil
}

// transitionState places the passing particle on every unstable position
// and void everywhere else. The candidate is rejected when an unstable
// position does not allow the passing particle.
func transitionState(t *model.AbstractTransition, start model.OccupationState, movement []model.Swap) (model.OccupationState, bool, error) {
	state := make(model.OccupationState, len(start))
	for i, g := range t.ExchangeGroups {
		state[i] = model.Void
		if !g.Unstable {
			continue
		}
		p, ok := passingParticle(start, movement, i)
		if !ok {
			return nil, false, model.Inconsistency("abstract transition", t.Index,
				"unstable position %d is not crossed by the movement", i)
		}
		if len(g.Pairs) > 0 && !slices.ContainsFunc(g.Pairs, func(pair model.StateExchangePair) bool {
			return pair.Acceptor.Index == p.Index || pair.Donor.Index == p.Index
		}) {
			return nil, false, nil
		}
		state[i] = p
	}
	return state, true, nil
}

// metropolisMovement is the single exchange of both positions.
var metropolisMovement = []model.Swap{{From: 0, To: 1}}

// generateMetropolisRules enumerates the exchange rules of a two position
// abstract transition. A candidate is valid when mass and charge are
// conserved and the two start particles differ.
func generateMetropolisRules(t *model.AbstractTransition, tolerance float64) ([]*MetropolisRuleModel, error) {
	if t.PathLength() != 2 {
		return nil, model.Inconsistency("abstract transition", t.Index,
			"metropolis exchange needs 2 positions, got %d", t.PathLength())
	}

	var rules []*MetropolisRuleModel
	for _, c := range enumerate(t.ExchangeGroups) {
		if c.start[0].Index == c.start[1].Index || c.start.Equal(c.final) {
			continue
		}
		if !sameParticles(c.start, c.final) {
			continue
		}
		if !model.ChargesEqual(totalCharge(c.start), totalCharge(c.final), tolerance) {
			continue
		}
		rules = append(rules, &MetropolisRuleModel{RuleModel: RuleModel{
			Abstract:   t,
			StartState: c.start,
			FinalState: c.final,
			Movement:   metropolisMovement,
		}})
	}

	for _, r := range rules {
		if slices.ContainsFunc(rules, func(o *MetropolisRuleModel) bool { return r.IsLogicalInverse(&o.RuleModel) }) {
			continue
		}
		rules = append(rules, &MetropolisRuleModel{RuleModel: RuleModel{
			Abstract:   t,
			StartState: r.FinalState,
			FinalState: r.StartState,
			Movement:   metropolisMovement,
		}})
	}
	return rules, nil
}
