package transition

import (
	"fmt"
	"slices"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// RuleModel is the data shared by kinetic and metropolis rules.
type RuleModel struct {
	Abstract   *model.AbstractTransition
	StartState model.OccupationState
	FinalState model.OccupationState

	// Movement is the ordered swap sequence that turns the start into the
	// final state.
	Movement []model.Swap

	StartStateCode codes.ByteCode64
	FinalStateCode codes.ByteCode64

	// EndIndexingDeltas holds, per path position, the offset from the
	// position to the tracker that occupies it after the jump.
	EndIndexingDeltas     []int
	FinalTrackerOrderCode codes.ByteCode64
}

// SelectableParticle is the particle at the first path position, the one the
// simulation selects to attempt the rule.
func (r *RuleModel) SelectableParticle() model.Particle {
	return r.StartState[0]
}

// PathLength returns the number of path positions.
func (r *RuleModel) PathLength() int {
	return len(r.StartState)
}

// IsLogicalInverse reports whether o undoes r on the same abstract transition.
func (r *RuleModel) IsLogicalInverse(o *RuleModel) bool {
	return r.Abstract == o.Abstract &&
		r.StartState.Equal(o.FinalState) &&
		r.FinalState.Equal(o.StartState)
}

// MobileParticles returns the particles that change at any path position.
func (r *RuleModel) MobileParticles() model.ParticleSet {
	var out []model.Particle
	for i := range r.StartState {
		if r.StartState[i].Index == r.FinalState[i].Index {
			continue
		}
		out = append(out, r.StartState[i], r.FinalState[i])
	}
	return model.NewParticleSet(out...)
}

// Base returns r itself; it lets generic helpers reach the shared data.
func (r *RuleModel) Base() *RuleModel {
	return r
}

// encode fills the state codes, end indexing deltas and tracker order code.
func (r *RuleModel) encode(enc *codes.Encoder) error {
	var err error
	if r.StartStateCode, err = enc.Pack(r.StartState.Indices()); err != nil {
		return fmt.Errorf("start state code: %w", err)
	}
	if r.FinalStateCode, err = enc.Pack(r.FinalState.Indices()); err != nil {
		return fmt.Errorf("final state code: %w", err)
	}
	r.EndIndexingDeltas = EndIndexingDeltas(r.PathLength(), r.Movement)
	if r.FinalTrackerOrderCode, err = TrackerOrderCode(enc, r.EndIndexingDeltas); err != nil {
		return fmt.Errorf("tracker order code: %w", err)
	}
	return nil
}

// EndIndexingDeltas starts from the identity order [0..n), applies every swap
// in sequence and subtracts each position from the value it ends up with.
func EndIndexingDeltas(n int, movement []model.Swap) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for _, s := range movement {
		order[s.From], order[s.To] = order[s.To], order[s.From]
	}
	for i := range order {
		order[i] -= i
	}
	return order
}

// TrackerOrderCode packs position + delta for every position.
func TrackerOrderCode(enc *codes.Encoder, deltas []int) (codes.ByteCode64, error) {
	order := make([]int, len(deltas))
	for i, d := range deltas {
		order[i] = i + d
	}
	return enc.Pack(order)
}

// KineticRuleModel is a rule of a kinetic transition.
type KineticRuleModel struct {
	RuleModel

	// TransitionState holds the particles passing the unstable path
	// positions; stable positions are void.
	TransitionState     model.OccupationState
	TransitionStateCode codes.ByteCode64

	// ChargeTransport is the 1xN row of start state charges.
	ChargeTransport []float64

	AttemptFrequency float64

	// Direction is the focal point shift of the rule along the path of
	// the first mapping.
	Direction RuleDirection

	// Inverse is the rule of the same set that undoes this one.
	Inverse *KineticRuleModel

	// GeometricInverse links a rule and the rule created from it for the
	// reversed path. The link is bidirectional.
	GeometricInverse *KineticRuleModel
}

// HasInverse reports whether the logical inverse is linked.
func (r *KineticRuleModel) HasInverse() bool { return r.Inverse != nil }

func (r *KineticRuleModel) linkInverse(o *KineticRuleModel) {
	r.Inverse = o
	o.Inverse = r
}

// ChargeTransportFactor returns the charge moved along the path, in units of
// the path length. Each start particle contributes its charge times its
// displacement along the path.
func (r *KineticRuleModel) ChargeTransportFactor() float64 {
	n := r.PathLength()
	if n < 2 {
		return 0
	}
	order := make([]int, n)
	for i, d := range r.EndIndexingDeltas {
		order[i] = i + d
	}
	var sum float64
	for pos, from := range order {
		sum += r.ChargeTransport[from] * float64(pos-from)
	}
	return sum / float64(n-1)
}

func (r *KineticRuleModel) encode(enc *codes.Encoder) error {
	if err := r.RuleModel.encode(enc); err != nil {
		return err
	}
	code, err := enc.Pack(r.TransitionState.Indices())
	if err != nil {
		return fmt.Errorf("transition state code: %w", err)
	}
	r.TransitionStateCode = code
	r.ChargeTransport = make([]float64, len(r.StartState))
	for i, p := range r.StartState {
		r.ChargeTransport[i] = p.Charge
	}
	return nil
}

// invert returns the base data of the rule for the reversed path: the
// reversed final state becomes the start, the reversed start state the final
// state. End indexing deltas are reversed and negated and all codes
// recomputed.
func (r *RuleModel) invert(enc *codes.Encoder) (RuleModel, error) {
	n := r.PathLength()
	inv := RuleModel{
		Abstract:   r.Abstract,
		StartState: r.FinalState.Reversed(),
		FinalState: r.StartState.Reversed(),
		Movement:   mirrorMovement(n, r.Movement),
	}

	var err error
	if inv.StartStateCode, err = enc.Pack(inv.StartState.Indices()); err != nil {
		return RuleModel{}, fmt.Errorf("start state code: %w", err)
	}
	if inv.FinalStateCode, err = enc.Pack(inv.FinalState.Indices()); err != nil {
		return RuleModel{}, fmt.Errorf("final state code: %w", err)
	}

	inv.EndIndexingDeltas = slices.Clone(r.EndIndexingDeltas)
	slices.Reverse(inv.EndIndexingDeltas)
	for i := range inv.EndIndexingDeltas {
		inv.EndIndexingDeltas[i] = -inv.EndIndexingDeltas[i]
	}
	if inv.FinalTrackerOrderCode, err = TrackerOrderCode(enc, inv.EndIndexingDeltas); err != nil {
		return RuleModel{}, fmt.Errorf("tracker order code: %w", err)
	}
	return inv, nil
}

// NewGeometricInverse creates the rule for the reversed path. Besides the
// inverted base data the transition state and the charge transport columns
// are reversed. Source and result are linked both ways.
func NewGeometricInverse(enc *codes.Encoder, r *KineticRuleModel) (*KineticRuleModel, error) {
	base, err := r.RuleModel.invert(enc)
	if err != nil {
		return nil, err
	}
	inv := &KineticRuleModel{
		RuleModel:        base,
		TransitionState:  r.TransitionState.Reversed(),
		AttemptFrequency: r.AttemptFrequency,
	}
	if inv.TransitionStateCode, err = enc.Pack(inv.TransitionState.Indices()); err != nil {
		return nil, fmt.Errorf("transition state code: %w", err)
	}

	inv.ChargeTransport = slices.Clone(r.ChargeTransport)
	slices.Reverse(inv.ChargeTransport)

	inv.GeometricInverse = r
	r.GeometricInverse = inv
	return inv, nil
}

// MetropolisRuleModel is a rule of a metropolis exchange.
type MetropolisRuleModel struct {
	RuleModel

	// Inverse is the rule of the same set that undoes this one.
	Inverse *MetropolisRuleModel

	// GeometricInverse links a rule and the rule created from it for the
	// exchange with swapped positions.
	GeometricInverse *MetropolisRuleModel
}

// NewMetropolisInverse creates the rule for the exchange with swapped
// positions and links source and result both ways.
func NewMetropolisInverse(enc *codes.Encoder, r *MetropolisRuleModel) (*MetropolisRuleModel, error) {
	base, err := r.RuleModel.invert(enc)
	if err != nil {
		return nil, err
	}
	inv := &MetropolisRuleModel{RuleModel: base, GeometricInverse: r}
	r.GeometricInverse = inv
	return inv, nil
}

// HasInverse reports whether the logical inverse is linked.
func (r *MetropolisRuleModel) HasInverse() bool { return r.Inverse != nil }

func (r *MetropolisRuleModel) linkInverse(o *MetropolisRuleModel) {
	r.Inverse = o
	o.Inverse = r
}

type invertible[R any] interface {
	Base() *RuleModel
	HasInverse() bool
	linkInverse(R)
}

// LinkInverseRules links every rule to the first unlinked rule that undoes
// it. It returns the number of rules left without an inverse.
func LinkInverseRules[R invertible[R]](rules []R) int {
	for i, a := range rules {
		if a.HasInverse() {
			continue
		}
		for _, b := range rules[i+1:] {
			if b.HasInverse() || !a.Base().IsLogicalInverse(b.Base()) {
				continue
			}
			a.linkInverse(b)
			break
		}
	}

	unlinked := 0
	for _, r := range rules {
		if !r.HasInverse() {
			unlinked++
		}
	}
	return unlinked
}
