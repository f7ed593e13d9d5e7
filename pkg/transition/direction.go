package transition

import (
	"math"
	"strings"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// RuleDirection tells whether a rule moves the focal point of the path
// occupation away from or towards the path start.
type RuleDirection int8

const (
	DirectionUndefinable RuleDirection = 0
	DirectionPositive    RuleDirection = 1
	DirectionNegative    RuleDirection = -1
)

// String returns the direction name.
func (d RuleDirection) String() string {
	switch d {
	case DirectionPositive:
		return "POSITIVE"
	case DirectionNegative:
		return "NEGATIVE"
	default:
		return "UNDEFINABLE"
	}
}

func setRuleDirections(m *KineticTransitionModel) {
	var geometry []model.Vector3
	if len(m.MappingModels) > 0 {
		geometry = append([]model.Vector3{{}}, m.MappingModels[0].FractionalSequence...)
	}
	for _, r := range m.RuleModels {
		r.Direction = ruleDirection(geometry, &r.RuleModel)
	}
}

// ruleDirection weighs every path position with the index of the particle
// on it and compares the distance of the weighted center to the path start
// before and after the rule. Chained movements can yield a zero shift and
// stay undefinable.
func ruleDirection(geometry []model.Vector3, r *RuleModel) RuleDirection {
	if len(geometry) == 0 || len(geometry) != r.PathLength() {
		return DirectionUndefinable
	}
	origin := geometry[0]
	start, okStart := focalPoint(geometry, r.StartState)
	final, okFinal := focalPoint(geometry, r.FinalState)
	if !okStart || !okFinal {
		return DirectionUndefinable
	}

	shift := final.Sub(origin).Length() - start.Sub(origin).Length()
	switch {
	case math.Abs(shift) <= geometryTolerance:
		return DirectionUndefinable
	case shift > 0:
		return DirectionPositive
	default:
		return DirectionNegative
	}
}

func focalPoint(geometry []model.Vector3, state model.OccupationState) (model.Vector3, bool) {
	var center model.Vector3
	var total float64
	for i, p := range state {
		w := float64(p.Index)
		center.A += w * geometry[i].A
		center.B += w * geometry[i].B
		center.C += w * geometry[i].C
		total += w
	}
	if total == 0 {
		return model.Vector3{}, false
	}
	return model.Vector3{A: center.A / total, B: center.B / total, C: center.C / total}, true
}

// effectiveParticle merges the mobile particles into the particle that
// effectively moves: the first particle plus the charge of every further
// particle that is neither void nor an uncharged vacancy. A snapshot
// particle with the same properties is returned when one exists; otherwise
// the merged particle has index -1.
func effectiveParticle(particles []model.Particle, mobile model.ParticleSet, tolerance float64) model.Particle {
	if len(mobile) == 0 {
		return model.Void
	}
	eff := model.Particle{Index: -1, Name: mobile[0].Name, Symbol: mobile[0].Symbol, Charge: mobile[0].Charge}
	names, symbols := []string{eff.Name}, []string{eff.Symbol}
	for _, p := range mobile[1:] {
		if p.IsVoid() || (p.IsVacancy && model.ChargesEqual(p.Charge, 0, tolerance)) {
			continue
		}
		eff.Charge += p.Charge
		names = append(names, p.Name)
		symbols = append(symbols, p.Symbol)
	}
	eff.Name = strings.Join(names, "-")
	eff.Symbol = strings.Join(symbols, "-")

	for _, p := range particles {
		if p.Symbol == eff.Symbol && p.IsVacancy == eff.IsVacancy && model.ChargesEqual(p.Charge, eff.Charge, tolerance) {
			return p
		}
	}
	return eff
}
