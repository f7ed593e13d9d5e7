package transition

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// BuilderConfig configures the transition builders.
type BuilderConfig struct {
	// ChargeTolerance is the absolute tolerance of charge conservation
	// checks. Zero means DefaultChargeTolerance.
	ChargeTolerance float64

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

func (c BuilderConfig) withDefaults() BuilderConfig {
	if c.ChargeTolerance == 0 {
		c.ChargeTolerance = DefaultChargeTolerance
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// KineticMappingModel is one geometric realization of a kinetic transition.
type KineticMappingModel struct {
	Mapping model.KineticMapping

	// TransitionSequence holds the crystal vectors of positions 1..n-1
	// relative to the start position.
	TransitionSequence []model.Vector4

	// FractionalSequence holds the fractional vectors of positions 1..n-1
	// relative to the start position.
	FractionalSequence []model.Vector3

	// MoveVectors holds, per path position, the displacement of the
	// particle that starts there.
	MoveVectors []model.Vector3

	// Inverse is the mapping that walks the same path backwards.
	Inverse *KineticMappingModel
}

// KineticTransitionModel is a kinetic transition with its rules and mappings.
type KineticTransitionModel struct {
	ModelID    int
	Transition *model.KineticTransition
	Movement   []model.Swap

	RuleModels    []*KineticRuleModel
	MappingModels []*KineticMappingModel

	// Inverse is the transition model of the reversed jumps. It is the
	// model itself when the mappings contain their own inversion.
	Inverse *KineticTransitionModel

	// IsGeometricInverse marks models created by inverting another model.
	IsGeometricInverse bool

	// EffectiveParticle is the merged mobile species of the transition.
	EffectiveParticle model.Particle

	Mobility
}

// HasChainedMovement reports whether any rule moves more than a swap pair.
func (m *KineticTransitionModel) HasChainedMovement() bool {
	for _, r := range m.RuleModels {
		if isChained(r.PathLength(), r.Movement) {
			return true
		}
	}
	return false
}

// KineticBuilder builds kinetic transition models.
type KineticBuilder struct {
	cfg     BuilderConfig
	encoder *codes.Encoder
}

// NewKineticBuilder creates a builder with its own code encoder.
func NewKineticBuilder(cfg BuilderConfig) *KineticBuilder {
	return &KineticBuilder{cfg: cfg.withDefaults(), encoder: codes.NewEncoder()}
}

// BuildModels builds one model per kinetic transition of the snapshot plus
// an inverse model for every transition that has no inverse among them.
// Inverse models are numbered after all source models.
func (b *KineticBuilder) BuildModels(ctx context.Context, snap *model.Snapshot) ([]*KineticTransitionModel, error) {
	models := make([]*KineticTransitionModel, 0, len(snap.KineticTransitions))
	for i := range snap.KineticTransitions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := &snap.KineticTransitions[i]
		m, err := b.buildModel(t)
		if err != nil {
			return nil, fmt.Errorf("kinetic transition %d: %w", t.Index, err)
		}
		m.ModelID = len(models)
		models = append(models, m)
	}

	var inverses []*KineticTransitionModel
	for _, m := range models {
		if m.Inverse != nil || b.linkToExisting(m, models) {
			continue
		}
		if m.HasChainedMovement() {
			b.cfg.Logger.Debug("no geometric inverse for chained movement", "transition", m.Transition.Index)
			continue
		}
		inv, err := b.geometricInverse(m)
		if err != nil {
			return nil, fmt.Errorf("kinetic transition %d inverse: %w", m.Transition.Index, err)
		}
		inv.ModelID = len(models) + len(inverses)
		inverses = append(inverses, inv)
	}
	models = append(models, inverses...)

	for _, m := range models {
		mob, err := aggregateMobility(b.encoder, m.RuleModels)
		if err != nil {
			return nil, fmt.Errorf("kinetic transition %d: %w", m.Transition.Index, err)
		}
		m.Mobility = mob
		m.EffectiveParticle = effectiveParticle(snap.Particles, mob.MobileParticles, b.cfg.ChargeTolerance)
		setRuleDirections(m)
		b.cfg.Logger.Debug("kinetic transition model built",
			"model", m.ModelID,
			"transition", m.Transition.Index,
			"rules", len(m.RuleModels),
			"mappings", len(m.MappingModels),
			"inverse", m.IsGeometricInverse,
			"effective", m.EffectiveParticle.Symbol)
	}
	return models, nil
}

func (b *KineticBuilder) buildModel(t *model.KineticTransition) (*KineticTransitionModel, error) {
	if t.Abstract == nil {
		return nil, model.Inconsistency("kinetic transition", t.Index, "no abstract transition")
	}
	movement, err := Movement(t.Abstract)
	if err != nil {
		return nil, err
	}

	rules, err := generateKineticRules(t.Abstract, b.cfg.ChargeTolerance)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		r.AttemptFrequency = t.AttemptFrequency
		if err := r.encode(b.encoder); err != nil {
			return nil, err
		}
	}
	if unlinked := LinkInverseRules(rules); unlinked > 0 {
		b.cfg.Logger.Debug("rules without logical inverse", "transition", t.Index, "count", unlinked)
	}

	m := &KineticTransitionModel{Transition: t, Movement: movement, RuleModels: rules}
	for _, mapping := range t.Mappings {
		mm, err := newMappingModel(t, mapping, movement)
		if err != nil {
			return nil, err
		}
		m.MappingModels = append(m.MappingModels, mm)
	}

	if t.MappingsContainInversion {
		if !linkMappingModels(m.MappingModels) {
			return nil, model.Inconsistency("kinetic transition", t.Index,
				"mappings marked as self inverse cannot be linked")
		}
		m.Inverse = m
	}
	return m, nil
}

// linkToExisting pairs m with another unpaired model whose mappings are the
// reversed mappings of m.
func (b *KineticBuilder) linkToExisting(m *KineticTransitionModel, models []*KineticTransitionModel) bool {
	for _, o := range models {
		if o == m || o.Inverse != nil || len(o.MappingModels) != len(m.MappingModels) || len(m.MappingModels) == 0 {
			continue
		}
		if o.Transition.Abstract.PathLength() != m.Transition.Abstract.PathLength() {
			continue
		}
		pairs := make([]*KineticMappingModel, len(m.MappingModels))
		ok := true
		for i, mm := range m.MappingModels {
			for _, om := range o.MappingModels {
				if om.Inverse == nil && !slices.Contains(pairs, om) && isGeometricInverse(mm, om) {
					pairs[i] = om
					break
				}
			}
			if pairs[i] == nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for i, mm := range m.MappingModels {
			mm.Inverse, pairs[i].Inverse = pairs[i], mm
		}
		m.Inverse, o.Inverse = o, m
		b.cfg.Logger.Debug("kinetic transitions linked as inverses",
			"transition", m.Transition.Index, "inverse", o.Transition.Index)
		return true
	}
	return false
}

// geometricInverse creates the model of the reversed path. Its rules are the
// geometric inverses of the source rules, linked among each other.
func (b *KineticBuilder) geometricInverse(m *KineticTransitionModel) (*KineticTransitionModel, error) {
	n := m.Transition.Abstract.PathLength()
	inv := &KineticTransitionModel{
		Transition:         m.Transition,
		Movement:           mirrorMovement(n, m.Movement),
		Inverse:            m,
		IsGeometricInverse: true,
	}
	m.Inverse = inv

	for _, r := range m.RuleModels {
		ir, err := NewGeometricInverse(b.encoder, r)
		if err != nil {
			return nil, err
		}
		inv.RuleModels = append(inv.RuleModels, ir)
	}
	LinkInverseRules(inv.RuleModels)

	for _, mm := range m.MappingModels {
		mapping := model.KineticMapping{
			PositionSequence:   reversed(mm.Mapping.PositionSequence),
			FractionalSequence: reversed(mm.Mapping.FractionalSequence),
		}
		im, err := newMappingModel(m.Transition, mapping, inv.Movement)
		if err != nil {
			return nil, err
		}
		im.Inverse, mm.Inverse = mm, im
		inv.MappingModels = append(inv.MappingModels, im)
	}
	return inv, nil
}

func newMappingModel(t *model.KineticTransition, mapping model.KineticMapping, movement []model.Swap) (*KineticMappingModel, error) {
	n := t.Abstract.PathLength()
	if len(mapping.PositionSequence) != n || len(mapping.FractionalSequence) != n {
		return nil, model.Inconsistency("kinetic transition", t.Index,
			"mapping with %d/%d positions on a path of %d",
			len(mapping.PositionSequence), len(mapping.FractionalSequence), n)
	}

	mm := &KineticMappingModel{
		Mapping:            mapping,
		TransitionSequence: make([]model.Vector4, 0, n-1),
		FractionalSequence: make([]model.Vector3, 0, n-1),
		MoveVectors:        make([]model.Vector3, n),
	}
	for i := 1; i < n; i++ {
		mm.TransitionSequence = append(mm.TransitionSequence, mapping.PositionSequence[i].Sub(mapping.PositionSequence[0]))
		mm.FractionalSequence = append(mm.FractionalSequence, mapping.FractionalSequence[i].Sub(mapping.FractionalSequence[0]))
	}

	// The content that ends at position j started at j + delta[j].
	for j, d := range EndIndexingDeltas(n, movement) {
		from := j + d
		mm.MoveVectors[from] = mapping.FractionalSequence[j].Sub(mapping.FractionalSequence[from])
	}
	return mm, nil
}

// linkMappingModels links every mapping to its reversed counterpart within
// the set. A mapping may be its own inverse.
func linkMappingModels(mappings []*KineticMappingModel) bool {
	for i, a := range mappings {
		if a.Inverse != nil {
			continue
		}
		for _, c := range mappings[i:] {
			if c.Inverse != nil || !isGeometricInverse(a, c) {
				continue
			}
			a.Inverse, c.Inverse = c, a
			break
		}
		if a.Inverse == nil {
			for _, m := range mappings {
				m.Inverse = nil
			}
			return false
		}
	}
	return true
}

const geometryTolerance = 1e-9

// isGeometricInverse reports whether b walks the path of a backwards.
func isGeometricInverse(a, b *KineticMappingModel) bool {
	pa, pb := a.Mapping.FractionalSequence, b.Mapping.FractionalSequence
	n := len(pa)
	if len(pb) != n || n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		da := pa[n-1-i].Sub(pa[n-1])
		db := pb[i].Sub(pb[0])
		if !vectorsEqual(da, db) {
			return false
		}
		if a.Mapping.PositionSequence[n-1-i].P != b.Mapping.PositionSequence[i].P {
			return false
		}
	}
	return true
}

func vectorsEqual(a, b model.Vector3) bool {
	return math.Abs(a.A-b.A) <= geometryTolerance &&
		math.Abs(a.B-b.B) <= geometryTolerance &&
		math.Abs(a.C-b.C) <= geometryTolerance
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
