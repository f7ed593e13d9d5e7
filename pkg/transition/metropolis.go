package transition

import (
	"context"
	"fmt"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// MetropolisMappingModel is one position pair of a metropolis exchange.
type MetropolisMappingModel struct {
	Mapping model.MetropolisMapping

	// Start and end positions as crystal vectors in the origin cell.
	StartVector4 model.Vector4
	EndVector4   model.Vector4

	// Start and end positions as fractional vectors.
	StartVector3 model.Vector3
	EndVector3   model.Vector3

	// Inverse is the mapping with swapped positions.
	Inverse *MetropolisMappingModel
}

// invert returns the mapping with start and end swapped.
func (m *MetropolisMappingModel) invert() *MetropolisMappingModel {
	return &MetropolisMappingModel{
		Mapping:      model.MetropolisMapping{Position0: m.Mapping.Position1, Position1: m.Mapping.Position0},
		StartVector4: m.EndVector4,
		EndVector4:   m.StartVector4,
		StartVector3: m.EndVector3,
		EndVector3:   m.StartVector3,
	}
}

// isInverseOf reports whether m exchanges the positions of o in reverse order.
func (m *MetropolisMappingModel) isInverseOf(o *MetropolisMappingModel) bool {
	return m.StartVector4 == o.EndVector4 && m.EndVector4 == o.StartVector4
}

// MetropolisTransitionModel is a metropolis exchange with its rules.
type MetropolisTransitionModel struct {
	ModelID    int
	Transition *model.MetropolisTransition
	RuleModels []*MetropolisRuleModel

	MappingModels []*MetropolisMappingModel

	// Inverse is the model of the exchange with swapped positions. It is
	// the model itself when both positions lie on the same sublattice.
	Inverse *MetropolisTransitionModel

	// IsGeometricInverse marks models created by inverting another model.
	IsGeometricInverse bool

	Mobility
}

// MetropolisBuilder builds metropolis transition models.
type MetropolisBuilder struct {
	cfg     BuilderConfig
	encoder *codes.Encoder
}

// NewMetropolisBuilder creates a builder with its own code encoder.
func NewMetropolisBuilder(cfg BuilderConfig) *MetropolisBuilder {
	return &MetropolisBuilder{cfg: cfg.withDefaults(), encoder: codes.NewEncoder()}
}

// BuildModels builds one model per metropolis transition of the snapshot.
// Exchanges between different sublattices get an inverse model with swapped
// positions; inverse models are numbered after all source models.
func (b *MetropolisBuilder) BuildModels(ctx context.Context, snap *model.Snapshot) ([]*MetropolisTransitionModel, error) {
	models := make([]*MetropolisTransitionModel, 0, len(snap.MetropolisTransitions))
	for i := range snap.MetropolisTransitions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := &snap.MetropolisTransitions[i]
		m, err := b.buildModel(snap, t)
		if err != nil {
			return nil, fmt.Errorf("metropolis transition %d: %w", t.Index, err)
		}
		m.ModelID = len(models)
		models = append(models, m)
	}

	var inverses []*MetropolisTransitionModel
	for _, m := range models {
		if m.Transition.MappingsContainInversion() {
			m.Inverse = m
			continue
		}
		inv, err := b.inverseModel(m)
		if err != nil {
			return nil, fmt.Errorf("metropolis transition %d inverse: %w", m.Transition.Index, err)
		}
		inv.ModelID = len(models) + len(inverses)
		inverses = append(inverses, inv)
	}
	models = append(models, inverses...)

	for _, m := range models {
		mob, err := aggregateMobility(b.encoder, m.RuleModels)
		if err != nil {
			return nil, fmt.Errorf("metropolis transition %d: %w", m.Transition.Index, err)
		}
		m.Mobility = mob
		b.cfg.Logger.Debug("metropolis transition model built",
			"model", m.ModelID,
			"transition", m.Transition.Index,
			"rules", len(m.RuleModels),
			"mappings", len(m.MappingModels),
			"inverse", m.IsGeometricInverse)
	}
	return models, nil
}

func (b *MetropolisBuilder) buildModel(snap *model.Snapshot, t *model.MetropolisTransition) (*MetropolisTransitionModel, error) {
	if t.Abstract == nil {
		return nil, model.Inconsistency("metropolis transition", t.Index, "no abstract transition")
	}
	rules, err := generateMetropolisRules(t.Abstract, b.cfg.ChargeTolerance)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if err := r.encode(b.encoder); err != nil {
			return nil, err
		}
	}
	LinkInverseRules(rules)

	m := &MetropolisTransitionModel{Transition: t, RuleModels: rules}
	for _, mapping := range t.Mappings() {
		mm, err := newMetropolisMappingModel(snap, t, mapping)
		if err != nil {
			return nil, err
		}
		m.MappingModels = append(m.MappingModels, mm)
	}

	if t.MappingsContainInversion() && !linkMetropolisMappings(m.MappingModels) {
		return nil, model.Inconsistency("metropolis transition", t.Index,
			"mappings marked as self inverse cannot be linked")
	}
	return m, nil
}

// inverseModel creates the model of the exchange with swapped positions.
// Its mappings and rules are linked to their sources.
func (b *MetropolisBuilder) inverseModel(m *MetropolisTransitionModel) (*MetropolisTransitionModel, error) {
	inv := &MetropolisTransitionModel{
		Transition:         m.Transition,
		Inverse:            m,
		IsGeometricInverse: true,
	}
	m.Inverse = inv

	for _, r := range m.RuleModels {
		ir, err := NewMetropolisInverse(b.encoder, r)
		if err != nil {
			return nil, err
		}
		inv.RuleModels = append(inv.RuleModels, ir)
	}
	LinkInverseRules(inv.RuleModels)

	for _, mm := range m.MappingModels {
		im := mm.invert()
		im.Inverse, mm.Inverse = mm, im
		inv.MappingModels = append(inv.MappingModels, im)
	}
	return inv, nil
}

func newMetropolisMappingModel(snap *model.Snapshot, t *model.MetropolisTransition, mapping model.MetropolisMapping) (*MetropolisMappingModel, error) {
	p0, ok0 := snap.Position(mapping.Position0)
	p1, ok1 := snap.Position(mapping.Position1)
	if !ok0 || !ok1 {
		return nil, model.Inconsistency("metropolis transition", t.Index,
			"mapping (%d,%d) references an unknown position", mapping.Position0, mapping.Position1)
	}
	return &MetropolisMappingModel{
		Mapping:      mapping,
		StartVector4: model.Vector4{P: p0.Index},
		EndVector4:   model.Vector4{P: p1.Index},
		StartVector3: p0.Vector,
		EndVector3:   p1.Vector,
	}, nil
}

// linkMetropolisMappings links every mapping to its reversed counterpart
// within the set. A mapping may be its own inverse.
func linkMetropolisMappings(mappings []*MetropolisMappingModel) bool {
	for i, a := range mappings {
		if a.Inverse != nil {
			continue
		}
		for _, c := range mappings[i:] {
			if c.Inverse != nil || !a.isInverseOf(c) {
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
