package transition

import (
	"fmt"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// Mobility summarizes which particles a transition moves.
type Mobility struct {
	// SelectableParticles are the distinct selectable particles of all
	// rules, ordered by index.
	SelectableParticles model.ParticleSet

	// SelectableParticleMask packs the selectable particle indices.
	SelectableParticleMask codes.ByteCode64

	// MobileParticles are the particles that change position in any rule.
	MobileParticles model.ParticleSet
}

type baseRule interface {
	Base() *RuleModel
}

func aggregateMobility[R baseRule](enc *codes.Encoder, rules []R) (Mobility, error) {
	var selectable, mobile []model.Particle
	for _, r := range rules {
		selectable = append(selectable, r.Base().SelectableParticle())
		mobile = append(mobile, r.Base().MobileParticles()...)
	}

	m := Mobility{
		SelectableParticles: model.NewParticleSet(selectable...),
		MobileParticles:     model.NewParticleSet(mobile...),
	}
	mask, err := enc.Pack(m.SelectableParticles.Indices())
	if err != nil {
		return Mobility{}, fmt.Errorf("selectable particle mask: %w", err)
	}
	m.SelectableParticleMask = mask
	return m, nil
}
