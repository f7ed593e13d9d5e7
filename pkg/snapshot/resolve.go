package snapshot

import (
	"slices"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
)

type resolver struct {
	particles   map[int]model.Particle
	positions   map[int]model.UnitCellPosition
	transitions map[int]*model.AbstractTransition
}

// Resolve converts the document into a snapshot, a symmetry service and
// the job list. Group interactions without a listed point group get the
// identity group.
func (d *Document) Resolve() (*Loaded, error) {
	r := &resolver{
		particles:   map[int]model.Particle{model.VoidIndex: model.Void},
		positions:   make(map[int]model.UnitCellPosition, len(d.Positions)),
		transitions: make(map[int]*model.AbstractTransition, len(d.Transitions)),
	}
	snap := &model.Snapshot{Name: d.Name}

	for _, p := range d.Particles {
		if _, dup := r.particles[p.Index]; dup {
			return nil, invalid("particle %d defined twice or reserved", p.Index)
		}
		r.particles[p.Index] = p
		snap.Particles = append(snap.Particles, p)
	}
	slices.SortFunc(snap.Particles, func(a, b model.Particle) int { return a.Index - b.Index })

	for _, p := range d.Positions {
		pos, err := r.position(p)
		if err != nil {
			return nil, err
		}
		r.positions[p.Index] = pos
		snap.Positions = append(snap.Positions, pos)
	}

	for _, g := range d.GroupInteractions {
		gi, info, err := r.groupInteraction(g)
		if err != nil {
			return nil, err
		}
		snap.GroupInteractions = append(snap.GroupInteractions, gi)
		snap.PositionGroupInfos = append(snap.PositionGroupInfos, info)
	}

	for _, p := range d.PairInteractions {
		pi, err := r.pairInteraction(p)
		if err != nil {
			return nil, err
		}
		snap.PairInteractions = append(snap.PairInteractions, pi)
	}

	for _, t := range d.Transitions {
		at, err := r.abstractTransition(t)
		if err != nil {
			return nil, err
		}
		r.transitions[t.Index] = at
	}

	for _, k := range d.KineticTransitions {
		kt, err := r.kineticTransition(k)
		if err != nil {
			return nil, err
		}
		snap.KineticTransitions = append(snap.KineticTransitions, kt)
	}

	for _, m := range d.MetropolisTransitions {
		mt, err := r.metropolisTransition(m)
		if err != nil {
			return nil, err
		}
		snap.MetropolisTransitions = append(snap.MetropolisTransitions, mt)
	}

	svc, err := d.symmetryService(snap)
	if err != nil {
		return nil, err
	}

	jobList := d.Jobs.All()
	names := make(map[string]bool, len(jobList))
	for _, j := range jobList {
		if names[j.JobName()] {
			return nil, invalid("job %q defined twice", j.JobName())
		}
		names[j.JobName()] = true
	}

	return &Loaded{Snapshot: snap, Symmetry: svc, Jobs: jobList}, nil
}

func (r *resolver) particle(index int) (model.Particle, error) {
	p, ok := r.particles[index]
	if !ok {
		return model.Particle{}, invalid("unknown particle %d", index)
	}
	return p, nil
}

func (r *resolver) state(indices []int) (model.OccupationState, error) {
	out := make(model.OccupationState, len(indices))
	for i, idx := range indices {
		p, err := r.particle(idx)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func (r *resolver) position(p PositionDoc) (model.UnitCellPosition, error) {
	if _, dup := r.positions[p.Index]; dup {
		return model.UnitCellPosition{}, invalid("position %d defined twice", p.Index)
	}
	occ, err := r.state(p.Occupation)
	if err != nil {
		return model.UnitCellPosition{}, err
	}
	return model.UnitCellPosition{
		Index:      p.Index,
		Vector:     p.Vector,
		Occupation: model.NewParticleSet(occ...),
		Unstable:   p.Unstable,
	}, nil
}

func (r *resolver) unitCellPosition(index int) (model.UnitCellPosition, error) {
	pos, ok := r.positions[index]
	if !ok {
		return model.UnitCellPosition{}, invalid("unknown position %d", index)
	}
	return pos, nil
}

func (r *resolver) groupInteraction(g GroupInteractionDoc) (model.GroupInteraction, model.PositionGroupInfo, error) {
	center, err := r.unitCellPosition(g.Center)
	if err != nil {
		return model.GroupInteraction{}, model.PositionGroupInfo{}, err
	}
	gi := model.GroupInteraction{
		Index:          g.Index,
		CenterPosition: center,
		Geometry:       slices.Clone(g.Geometry),
	}
	info := model.PositionGroupInfo{GroupIndex: g.Index}
	for _, e := range g.Energies {
		cp, err := r.particle(e.Center)
		if err != nil {
			return gi, info, err
		}
		occ, err := r.state(e.Occupation)
		if err != nil {
			return gi, info, err
		}
		if len(occ) != len(gi.Geometry) {
			return gi, info, invalid("group interaction %d: occupation length %d for %d positions", g.Index, len(occ), len(gi.Geometry))
		}
		info.EnergyEntries = append(info.EnergyEntries, model.GroupEnergyEntry{
			CenterParticle: cp,
			Occupation:     occ,
			Energy:         e.Energy,
		})
	}
	return gi, info, nil
}

func (r *resolver) pairInteraction(p PairInteractionDoc) (model.PairInteraction, error) {
	pos0, err := r.unitCellPosition(p.Position0)
	if err != nil {
		return model.PairInteraction{}, err
	}
	pos1, err := r.unitCellPosition(p.Position1)
	if err != nil {
		return model.PairInteraction{}, err
	}
	pi := model.PairInteraction{
		Index:     p.Index,
		Position0: pos0,
		Position1: pos1,
		Distance:  p.Distance,
		Symmetric: p.Symmetric,
	}
	for _, e := range p.Energies {
		p0, err := r.particle(e.Particles[0])
		if err != nil {
			return pi, err
		}
		p1, err := r.particle(e.Particles[1])
		if err != nil {
			return pi, err
		}
		pi.EnergyEntries = append(pi.EnergyEntries, model.PairEnergyEntry{Particle0: p0, Particle1: p1, Energy: e.Energy})
	}
	return pi, nil
}

func (r *resolver) abstractTransition(t AbstractTransitionDoc) (*model.AbstractTransition, error) {
	if _, dup := r.transitions[t.Index]; dup {
		return nil, invalid("transition %d defined twice", t.Index)
	}
	at := &model.AbstractTransition{Index: t.Index, Name: t.Name, Metropolis: t.Metropolis}
	for _, c := range t.Connectors {
		ct, err := parseConnector(c)
		if err != nil {
			return nil, invalid("transition %d: %v", t.Index, err)
		}
		at.Connectors = append(at.Connectors, ct)
	}
	for _, g := range t.ExchangeGroups {
		group := model.StateExchangeGroup{Unstable: g.Unstable}
		for _, pair := range g.Pairs {
			donor, err := r.particle(pair[0])
			if err != nil {
				return nil, err
			}
			acceptor, err := r.particle(pair[1])
			if err != nil {
				return nil, err
			}
			group.Pairs = append(group.Pairs, model.StateExchangePair{Donor: donor, Acceptor: acceptor})
		}
		at.ExchangeGroups = append(at.ExchangeGroups, group)
	}
	for _, s := range t.Movement {
		at.Movement = append(at.Movement, model.Swap{From: s[0], To: s[1]})
	}
	return at, nil
}

func (r *resolver) abstract(index int) (*model.AbstractTransition, error) {
	at, ok := r.transitions[index]
	if !ok {
		return nil, invalid("unknown abstract transition %d", index)
	}
	return at, nil
}

func (r *resolver) kineticTransition(k KineticTransitionDoc) (model.KineticTransition, error) {
	at, err := r.abstract(k.Abstract)
	if err != nil {
		return model.KineticTransition{}, err
	}
	kt := model.KineticTransition{
		Index:                    k.Index,
		Name:                     k.Name,
		Abstract:                 at,
		AttemptFrequency:         k.AttemptFrequency,
		MappingsContainInversion: k.MappingsContainInversion,
	}
	for i, m := range k.Mappings {
		mapping := model.KineticMapping{PositionSequence: slices.Clone(m.Positions)}
		switch {
		case len(m.Fractional) == len(m.Positions):
			mapping.FractionalSequence = slices.Clone(m.Fractional)
		case len(m.Fractional) == 0:
			for _, v := range m.Positions {
				pos, err := r.unitCellPosition(v.P)
				if err != nil {
					return kt, err
				}
				offset := model.Vector3{A: float64(v.A), B: float64(v.B), C: float64(v.C)}
				mapping.FractionalSequence = append(mapping.FractionalSequence, pos.Vector.Add(offset))
			}
		default:
			return kt, invalid("kinetic transition %d mapping %d: %d fractional vectors for %d positions", k.Index, i, len(m.Fractional), len(m.Positions))
		}
		kt.Mappings = append(kt.Mappings, mapping)
	}
	return kt, nil
}

func (r *resolver) metropolisTransition(m MetropolisTransitionDoc) (model.MetropolisTransition, error) {
	at, err := r.abstract(m.Abstract)
	if err != nil {
		return model.MetropolisTransition{}, err
	}
	for _, idx := range []int{m.Position0, m.Position1} {
		if _, err := r.unitCellPosition(idx); err != nil {
			return model.MetropolisTransition{}, err
		}
	}
	return model.MetropolisTransition{
		Index:     m.Index,
		Name:      m.Name,
		Abstract:  at,
		Position0: m.Position0,
		Position1: m.Position1,
	}, nil
}

func (d *Document) symmetryService(snap *model.Snapshot) (*symmetry.StaticService, error) {
	svc := symmetry.NewStaticService()
	known := make(map[string]bool, len(d.Symmetry))
	for i, g := range d.Symmetry {
		group := symmetry.IdentityGroup(g.Origin, g.Sequence)
		for _, order := range g.Orders {
			if !isPermutation(order, len(g.Sequence)) {
				return nil, invalid("point group %d: order %v is not a permutation of %d slots", i, order, len(g.Sequence))
			}
			if symmetry.IsIdentityOrder(order) || slices.ContainsFunc(group.UniqueProjectionOrders, func(o []int) bool { return slices.Equal(o, order) }) {
				continue
			}
			group.UniqueProjectionOrders = append(group.UniqueProjectionOrders, slices.Clone(order))
		}
		svc.Add(group)
		known[symmetry.GeometryKey(g.Origin, g.Sequence)] = true
	}
	for _, gi := range snap.GroupInteractions {
		if !known[symmetry.GeometryKey(gi.CenterPosition.Vector, gi.Geometry)] {
			svc.Add(symmetry.IdentityGroup(gi.CenterPosition.Vector, gi.Geometry))
		}
	}
	return svc, nil
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
