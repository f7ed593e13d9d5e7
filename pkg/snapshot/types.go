package snapshot

import (
	"fmt"

	"github.com/mocassin-sim/mocassin-go/pkg/jobs"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// Document is the YAML form of a snapshot.
type Document struct {
	Name                  string                    `yaml:"name"`
	Particles             []model.Particle          `yaml:"particles"`
	Positions             []PositionDoc             `yaml:"positions"`
	GroupInteractions     []GroupInteractionDoc     `yaml:"groupInteractions"`
	PairInteractions      []PairInteractionDoc      `yaml:"pairInteractions"`
	Transitions           []AbstractTransitionDoc   `yaml:"transitions"`
	KineticTransitions    []KineticTransitionDoc    `yaml:"kineticTransitions"`
	MetropolisTransitions []MetropolisTransitionDoc `yaml:"metropolisTransitions"`
	Symmetry              []PointGroupDoc           `yaml:"symmetry"`
	Jobs                  JobsDoc                   `yaml:"jobs"`
}

// PositionDoc is a unit cell position; Occupation lists particle indices.
type PositionDoc struct {
	Index      int           `yaml:"index"`
	Vector     model.Vector3 `yaml:"vector"`
	Occupation []int         `yaml:"occupation"`
	Unstable   bool          `yaml:"unstable"`
}

// GroupInteractionDoc is a group interaction with its reduced energy entries.
type GroupInteractionDoc struct {
	Index    int              `yaml:"index"`
	Center   int              `yaml:"center"`
	Geometry []model.Vector3  `yaml:"geometry"`
	Energies []GroupEnergyDoc `yaml:"energies"`
}

// GroupEnergyDoc assigns an energy to a center particle and occupation.
type GroupEnergyDoc struct {
	Center     int     `yaml:"center"`
	Occupation []int   `yaml:"occupation"`
	Energy     float64 `yaml:"energy"`
}

// PairInteractionDoc is a pair interaction between two positions.
type PairInteractionDoc struct {
	Index     int             `yaml:"index"`
	Position0 int             `yaml:"position0"`
	Position1 int             `yaml:"position1"`
	Distance  model.Vector3   `yaml:"distance"`
	Symmetric bool            `yaml:"symmetric"`
	Energies  []PairEnergyDoc `yaml:"energies"`
}

// PairEnergyDoc assigns an energy to an ordered particle pair.
type PairEnergyDoc struct {
	Particles [2]int  `yaml:"particles"`
	Energy    float64 `yaml:"energy"`
}

// AbstractTransitionDoc is a transition template.
type AbstractTransitionDoc struct {
	Index          int                `yaml:"index"`
	Name           string             `yaml:"name"`
	Connectors     []string           `yaml:"connectors"`
	ExchangeGroups []ExchangeGroupDoc `yaml:"exchangeGroups"`
	// Movement lists [from, to] swaps.
	Movement   [][2]int `yaml:"movement"`
	Metropolis bool     `yaml:"metropolis"`
}

// ExchangeGroupDoc lists [donor, acceptor] particle index pairs.
type ExchangeGroupDoc struct {
	Unstable bool     `yaml:"unstable"`
	Pairs    [][2]int `yaml:"pairs"`
}

// KineticTransitionDoc is a kinetic transition with its mappings.
type KineticTransitionDoc struct {
	Index                    int          `yaml:"index"`
	Name                     string       `yaml:"name"`
	Abstract                 int          `yaml:"abstract"`
	AttemptFrequency         float64      `yaml:"attemptFrequency"`
	MappingsContainInversion bool         `yaml:"mappingsContainInversion"`
	Mappings                 []MappingDoc `yaml:"mappings"`
}

// MappingDoc is one kinetic mapping. Fractional vectors are derived from
// the positions when omitted.
type MappingDoc struct {
	Positions  []model.Vector4 `yaml:"positions"`
	Fractional []model.Vector3 `yaml:"fractional"`
}

// MetropolisTransitionDoc is a metropolis exchange between two positions.
type MetropolisTransitionDoc struct {
	Index     int    `yaml:"index"`
	Name      string `yaml:"name"`
	Abstract  int    `yaml:"abstract"`
	Position0 int    `yaml:"position0"`
	Position1 int    `yaml:"position1"`
}

// PointGroupDoc is the point symmetry of one origin and position sequence.
type PointGroupDoc struct {
	Origin   model.Vector3   `yaml:"origin"`
	Sequence []model.Vector3 `yaml:"sequence"`
	// Orders are the unique projection orders; the identity is added when
	// missing.
	Orders [][]int `yaml:"orders"`
}

// JobsDoc lists the simulation jobs of a document.
type JobsDoc struct {
	Kmc []*jobs.KmcConfiguration `yaml:"kmc"`
	Mmc []*jobs.MmcConfiguration `yaml:"mmc"`
}

// All returns every job, kinetic jobs first.
func (d JobsDoc) All() []jobs.Job {
	out := make([]jobs.Job, 0, len(d.Kmc)+len(d.Mmc))
	for _, j := range d.Kmc {
		out = append(out, j)
	}
	for _, j := range d.Mmc {
		out = append(out, j)
	}
	return out
}

func parseConnector(s string) (model.ConnectorType, error) {
	switch s {
	case "STATIC", "static":
		return model.ConnectorStatic, nil
	case "DYNAMIC", "dynamic":
		return model.ConnectorDynamic, nil
	default:
		return 0, fmt.Errorf("unknown connector %q", s)
	}
}
