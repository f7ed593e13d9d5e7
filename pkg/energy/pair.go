package energy

import (
	"fmt"
	"log/slog"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// PairEnergyModel is a pair interaction with its particle pair energy table.
type PairEnergyModel struct {
	ModelID     int
	Interaction model.PairInteraction

	// Table is indexed [particle0 index][particle1 index].
	Table *Table
}

// Energy returns the energy of particle0 at the first and particle1 at the
// second position. Pairs outside the table have zero energy.
func (m *PairEnergyModel) Energy(particle0, particle1 int) float64 {
	if particle0 < 0 || particle1 < 0 || particle0 >= m.Table.Rows() || particle1 >= m.Table.Cols() {
		return 0
	}
	return m.Table.At(particle0, particle1)
}

// PairEnergyModelBuilder builds pair energy models.
type PairEnergyModelBuilder struct {
	logger *slog.Logger
}

// NewPairEnergyModelBuilder creates a pair model builder. A nil logger uses
// slog.Default().
func NewPairEnergyModelBuilder(logger *slog.Logger) *PairEnergyModelBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &PairEnergyModelBuilder{logger: logger}
}

// BuildModels builds one model per pair interaction of the snapshot.
func (b *PairEnergyModelBuilder) BuildModels(snap *model.Snapshot) ([]*PairEnergyModel, error) {
	models := make([]*PairEnergyModel, 0, len(snap.PairInteractions))
	for _, interaction := range snap.PairInteractions {
		table, err := b.createEnergyTable(interaction)
		if err != nil {
			return nil, fmt.Errorf("pair energy model %d: %w", interaction.Index, err)
		}
		models = append(models, &PairEnergyModel{
			ModelID:     len(models),
			Interaction: interaction,
			Table:       table,
		})
		b.logger.Debug("pair energy model built", "interaction", interaction.Index, "size", table.Rows())
	}
	return models, nil
}

// createEnergyTable sizes the table by the largest particle index of the
// entries. Symmetric pairs write both orientations.
func (b *PairEnergyModelBuilder) createEnergyTable(interaction model.PairInteraction) (*Table, error) {
	size := 0
	for _, entry := range interaction.EnergyEntries {
		if entry.Particle0.Index < 0 || entry.Particle1.Index < 0 {
			return nil, model.Inconsistency("pair interaction", interaction.Index,
				"negative particle index in entry (%d,%d)", entry.Particle0.Index, entry.Particle1.Index)
		}
		size = max(size, entry.Particle0.Index+1, entry.Particle1.Index+1)
	}

	table := NewTable(size, size)
	for _, entry := range interaction.EnergyEntries {
		table.Set(entry.Particle0.Index, entry.Particle1.Index, entry.Energy)
		if interaction.Symmetric {
			table.Set(entry.Particle1.Index, entry.Particle0.Index, entry.Energy)
		}
	}
	return table, nil
}
