package energy

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
)

// GroupEnergyModel is a group interaction with its fully expanded energy data.
type GroupEnergyModel struct {
	ModelID     int
	Interaction model.GroupInteraction
	PointGroup  *symmetry.PointOperationGroup

	// EnergyEntries is the expanded entry list ordered by table row and
	// lookup code, i.e. in table order.
	EnergyEntries []model.GroupEnergyEntry

	// OccupationStates holds the distinct occupations in lookup code order.
	OccupationStates []model.OccupationState

	// LookupCodes holds the sorted unique occupation codes; code i labels
	// table column i.
	LookupCodes []codes.ByteCode64

	// ParticleRows maps a center particle index to its table row.
	ParticleRows map[int]int

	// Table is the [center particle row][lookup code column] energy table.
	Table *Table
}

// Energy returns the energy of center particle with the given occupation.
func (m *GroupEnergyModel) Energy(center model.Particle, occupation model.OccupationState) (float64, bool) {
	row, ok := m.ParticleRows[center.Index]
	if !ok {
		return 0, false
	}
	code, err := codes.Pack(occupation.Indices())
	if err != nil {
		return 0, false
	}
	col, found := slices.BinarySearch(m.LookupCodes, code)
	if !found {
		return 0, false
	}
	return m.Table.At(row, col), true
}

// GroupEnergyModelBuilder builds group energy models.
type GroupEnergyModelBuilder struct {
	symmetry symmetry.Service
	logger   *slog.Logger
	encoder  *codes.Encoder
}

// NewGroupEnergyModelBuilder creates a builder that resolves point groups
// through svc. A nil logger uses slog.Default().
func NewGroupEnergyModelBuilder(svc symmetry.Service, logger *slog.Logger) *GroupEnergyModelBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupEnergyModelBuilder{symmetry: svc, logger: logger, encoder: codes.NewEncoder()}
}

// BuildModels builds one model per group interaction of the snapshot. The
// first failing interaction aborts the build.
func (b *GroupEnergyModelBuilder) BuildModels(ctx context.Context, snap *model.Snapshot) ([]*GroupEnergyModel, error) {
	models := make([]*GroupEnergyModel, 0, len(snap.GroupInteractions))
	for _, interaction := range snap.GroupInteractions {
		m, err := b.buildModel(ctx, snap, interaction, len(models))
		if err != nil {
			return nil, fmt.Errorf("group energy model %d: %w", interaction.Index, err)
		}
		b.logger.Debug("group energy model built",
			"interaction", interaction.Index,
			"states", len(m.OccupationStates),
			"rows", m.Table.Rows(),
			"cols", m.Table.Cols())
		models = append(models, m)
	}
	return models, nil
}

func (b *GroupEnergyModelBuilder) buildModel(ctx context.Context, snap *model.Snapshot, interaction model.GroupInteraction, id int) (*GroupEnergyModel, error) {
	info, ok := snap.PositionGroupInfo(interaction.Index)
	if !ok {
		return nil, model.Inconsistency("group interaction", interaction.Index, "no position group info")
	}
	if len(interaction.Geometry) > codes.MaxLength {
		return nil, model.Inconsistency("group interaction", interaction.Index,
			"%d surrounding positions exceed %d slots", len(interaction.Geometry), codes.MaxLength)
	}

	group, err := b.symmetry.PointOperationGroup(ctx, interaction.CenterPosition.Vector, interaction.Geometry)
	if err != nil {
		return nil, fmt.Errorf("resolve point operation group: %w", err)
	}

	m := &GroupEnergyModel{
		ModelID:      id,
		Interaction:  interaction,
		PointGroup:   group,
		ParticleRows: particleRows(interaction.CenterPosition.Occupation),
	}

	if err := b.restoreSymmetryReducedInfo(m, info); err != nil {
		return nil, err
	}
	if err := b.createEnergyTable(m); err != nil {
		return nil, err
	}
	return m, nil
}

func particleRows(occupation model.ParticleSet) map[int]int {
	rows := make(map[int]int, len(occupation))
	for i, p := range model.NewParticleSet(occupation...) {
		rows[p.Index] = i
	}
	return rows
}

// expandedEntry is an energy entry with its table coordinates.
type expandedEntry struct {
	entry model.GroupEnergyEntry
	row   int
	code  codes.ByteCode64
}

// restoreSymmetryReducedInfo applies every non-identity projection order to
// every canonical entry. Entries with equal center particle and occupation
// collapse into one, the first insertion wins.
func (b *GroupEnergyModelBuilder) restoreSymmetryReducedInfo(m *GroupEnergyModel, info model.PositionGroupInfo) error {
	index := m.Interaction.Index
	orders := m.PointGroup.NonIdentityOrders()

	seen := make(map[string]struct{})
	states := make(map[codes.ByteCode64]model.OccupationState)
	var expanded []expandedEntry

	add := func(entry model.GroupEnergyEntry) error {
		if len(entry.Occupation) > codes.MaxLength {
			return model.Inconsistency("group interaction", index,
				"occupation with %d slots exceeds %d", len(entry.Occupation), codes.MaxLength)
		}
		row, ok := m.ParticleRows[entry.CenterParticle.Index]
		if !ok {
			return model.Inconsistency("group interaction", index,
				"center particle %d is not selectable", entry.CenterParticle.Index)
		}
		key := occupationKey(entry)
		if _, dup := seen[key]; dup {
			return nil
		}
		code, err := b.encoder.Pack(entry.Occupation.Indices())
		if err != nil {
			return fmt.Errorf("lookup code: %w", err)
		}
		seen[key] = struct{}{}
		if _, ok := states[code]; !ok {
			states[code] = entry.Occupation
		}
		expanded = append(expanded, expandedEntry{entry: entry, row: row, code: code})
		return nil
	}

	for _, canonical := range info.EnergyEntries {
		if err := add(canonical); err != nil {
			return err
		}
		for _, order := range orders {
			reordered, ok := canonical.Reordered(order)
			if !ok {
				return model.Inconsistency("group interaction", index,
					"projection order %v does not fit occupation of %d slots", order, len(canonical.Occupation))
			}
			if err := add(reordered); err != nil {
				return err
			}
		}
	}

	slices.SortFunc(expanded, func(a, b expandedEntry) int {
		if c := cmp.Compare(a.row, b.row); c != 0 {
			return c
		}
		return cmp.Compare(a.code, b.code)
	})

	m.EnergyEntries = make([]model.GroupEnergyEntry, len(expanded))
	for i, e := range expanded {
		m.EnergyEntries[i] = e.entry
	}

	m.LookupCodes = make([]codes.ByteCode64, 0, len(states))
	for code := range states {
		m.LookupCodes = append(m.LookupCodes, code)
	}
	slices.Sort(m.LookupCodes)

	m.OccupationStates = make([]model.OccupationState, len(m.LookupCodes))
	for i, code := range m.LookupCodes {
		m.OccupationStates[i] = states[code]
	}
	return nil
}

// createEnergyTable fills the table by walking rows and columns in lockstep
// with the ordered entry list. The list must cover every cell exactly once.
func (b *GroupEnergyModelBuilder) createEnergyTable(m *GroupEnergyModel) error {
	rows, cols := len(m.ParticleRows), len(m.LookupCodes)
	if len(m.EnergyEntries) != rows*cols {
		return model.Inconsistency("group interaction", m.Interaction.Index,
			"%d energy entries do not cover a %dx%d table", len(m.EnergyEntries), rows, cols)
	}

	table := NewTable(rows, cols)
	index := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			entry := m.EnergyEntries[index]
			index++
			if m.ParticleRows[entry.CenterParticle.Index] != row {
				return model.Inconsistency("group interaction", m.Interaction.Index,
					"no energy for center particle row %d, column %d", row, col)
			}
			table.Set(row, col, entry.Energy)
		}
	}
	m.Table = table
	return nil
}

func occupationKey(entry model.GroupEnergyEntry) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(entry.CenterParticle.Index))
	for _, p := range entry.Occupation {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.Index))
	}
	return b.String()
}
