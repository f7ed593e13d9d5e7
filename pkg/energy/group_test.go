package energy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mocassin-sim/mocassin-go/pkg/codes"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry/mocks"
)

var (
	void = model.Void
	oxy  = model.Particle{Index: 1, Symbol: "O", Charge: -2}
	vac  = model.Particle{Index: 2, Symbol: "Vo", IsVacancy: true}
	zr   = model.Particle{Index: 3, Symbol: "Zr", Charge: 4}
	y    = model.Particle{Index: 4, Symbol: "Y", Charge: 3}
)

func geometry(n int) []model.Vector3 {
	out := make([]model.Vector3, n)
	for i := range out {
		out[i] = model.Vector3{A: float64(i + 1)}
	}
	return out
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func groupSnapshot(center model.ParticleSet, n int, entries ...model.GroupEnergyEntry) *model.Snapshot {
	return &model.Snapshot{
		GroupInteractions: []model.GroupInteraction{{
			Index:          7,
			CenterPosition: model.UnitCellPosition{Index: 0, Occupation: center},
			Geometry:       geometry(n),
		}},
		PositionGroupInfos: []model.PositionGroupInfo{{GroupIndex: 7, EnergyEntries: entries}},
	}
}

func staticGroup(snap *model.Snapshot, orders ...[]int) *symmetry.StaticService {
	interaction := snap.GroupInteractions[0]
	g := symmetry.IdentityGroup(interaction.CenterPosition.Vector, interaction.Geometry)
	g.UniqueProjectionOrders = append(g.UniqueProjectionOrders, orders...)
	return symmetry.NewStaticService(g)
}

func TestGroupEnergyTwoFoldExample(t *testing.T) {
	snap := groupSnapshot(model.ParticleSet{zr}, 8, model.GroupEnergyEntry{
		CenterParticle: zr,
		Occupation:     model.OccupationState{oxy, vac, void, void, void, void, void, void},
		Energy:         -0.35,
	})
	swap := []int{1, 0, 2, 3, 4, 5, 6, 7}

	models, err := NewGroupEnergyModelBuilder(staticGroup(snap, swap), nil).BuildModels(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, models, 1)

	m := models[0]
	require.Len(t, m.OccupationStates, 2)
	assert.Equal(t, []codes.ByteCode64{0x0102, 0x0201}, m.LookupCodes)
	assert.Equal(t, []int{2, 1, 0, 0, 0, 0, 0, 0}, m.OccupationStates[0].Indices())
	assert.Equal(t, []int{1, 2, 0, 0, 0, 0, 0, 0}, m.OccupationStates[1].Indices())

	require.Equal(t, 1, m.Table.Rows())
	require.Equal(t, 2, m.Table.Cols())
	assert.Equal(t, -0.35, m.Table.At(0, 0))
	assert.Equal(t, -0.35, m.Table.At(0, 1))

	energy, ok := m.Energy(zr, model.OccupationState{vac, oxy, void, void, void, void, void, void})
	require.True(t, ok)
	assert.Equal(t, -0.35, energy)

	_, ok = m.Energy(y, m.OccupationStates[0])
	assert.False(t, ok, "unknown center particle")
}

func TestGroupEnergySymmetryCompleteness(t *testing.T) {
	snap := groupSnapshot(model.ParticleSet{zr}, 3,
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, oxy, vac}, Energy: 1.5},
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, oxy, oxy}, Energy: -2},
	)
	svc := staticGroup(snap, []int{1, 2, 0}, []int{2, 0, 1})

	models, err := NewGroupEnergyModelBuilder(svc, nil).BuildModels(context.Background(), snap)
	require.NoError(t, err)
	m := models[0]

	// Orbit sizes are bounded by the group order: three for the mixed
	// occupation, one for the uniform occupation.
	require.Len(t, m.OccupationStates, 4)
	require.Len(t, m.EnergyEntries, 4)

	counts := map[float64]int{}
	for _, entry := range m.EnergyEntries {
		counts[entry.Energy]++
	}
	assert.Equal(t, 3, counts[1.5])
	assert.Equal(t, 1, counts[-2])

	for col, code := range m.LookupCodes {
		want := 1.5
		if code == 0x010101 {
			want = -2
		}
		assert.Equal(t, want, m.Table.At(0, col), "column %d", col)
	}
	assert.IsIncreasing(t, m.LookupCodes)
}

func TestGroupEnergyMultipleRows(t *testing.T) {
	snap := groupSnapshot(model.ParticleSet{y, zr}, 2,
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, vac}, Energy: -0.35},
		model.GroupEnergyEntry{CenterParticle: y, Occupation: model.OccupationState{oxy, vac}, Energy: 0.1},
	)

	models, err := NewGroupEnergyModelBuilder(staticGroup(snap, []int{1, 0}), nil).BuildModels(context.Background(), snap)
	require.NoError(t, err)
	m := models[0]

	assert.Equal(t, map[int]int{3: 0, 4: 1}, m.ParticleRows)
	require.Equal(t, 2, m.Table.Rows())
	require.Equal(t, 2, m.Table.Cols())
	assert.Equal(t, []float64{-0.35, -0.35, 0.1, 0.1}, m.Table.Values())
}

func TestGroupEnergyErrors(t *testing.T) {
	t.Run("missing group info", func(t *testing.T) {
		snap := groupSnapshot(model.ParticleSet{zr}, 2)
		snap.PositionGroupInfos = nil

		_, err := NewGroupEnergyModelBuilder(staticGroup(snap), nil).BuildModels(context.Background(), snap)
		require.ErrorIs(t, err, model.ErrReferenceData)
		assert.Contains(t, err.Error(), "group energy model 7")
	})

	t.Run("incomplete table", func(t *testing.T) {
		snap := groupSnapshot(model.ParticleSet{y, zr}, 2,
			model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, vac}, Energy: -0.35},
		)
		_, err := NewGroupEnergyModelBuilder(staticGroup(snap), nil).BuildModels(context.Background(), snap)
		require.ErrorIs(t, err, model.ErrReferenceData)
	})

	t.Run("occupation too long", func(t *testing.T) {
		occ := make(model.OccupationState, 9)
		for i := range occ {
			occ[i] = oxy
		}
		snap := groupSnapshot(model.ParticleSet{zr}, 8,
			model.GroupEnergyEntry{CenterParticle: zr, Occupation: occ, Energy: 1},
		)
		_, err := NewGroupEnergyModelBuilder(staticGroup(snap), nil).BuildModels(context.Background(), snap)
		require.ErrorIs(t, err, model.ErrReferenceData)
	})

	t.Run("unselectable center particle", func(t *testing.T) {
		snap := groupSnapshot(model.ParticleSet{zr}, 2,
			model.GroupEnergyEntry{CenterParticle: y, Occupation: model.OccupationState{oxy, vac}, Energy: 1},
		)
		_, err := NewGroupEnergyModelBuilder(staticGroup(snap), nil).BuildModels(context.Background(), snap)
		require.ErrorIs(t, err, model.ErrReferenceData)
	})

	t.Run("symmetry service failure", func(t *testing.T) {
		snap := groupSnapshot(model.ParticleSet{zr}, 2,
			model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, vac}, Energy: 1},
		)
		svc := mocks.NewMockService(t)
		svc.EXPECT().
			PointOperationGroup(mock.Anything, mock.Anything, mock.Anything).
			Return(nil, symmetry.ErrUnknownGeometry)

		_, err := NewGroupEnergyModelBuilder(svc, nil).BuildModels(context.Background(), snap)
		require.ErrorIs(t, err, symmetry.ErrUnknownGeometry)
	})
}

func TestGroupEnergyIdentityGroupKeepsCanonicalEntries(t *testing.T) {
	snap := groupSnapshot(model.ParticleSet{zr}, 2,
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{vac, oxy}, Energy: 2},
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, vac}, Energy: 1},
	)
	svc := mocks.NewMockService(t)
	svc.EXPECT().
		PointOperationGroup(mock.Anything, model.Vector3{}, snap.GroupInteractions[0].Geometry).
		Return(symmetry.IdentityGroup(model.Vector3{}, snap.GroupInteractions[0].Geometry), nil).
		Once()

	models, err := NewGroupEnergyModelBuilder(svc, nil).BuildModels(context.Background(), snap)
	require.NoError(t, err)

	m := models[0]
	assert.Equal(t, []codes.ByteCode64{0x0102, 0x0201}, m.LookupCodes)
	assert.Equal(t, []float64{2, 1}, m.Table.Values())
	assert.Equal(t, identity(2), m.PointGroup.UniqueProjectionOrders[0])
}

func TestGroupEnergyMissingInfoIsNotSkipped(t *testing.T) {
	snap := groupSnapshot(model.ParticleSet{zr}, 2,
		model.GroupEnergyEntry{CenterParticle: zr, Occupation: model.OccupationState{oxy, vac}, Energy: 1},
	)
	snap.GroupInteractions = append(snap.GroupInteractions, model.GroupInteraction{Index: 8, Geometry: geometry(2)})

	models, err := NewGroupEnergyModelBuilder(staticGroup(snap), nil).BuildModels(context.Background(), snap)
	assert.Nil(t, models)
	assert.True(t, errors.Is(err, model.ErrReferenceData))
}
