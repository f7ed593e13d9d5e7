package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mocassin-sim/mocassin-go/pkg/energy"
	"github.com/mocassin-sim/mocassin-go/pkg/log"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
	"github.com/mocassin-sim/mocassin-go/pkg/transition"
)

// ProjectContext is the fully built model set of one snapshot.
type ProjectContext struct {
	BuildID  string
	Snapshot *model.Snapshot

	Energy     *energy.Context
	Kinetic    []*transition.KineticTransitionModel
	Metropolis []*transition.MetropolisTransitionModel

	Duration time.Duration
}

// Config configures a Builder.
type Config struct {
	// Symmetry resolves point groups of group interactions. Nil answers
	// every lookup with symmetry.ErrUnknownGeometry.
	Symmetry symmetry.Service

	// ChargeTolerance for transition rule checks. Zero uses the default.
	ChargeTolerance float64

	// Logger for operational logging. Nil uses slog.Default().
	Logger *slog.Logger

	// Events receives build events. Nil disables them.
	Events log.Logger
}

func (c Config) withDefaults() Config {
	if c.Symmetry == nil {
		c.Symmetry = symmetry.NewStaticService()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Events == nil {
		c.Events = log.NoopLogger{}
	}
	return c
}

// Builder builds project contexts. It holds no per-build state and may be
// used by several goroutines.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg.withDefaults()}
}

// Build assigns a build ID and runs the energy, kinetic and metropolis
// builders concurrently. The first failure cancels the others and aborts
// the build.
func (b *Builder) Build(ctx context.Context, snap *model.Snapshot) (*ProjectContext, error) {
	start := time.Now()
	pc := &ProjectContext{BuildID: uuid.NewString(), Snapshot: snap}
	em := &emitter{events: b.cfg.Events, buildID: pc.BuildID, snapshot: snap.Name}
	logger := b.cfg.Logger.With("build_id", pc.BuildID)

	em.state(log.LayerBuild, log.StageStarted, "", 0)
	logger.Info("build started", "snapshot", snap.Name)

	transitionCfg := transition.BuilderConfig{ChargeTolerance: b.cfg.ChargeTolerance, Logger: logger}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ec, err := energy.NewContextBuilder(b.cfg.Symmetry, logger).Build(gctx, snap)
		if err != nil {
			return em.fail(log.LayerEnergy, "energy context", err)
		}
		pc.Energy = ec
		return nil
	})
	g.Go(func() error {
		models, err := transition.NewKineticBuilder(transitionCfg).BuildModels(gctx, snap)
		if err != nil {
			return em.fail(log.LayerTransition, "kinetic models", err)
		}
		pc.Kinetic = models
		return nil
	})
	g.Go(func() error {
		models, err := transition.NewMetropolisBuilder(transitionCfg).BuildModels(gctx, snap)
		if err != nil {
			return em.fail(log.LayerTransition, "metropolis models", err)
		}
		pc.Metropolis = models
		return nil
	})

	if err := g.Wait(); err != nil {
		elapsed := time.Since(start)
		em.state(log.LayerBuild, log.StageFailed, err.Error(), elapsed)
		logger.Error("build failed", "error", err, "duration", elapsed)
		return nil, fmt.Errorf("build %s: %w", pc.BuildID, err)
	}

	pc.Duration = time.Since(start)
	em.models(pc)
	em.state(log.LayerBuild, log.StageCompleted, "", pc.Duration)
	logger.Info("build completed",
		"pair_models", len(pc.Energy.PairModels),
		"group_models", len(pc.Energy.GroupModels),
		"kinetic_models", len(pc.Kinetic),
		"metropolis_models", len(pc.Metropolis),
		"duration", pc.Duration)
	return pc, nil
}

// emitter stamps build events with the build ID and snapshot name.
type emitter struct {
	events   log.Logger
	buildID  string
	snapshot string
}

func (e *emitter) log(layer log.Layer, category log.Category, fill func(*log.Event)) {
	event := log.Event{
		Timestamp: time.Now(),
		BuildID:   e.buildID,
		Layer:     layer,
		Category:  category,
		Snapshot:  e.snapshot,
	}
	fill(&event)
	e.events.Log(event)
}

func (e *emitter) state(layer log.Layer, stage log.Stage, reason string, d time.Duration) {
	e.log(layer, log.CategoryState, func(ev *log.Event) {
		ev.State = &log.StateEvent{Stage: stage, Reason: reason}
		if stage != log.StageStarted {
			ev.State.Duration = &d
		}
	})
}

// fail records err unless it is the cancellation caused by another failure.
func (e *emitter) fail(layer log.Layer, op string, err error) error {
	if !errors.Is(err, context.Canceled) {
		e.log(layer, log.CategoryError, func(ev *log.Event) {
			ev.Error = &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: op}
		})
	}
	return err
}

func (e *emitter) model(layer log.Layer, m log.ModelEvent) {
	e.log(layer, log.CategoryModel, func(ev *log.Event) { ev.Model = &m })
}

func (e *emitter) models(pc *ProjectContext) {
	for _, m := range pc.Energy.PairModels {
		e.model(log.LayerEnergy, log.ModelEvent{
			Kind: log.ModelPairEnergy, ModelID: m.ModelID, Source: m.Interaction.Index,
			Rows: m.Table.Rows(), Cols: m.Table.Cols(),
		})
	}
	for _, m := range pc.Energy.GroupModels {
		e.model(log.LayerEnergy, log.ModelEvent{
			Kind: log.ModelGroupEnergy, ModelID: m.ModelID, Source: m.Interaction.Index,
			Rows: m.Table.Rows(), Cols: m.Table.Cols(),
		})
	}
	for _, m := range pc.Kinetic {
		e.model(log.LayerTransition, log.ModelEvent{
			Kind: log.ModelKinetic, ModelID: m.ModelID, Source: m.Transition.Index,
			Rules: len(m.RuleModels), GeometricInverse: m.IsGeometricInverse,
		})
	}
	for _, m := range pc.Metropolis {
		e.model(log.LayerTransition, log.ModelEvent{
			Kind: log.ModelMetropolis, ModelID: m.ModelID, Source: m.Transition.Index,
			Rules: len(m.RuleModels), GeometricInverse: m.IsGeometricInverse,
		})
	}
}
