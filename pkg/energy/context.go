package energy

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
)

// Context is the energy part of a project context.
type Context struct {
	PairModels  []*PairEnergyModel
	GroupModels []*GroupEnergyModel
}

// ContextBuilder builds pair and group models of a snapshot.
type ContextBuilder struct {
	symmetry symmetry.Service
	logger   *slog.Logger
}

// NewContextBuilder creates a context builder. A nil logger uses slog.Default().
func NewContextBuilder(svc symmetry.Service, logger *slog.Logger) *ContextBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContextBuilder{symmetry: svc, logger: logger}
}

// Build runs the pair and group builders concurrently. Each run gets fresh
// builders so no encoder is shared between goroutines.
func (b *ContextBuilder) Build(ctx context.Context, snap *model.Snapshot) (*Context, error) {
	out := &Context{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		models, err := NewPairEnergyModelBuilder(b.logger).BuildModels(snap)
		if err != nil {
			return err
		}
		out.PairModels = models
		return nil
	})
	g.Go(func() error {
		models, err := NewGroupEnergyModelBuilder(b.symmetry, b.logger).BuildModels(gctx, snap)
		if err != nil {
			return err
		}
		out.GroupModels = models
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
