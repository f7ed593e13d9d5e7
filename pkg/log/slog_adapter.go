package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes build events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level; error events use Error level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("build_id", event.BuildID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Snapshot != "" {
		attrs = append(attrs, slog.String("snapshot", event.Snapshot))
	}

	level := slog.LevelDebug
	switch {
	case event.Model != nil:
		attrs = append(attrs,
			slog.String("model_kind", event.Model.Kind.String()),
			slog.Int("model_id", event.Model.ModelID),
			slog.Int("source", event.Model.Source),
		)
		if event.Model.Rules > 0 {
			attrs = append(attrs, slog.Int("rules", event.Model.Rules))
		}
		if event.Model.Rows > 0 {
			attrs = append(attrs, slog.Int("rows", event.Model.Rows), slog.Int("cols", event.Model.Cols))
		}
		if event.Model.GeometricInverse {
			attrs = append(attrs, slog.Bool("geometric_inverse", true))
		}
	case event.Blob != nil:
		attrs = append(attrs,
			slog.String("blob", event.Blob.Name),
			slog.String("record", event.Blob.Record),
			slog.Int("count", event.Blob.Count),
			slog.Int("size", event.Blob.Size),
		)
	case event.State != nil:
		attrs = append(attrs, slog.String("stage", event.State.Stage.String()))
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
		if event.State.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.State.Duration))
		}
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "build", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
