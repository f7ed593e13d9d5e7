// Package commands implements the mocassin-translate CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mocassin-sim/mocassin-go/pkg/config"
	"github.com/mocassin-sim/mocassin-go/pkg/log"
	"github.com/mocassin-sim/mocassin-go/pkg/marshal"
	"github.com/mocassin-sim/mocassin-go/pkg/snapshot"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
	"github.com/mocassin-sim/mocassin-go/pkg/translator"
)

// TranslateOptions configures a translation run.
type TranslateOptions struct {
	// SnapshotPath is the YAML reference data document.
	SnapshotPath string

	// OutputPath receives the bundle. Empty skips writing.
	OutputPath string

	Config config.Config

	// Logger for operational logging. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result summarizes a translation run.
type Result struct {
	Bundle  *translator.Bundle
	Context *translator.ProjectContext
	Events  int
}

// Translate loads a snapshot, builds its models and encodes them into a
// bundle. Build events go to the operational logger at debug level and,
// when Config.BuildLog is set, to a CBOR build log.
func Translate(ctx context.Context, opts TranslateOptions) (res *Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loaded, err := snapshot.Load(opts.SnapshotPath)
	if err != nil {
		return nil, err
	}

	var fileLogger *log.FileLogger
	if opts.Config.BuildLog != "" {
		fileLogger, err = log.NewFileLogger(opts.Config.BuildLog)
		if err != nil {
			return nil, err
		}
		defer func() {
			err = errors.Join(err, fileLogger.Err(), fileLogger.Close())
			if err != nil {
				res = nil
			} else {
				res.Events = fileLogger.Written()
			}
		}()
	}
	var events log.Logger = log.NewSlogAdapter(logger)
	if fileLogger != nil {
		events = log.NewMultiLogger(events, fileLogger)
	}

	sym, err := symmetry.NewCachedService(loaded.Symmetry, opts.Config.SymmetryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("symmetry cache: %w", err)
	}

	builder := translator.NewBuilder(translator.Config{
		Symmetry:        sym,
		ChargeTolerance: opts.Config.ChargeTolerance,
		Logger:          logger,
		Events:          events,
	})
	pc, err := builder.Build(ctx, loaded.Snapshot)
	if err != nil {
		return nil, err
	}

	svc := marshal.NewService(marshal.Config{
		PoolSize:       opts.Config.MarshalPoolSize,
		AcquireTimeout: opts.Config.AcquireTimeout,
		Logger:         logger,
	})
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close marshal service: %w", cerr)
			res = nil
		}
	}()

	bundle, err := translator.NewEncoder(translator.EncoderConfig{
		Marshal: svc,
		Logger:  logger,
		Events:  events,
	}).Encode(ctx, pc, loaded.Jobs)
	if err != nil {
		return nil, err
	}

	if opts.OutputPath != "" {
		if err := translator.WriteBundle(opts.OutputPath, bundle); err != nil {
			return nil, err
		}
		logger.Info("bundle written", "path", opts.OutputPath, "blobs", len(bundle.Blobs), "bytes", bundle.Size())
	}
	return &Result{Bundle: bundle, Context: pc}, nil
}
