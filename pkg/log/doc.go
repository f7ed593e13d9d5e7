// Package log provides structured build-event logging for the translator.
//
// This package defines the Logger interface and Event types for capturing
// what a translation pass produced: built models, encoded blobs, stage
// transitions and errors. It is separate from operational logging (slog);
// the event trace is machine readable and can be inspected after the run.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	events := log.NewSlogAdapter(slog.Default())
//
//	// For later inspection: write to a binary file
//	events, _ := log.NewFileLogger("build.mlog")
//
//	// Both
//	events := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are tagged with the build ID and the layer that produced them:
//   - Model: a built energy or transition model (ModelEvent)
//   - Blob: an encoded interop blob (BlobEvent)
//   - State: a stage start, completion or failure (StateEvent)
//   - Error: a failure at any layer (ErrorEventData)
//
// # File Format
//
// Log files use CBOR encoding with .mlog extension. The mocassin-log CLI
// provides viewing, filtering and statistics.
package log
