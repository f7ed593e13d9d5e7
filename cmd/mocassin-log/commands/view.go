package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

// eventLabel returns the type label of an event.
func eventLabel(event log.Event) string {
	switch {
	case event.Model != nil:
		return event.Model.Kind.String()
	case event.Blob != nil:
		return "Blob"
	case event.State != nil:
		return event.State.Stage.String()
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [build:%s] %-10s %s\n", ts, shortenID(event.BuildID), event.Layer.String(), eventLabel(event))

	switch {
	case event.Model != nil:
		m := event.Model
		fmt.Fprintf(w, "  Model: %d  Source: %d\n", m.ModelID, m.Source)
		if m.Rules > 0 {
			fmt.Fprintf(w, "  Rules: %d\n", m.Rules)
		}
		if m.Rows > 0 || m.Cols > 0 {
			fmt.Fprintf(w, "  Table: %dx%d\n", m.Rows, m.Cols)
		}
		if m.GeometricInverse {
			fmt.Fprintln(w, "  Geometric inverse")
		}
	case event.Blob != nil:
		b := event.Blob
		fmt.Fprintf(w, "  Blob: %s\n", b.Name)
		fmt.Fprintf(w, "  Records: %d x %s (%d bytes)\n", b.Count, b.Record, b.Size)
	case event.State != nil:
		if event.Snapshot != "" {
			fmt.Fprintf(w, "  Snapshot: %s\n", event.Snapshot)
		}
		if event.State.Duration != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*event.State.Duration))
		}
		if event.State.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", event.State.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Layer: %s\n", event.Error.Layer.String())
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

// RunView prints the events matching filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
