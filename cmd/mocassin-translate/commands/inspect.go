package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
	"github.com/mocassin-sim/mocassin-go/pkg/translator"
)

// BlobSummary describes one blob of a bundle.
type BlobSummary struct {
	Name   string
	Kind   interop.Kind
	Count  int
	Bytes  int
	Layout string
}

// isRecordBlob reports whether the blob holds a single record without an
// array header.
func isRecordBlob(name string) bool {
	return strings.HasPrefix(name, translator.BlobJobInfo+"/") ||
		strings.HasPrefix(name, translator.BlobJobHeader+"/")
}

// Summarize checks the layout of every blob against its record kind.
func Summarize(b *translator.Bundle) ([]BlobSummary, error) {
	out := make([]BlobSummary, 0, len(b.Blobs))
	for _, name := range b.Names() {
		blob := b.Blobs[name]
		size, err := interop.SizeOf(blob.Kind)
		if err != nil {
			return nil, fmt.Errorf("blob %s: %w", name, err)
		}

		s := BlobSummary{Name: name, Kind: blob.Kind, Count: blob.Count, Bytes: len(blob.Data)}
		if isRecordBlob(name) {
			if len(blob.Data) != size {
				return nil, fmt.Errorf("blob %s: record of %d bytes, want %d", name, len(blob.Data), size)
			}
			s.Layout = "record"
		} else {
			h, err := interop.ParseArrayHeader(blob.Data, size)
			if err != nil {
				return nil, fmt.Errorf("blob %s: %w", name, err)
			}
			if h.Length != blob.Count {
				return nil, fmt.Errorf("blob %s: header length %d, bundle count %d", name, h.Length, blob.Count)
			}
			s.Layout = fmt.Sprintf("rank %d", h.Rank)
			if len(h.Skips) > 0 {
				s.Layout += fmt.Sprintf(" skips %v", h.Skips)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// RunInspect reads a bundle and prints its blobs.
func RunInspect(path string, w io.Writer) error {
	b, err := translator.ReadBundle(path)
	if err != nil {
		return err
	}
	blobs, err := Summarize(b)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Bundle:   v%d\n", b.Version)
	fmt.Fprintf(w, "Build:    %s\n", b.BuildID)
	if b.Snapshot != "" {
		fmt.Fprintf(w, "Snapshot: %s\n", b.Snapshot)
	}
	fmt.Fprintf(w, "Created:  %s\n", b.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Blobs:    %d (%d bytes)\n", len(blobs), b.Size())
	fmt.Fprintln(w)

	for _, s := range blobs {
		fmt.Fprintf(w, "  %-32s %-22s %6d x  %8d bytes  %s\n", s.Name, s.Kind.String(), s.Count, s.Bytes, s.Layout)
	}
	return nil
}
