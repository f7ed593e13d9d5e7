package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), BuildID: "build-1", Layer: LayerBuild, Category: CategoryState},
		{Timestamp: time.Now(), BuildID: "build-2", Layer: LayerEnergy, Category: CategoryModel},
		{Timestamp: time.Now(), BuildID: "build-3", Layer: LayerEncode, Category: CategoryBlob},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].BuildID != "build-1" || read[2].BuildID != "build-3" {
		t.Errorf("unexpected order: %q ... %q", read[0].BuildID, read[2].BuildID)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.mlog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, BuildID: "a", Snapshot: "ysz", Layer: LayerEnergy, Category: CategoryModel},
		{Timestamp: base.Add(time.Second), BuildID: "a", Snapshot: "ysz", Layer: LayerTransition, Category: CategoryModel},
		{Timestamp: base.Add(2 * time.Second), BuildID: "b", Snapshot: "ceria", Layer: LayerEncode, Category: CategoryBlob},
		{Timestamp: base.Add(3 * time.Second), BuildID: "b", Snapshot: "ceria", Layer: LayerBuild, Category: CategoryError},
	}
	path := createTestLogFile(t, events)

	layer := LayerTransition
	category := CategoryModel
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"build id", Filter{BuildID: "b"}, 2},
		{"snapshot", Filter{Snapshot: "ysz"}, 2},
		{"layer", Filter{Layer: &layer}, 1},
		{"category", Filter{Category: &category}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{BuildID: "a", Category: &category, TimeStart: &start}, 1},
		{"no match", Filter{BuildID: "c"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			defer reader.Close()

			got, err := reader.ReadAll()
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}
