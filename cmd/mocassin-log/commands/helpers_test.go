package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close test log: %v", err)
	}
	return path
}

// sampleBuild returns the events of one successful build.
func sampleBuild(buildID string, start time.Time) []log.Event {
	d := 1500 * time.Microsecond
	return []log.Event{
		{Timestamp: start, BuildID: buildID, Snapshot: "zirconia", Layer: log.LayerBuild, Category: log.CategoryState,
			State: &log.StateEvent{Stage: log.StageStarted}},
		{Timestamp: start.Add(time.Millisecond), BuildID: buildID, Snapshot: "zirconia", Layer: log.LayerEnergy, Category: log.CategoryModel,
			Model: &log.ModelEvent{Kind: log.ModelPairEnergy, ModelID: 0, Source: 0, Rows: 3, Cols: 3}},
		{Timestamp: start.Add(2 * time.Millisecond), BuildID: buildID, Snapshot: "zirconia", Layer: log.LayerTransition, Category: log.CategoryModel,
			Model: &log.ModelEvent{Kind: log.ModelKinetic, ModelID: 0, Source: 0, Rules: 2}},
		{Timestamp: start.Add(3 * time.Millisecond), BuildID: buildID, Snapshot: "zirconia", Layer: log.LayerEncode, Category: log.CategoryBlob,
			Blob: &log.BlobEvent{Name: "pair-table/0", Record: "EnergyTable", Count: 1, Size: 96}},
		{Timestamp: start.Add(4 * time.Millisecond), BuildID: buildID, Snapshot: "zirconia", Layer: log.LayerBuild, Category: log.CategoryState,
			State: &log.StateEvent{Stage: log.StageCompleted, Duration: &d}},
	}
}
