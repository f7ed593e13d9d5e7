package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	now := time.Now()
	events := sampleBuild("build-1", now)
	events = append(events,
		log.Event{Timestamp: now.Add(time.Second), BuildID: "build-2", Layer: log.LayerBuild, Category: log.CategoryState,
			State: &log.StateEvent{Stage: log.StageStarted}},
		log.Event{Timestamp: now.Add(2 * time.Second), BuildID: "build-2", Layer: log.LayerEnergy, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerEnergy, Message: "boom"}},
	)
	path := createTestLogFile(t, events)

	stats, err := CollectStats(path)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalEvents)
	assert.Equal(t, 3, stats.EventsByLayer[log.LayerBuild])
	assert.Equal(t, 2, stats.EventsByCategory[log.CategoryModel])
	assert.Equal(t, 1, stats.ModelsByKind[log.ModelKinetic])
	assert.Equal(t, 1, stats.Errors)
	require.Len(t, stats.Builds, 2)

	b1 := stats.Builds["build-1"]
	assert.Equal(t, "COMPLETED", b1.Outcome)
	assert.Equal(t, 1, b1.Blobs)
	assert.Equal(t, 96, b1.BlobBytes)
	assert.Equal(t, 1500*time.Microsecond, b1.Duration)
	assert.Empty(t, stats.Builds["build-2"].Outcome)
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sampleBuild("abcdefgh-1234", time.Now()))

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	output := buf.String()

	assert.Contains(t, output, "Total Events: 5")
	assert.Contains(t, output, "Builds: 1")
	assert.Contains(t, output, "[abcdefgh] COMPLETED")
	assert.Contains(t, output, "Snapshot: zirconia")
	assert.Contains(t, output, "PAIR_ENERGY:")
	assert.NotContains(t, output, "Errors:")
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	assert.Contains(t, buf.String(), "Total Events: 0")
}
