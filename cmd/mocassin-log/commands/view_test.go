package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

func TestFormatModelEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		BuildID:   "abc12345-6789-0123-4567-890abcdef012",
		Layer:     log.LayerTransition,
		Category:  log.CategoryModel,
		Model:     &log.ModelEvent{Kind: log.ModelKinetic, ModelID: 1, Source: 0, Rules: 4, GeometricInverse: true},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	assert.Contains(t, output, "2026-01-28T10:15:32.123456Z")
	assert.Contains(t, output, "[build:abc12345]")
	assert.Contains(t, output, "TRANSITION")
	assert.Contains(t, output, "KINETIC")
	assert.Contains(t, output, "Rules: 4")
	assert.Contains(t, output, "Geometric inverse")
}

func TestFormatBlobEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		BuildID:   "short",
		Layer:     log.LayerEncode,
		Category:  log.CategoryBlob,
		Blob:      &log.BlobEvent{Name: "kinetic-rules/0", Record: "TransitionRule", Count: 2, Size: 144},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	assert.Contains(t, output, "[build:short]")
	assert.Contains(t, output, "Blob: kinetic-rules/0")
	assert.Contains(t, output, "2 x TransitionRule (144 bytes)")
}

func TestFormatStateAndErrorEvents(t *testing.T) {
	d := 250 * time.Millisecond
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: time.Now(),
		Snapshot:  "zirconia",
		Layer:     log.LayerBuild,
		Category:  log.CategoryState,
		State:     &log.StateEvent{Stage: log.StageFailed, Reason: "inconsistent table", Duration: &d},
	})
	formatEvent(&buf, log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerEnergy,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Layer: log.LayerEnergy, Message: "missing entry", Context: "group 0"},
	})
	output := buf.String()

	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "Snapshot: zirconia")
	assert.Contains(t, output, "Duration: 250.0ms")
	assert.Contains(t, output, "Reason: inconsistent table")
	assert.Contains(t, output, "Message: missing entry")
	assert.Contains(t, output, "Context: group 0")
}

func TestRunViewFiltersByLayer(t *testing.T) {
	path := createTestLogFile(t, sampleBuild("build-1", time.Now()))

	layer, err := ParseLayerFlag("encode")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RunView(path, log.Filter{Layer: &layer}, &buf))

	output := buf.String()
	assert.Equal(t, 1, strings.Count(output, "ENCODE"))
	assert.NotContains(t, output, "KINETIC")
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunView("/nonexistent/build.mlog", log.Filter{}, &buf)
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	l, err := ParseLayerFlag("Energy")
	require.NoError(t, err)
	assert.Equal(t, log.LayerEnergy, l)

	c, err := ParseCategoryFlag("blob")
	require.NoError(t, err)
	assert.Equal(t, log.CategoryBlob, c)

	_, err = ParseLayerFlag("wire")
	assert.Error(t, err)
	_, err = ParseCategoryFlag("message")
	assert.Error(t, err)
}

func TestFilterOptions(t *testing.T) {
	opts := FilterOptions{
		BuildID:   "b",
		TimeStart: "2026-01-01T00:00:00Z",
		Layer:     "build",
		Category:  "state",
	}
	filter, err := opts.Filter()
	require.NoError(t, err)
	assert.Equal(t, "b", filter.BuildID)
	require.NotNil(t, filter.TimeStart)
	assert.Nil(t, filter.TimeEnd)
	assert.Equal(t, log.LayerBuild, *filter.Layer)
	assert.Equal(t, log.CategoryState, *filter.Category)

	_, err = FilterOptions{TimeEnd: "yesterday"}.Filter()
	assert.Error(t, err)
	_, err = FilterOptions{Category: "nope"}.Filter()
	assert.Error(t, err)
}
