package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleBuild("build-1", time.Now()))

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "jsonl", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "build-1", first["BuildID"])
	assert.Equal(t, "zirconia", first["Snapshot"])
}

func TestRunExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleBuild("build-1", time.Now()))

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "csv", &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, []string{"timestamp", "build_id", "snapshot", "layer", "category", "type", "name", "count"}, records[0])
	blob := records[4]
	assert.Equal(t, "ENCODE", blob[3])
	assert.Equal(t, "BLOB", blob[4])
	assert.Equal(t, "pair-table/0", blob[6])
	assert.Equal(t, "1", blob[7])
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	err := RunExport(path, "xml", &buf)
	assert.ErrorContains(t, err, "unknown format")
}
