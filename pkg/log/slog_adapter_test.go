package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logOne(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsModelEvent(t *testing.T) {
	entry := logOne(t, Event{
		Timestamp: time.Now(),
		BuildID:   "build-123",
		Layer:     LayerTransition,
		Category:  CategoryModel,
		Snapshot:  "ysz",
		Model:     &ModelEvent{Kind: ModelKinetic, ModelID: 2, Source: 5, Rules: 4, GeometricInverse: true},
	})

	want := map[string]any{
		"msg":               "build",
		"level":             "DEBUG",
		"build_id":          "build-123",
		"layer":             "TRANSITION",
		"category":          "MODEL",
		"snapshot":          "ysz",
		"model_kind":        "KINETIC",
		"model_id":          float64(2),
		"source":            float64(5),
		"rules":             float64(4),
		"geometric_inverse": true,
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["rows"]; ok {
		t.Error("rows logged for a transition model")
	}
}

func TestSlogAdapterLogsBlobEvent(t *testing.T) {
	entry := logOne(t, Event{
		Layer:    LayerEncode,
		Category: CategoryBlob,
		Blob:     &BlobEvent{Name: "jump-rules/0", Record: "JumpRule", Count: 4, Size: 204},
	})
	if entry["blob"] != "jump-rules/0" || entry["record"] != "JumpRule" || entry["size"] != float64(204) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSlogAdapterLogsStateEvent(t *testing.T) {
	d := 2 * time.Second
	entry := logOne(t, Event{
		Category: CategoryState,
		State:    &StateEvent{Stage: StageCompleted, Duration: &d},
	})
	if entry["stage"] != "COMPLETED" {
		t.Errorf("stage: got %v", entry["stage"])
	}
	if _, ok := entry["duration"]; !ok {
		t.Error("duration missing")
	}
}

func TestSlogAdapterLogsErrorsAtErrorLevel(t *testing.T) {
	entry := logOne(t, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerEnergy, Message: "missing info", Context: "group 1"},
	})
	if entry["level"] != "ERROR" {
		t.Errorf("level: got %v, want ERROR", entry["level"])
	}
	if entry["error_layer"] != "ENERGY" || entry["error_context"] != "group 1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{Category: CategoryModel, Model: &ModelEvent{}})

	if buf.Len() != 0 {
		t.Errorf("debug event written at info level: %s", buf.String())
	}
}
