package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	original := Event{
		Timestamp: ts,
		BuildID:   "abc12345-def6-7890-abcd-ef1234567890",
		Layer:     LayerTransition,
		Category:  CategoryModel,
		Snapshot:  "ysz",
		Model: &ModelEvent{
			Kind:             ModelKinetic,
			ModelID:          3,
			Source:           1,
			Rules:            4,
			GeometricInverse: true,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.BuildID != original.BuildID {
		t.Errorf("BuildID: got %q, want %q", decoded.BuildID, original.BuildID)
	}
	if decoded.Layer != original.Layer || decoded.Category != original.Category {
		t.Errorf("Layer/Category: got %v/%v", decoded.Layer, decoded.Category)
	}
	if decoded.Snapshot != "ysz" {
		t.Errorf("Snapshot: got %q", decoded.Snapshot)
	}
	if decoded.Model == nil {
		t.Fatal("Model payload lost")
	}
	if *decoded.Model != *original.Model {
		t.Errorf("Model: got %+v, want %+v", *decoded.Model, *original.Model)
	}
}

func TestPayloadCBORRoundTrip(t *testing.T) {
	d := 1500 * time.Millisecond
	tests := []struct {
		name  string
		event Event
		check func(t *testing.T, e Event)
	}{
		{
			name:  "blob",
			event: Event{Layer: LayerEncode, Category: CategoryBlob, Blob: &BlobEvent{Name: "pair/0", Record: "Double", Count: 9, Size: 84}},
			check: func(t *testing.T, e Event) {
				if e.Blob == nil || *e.Blob != (BlobEvent{Name: "pair/0", Record: "Double", Count: 9, Size: 84}) {
					t.Errorf("Blob: got %+v", e.Blob)
				}
			},
		},
		{
			name:  "state",
			event: Event{Category: CategoryState, State: &StateEvent{Stage: StageFailed, Reason: "boom", Duration: &d}},
			check: func(t *testing.T, e Event) {
				if e.State == nil || e.State.Stage != StageFailed || e.State.Reason != "boom" {
					t.Fatalf("State: got %+v", e.State)
				}
				if e.State.Duration == nil || *e.State.Duration != d {
					t.Errorf("Duration: got %v", e.State.Duration)
				}
			},
		},
		{
			name:  "error",
			event: Event{Category: CategoryError, Error: &ErrorEventData{Layer: LayerEnergy, Message: "bad", Context: "group 2"}},
			check: func(t *testing.T, e Event) {
				if e.Error == nil || *e.Error != (ErrorEventData{Layer: LayerEnergy, Message: "bad", Context: "group 2"}) {
					t.Errorf("Error: got %+v", e.Error)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.event)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}
			decoded, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}
			tt.check(t, decoded)
		})
	}
}

func TestEncodeEventDeterministic(t *testing.T) {
	event := Event{BuildID: "b", Model: &ModelEvent{Kind: ModelGroupEnergy, Rows: 2, Cols: 3}}

	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeEvent(event)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding is not deterministic")
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}

func TestDecodeEventStrictness(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"definite map", []byte{0xa1, 0x02, 0x61, 'a'}, false},
		{"duplicate key", []byte{0xa2, 0x02, 0x61, 'a', 0x02, 0x61, 'b'}, true},
		{"indefinite map", []byte{0xbf, 0x02, 0x61, 'a', 0xff}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := DecodeEvent(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, decoded %+v", e)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}
			if e.BuildID != "a" {
				t.Errorf("BuildID: got %q, want %q", e.BuildID, "a")
			}
		})
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(Event{BuildID: "b", Model: &ModelEvent{ModelID: i}}); err != nil {
			t.Fatal(err)
		}
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		var e Event
		if err := dec.Decode(&e); err != nil {
			t.Fatal(err)
		}
		if e.Model.ModelID != i {
			t.Errorf("event %d: ModelID = %d", i, e.Model.ModelID)
		}
	}
}
