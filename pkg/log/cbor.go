package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// maxEventNesting bounds the depth of a decoded event: event, payload,
// duration.
const maxEventNesting = 4

var (
	eventEncMode cbor.EncMode
	eventDecMode cbor.DecMode
)

func init() {
	// Events are appended one by one to a stream, so every item is a
	// definite-length map in core deterministic order.
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	encOpts.NilContainers = cbor.NilContainerAsNull

	var err error
	eventEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: maxEventNesting,
	}
	eventDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an event with integer keys.
func EncodeEvent(event Event) ([]byte, error) {
	data, err := eventEncMode.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return data, nil
}

// DecodeEvent decodes one event. Duplicate keys and indefinite lengths are
// rejected.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

// NewEncoder returns a stream encoder writing events to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
