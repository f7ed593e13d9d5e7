package log

import "time"

// Event represents a build log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// BuildID uniquely identifies the translation pass (UUID).
	BuildID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Snapshot is the name of the reference data snapshot.
	Snapshot string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Model *ModelEvent     `cbor:"10,keyasint,omitempty"`
	Blob  *BlobEvent      `cbor:"11,keyasint,omitempty"`
	State *StateEvent     `cbor:"12,keyasint,omitempty"`
	Error *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Layer indicates which part of the translator captured the event.
type Layer uint8

const (
	// LayerBuild is the overall translation pass.
	LayerBuild Layer = 0
	// LayerEnergy is the interaction model builder.
	LayerEnergy Layer = 1
	// LayerTransition is the transition rule model builder.
	LayerTransition Layer = 2
	// LayerEncode is the interop encoder.
	LayerEncode Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBuild:
		return "BUILD"
	case LayerEnergy:
		return "ENERGY"
	case LayerTransition:
		return "TRANSITION"
	case LayerEncode:
		return "ENCODE"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer returns the layer with the given name.
func ParseLayer(s string) (Layer, bool) {
	for l := LayerBuild; l <= LayerEncode; l++ {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryModel indicates a built model.
	CategoryModel Category = 0
	// CategoryBlob indicates an encoded blob.
	CategoryBlob Category = 1
	// CategoryState indicates a stage transition.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryModel:
		return "MODEL"
	case CategoryBlob:
		return "BLOB"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryModel; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ModelEvent describes one built model.
type ModelEvent struct {
	// Kind of model.
	Kind ModelKind `cbor:"1,keyasint"`

	// ModelID is the index of the model within its kind.
	ModelID int `cbor:"2,keyasint"`

	// Source is the index of the interaction or transition the model was built from.
	Source int `cbor:"3,keyasint"`

	// Rules is the number of rule models (transition models only).
	Rules int `cbor:"4,keyasint,omitempty"`

	// Rows and Cols give the energy table shape (energy models only).
	Rows int `cbor:"5,keyasint,omitempty"`
	Cols int `cbor:"6,keyasint,omitempty"`

	// GeometricInverse marks transition models generated as inverse of another.
	GeometricInverse bool `cbor:"7,keyasint,omitempty"`
}

// ModelKind distinguishes the built model types.
type ModelKind uint8

const (
	ModelGroupEnergy ModelKind = 0
	ModelPairEnergy  ModelKind = 1
	ModelKinetic     ModelKind = 2
	ModelMetropolis  ModelKind = 3
)

// String returns the model kind name.
func (k ModelKind) String() string {
	switch k {
	case ModelGroupEnergy:
		return "GROUP_ENERGY"
	case ModelPairEnergy:
		return "PAIR_ENERGY"
	case ModelKinetic:
		return "KINETIC"
	case ModelMetropolis:
		return "METROPOLIS"
	default:
		return "UNKNOWN"
	}
}

// BlobEvent describes one encoded blob of a bundle.
type BlobEvent struct {
	// Name is the bundle key of the blob.
	Name string `cbor:"1,keyasint"`

	// Record is the interop record kind name of the elements.
	Record string `cbor:"2,keyasint"`

	// Count is the number of records in the blob.
	Count int `cbor:"3,keyasint"`

	// Size is the blob size in bytes.
	Size int `cbor:"4,keyasint"`
}

// StateEvent captures stage transitions of a build.
type StateEvent struct {
	// Stage that changed.
	Stage Stage `cbor:"1,keyasint"`

	// Reason for a failure (if any).
	Reason string `cbor:"2,keyasint,omitempty"`

	// Duration of the stage, set on completion and failure.
	Duration *time.Duration `cbor:"3,keyasint,omitempty"`
}

// Stage indicates a stage transition.
type Stage uint8

const (
	StageStarted   Stage = 0
	StageCompleted Stage = 1
	StageFailed    Stage = 2
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageStarted:
		return "STARTED"
	case StageCompleted:
		return "COMPLETED"
	case StageFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
