package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mocassin-sim/mocassin-go/pkg/jobs"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/symmetry"
)

// ErrInvalidDocument is wrapped by every resolution error of a document.
var ErrInvalidDocument = errors.New("invalid snapshot document")

// LoadError provides details about a snapshot loading error.
type LoadError struct {
	// File is the path of the document, empty for in-memory data.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Loaded is a resolved document.
type Loaded struct {
	Snapshot *model.Snapshot
	Symmetry *symmetry.StaticService
	Jobs     []jobs.Job
}

// Parse decodes and resolves a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Loaded, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	loaded, err := doc.Resolve()
	if err != nil {
		return nil, &LoadError{Message: "failed to resolve document", Cause: err}
	}
	return loaded, nil
}

// Load reads and resolves the document at path.
func Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	loaded, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return loaded, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
