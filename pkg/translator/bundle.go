package translator

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
)

// BundleVersion is the bundle file format version.
const BundleVersion = 1

// ErrBundleVersion is returned when reading a bundle of another version.
var ErrBundleVersion = errors.New("unsupported bundle version")

// Blob is one encoded record array or single record.
type Blob struct {
	Kind  interop.Kind `cbor:"1,keyasint"`
	Count int          `cbor:"2,keyasint"`
	Data  []byte       `cbor:"3,keyasint"`
}

// Bundle holds the blobs of one translation pass.
type Bundle struct {
	Version  int             `cbor:"1,keyasint"`
	BuildID  string          `cbor:"2,keyasint"`
	Snapshot string          `cbor:"3,keyasint,omitempty"`
	Created  time.Time       `cbor:"4,keyasint"`
	Blobs    map[string]Blob `cbor:"5,keyasint"`
}

// NewBundle creates an empty bundle.
func NewBundle(buildID, snapshot string) *Bundle {
	return &Bundle{
		Version:  BundleVersion,
		BuildID:  buildID,
		Snapshot: snapshot,
		Created:  time.Now().UTC(),
		Blobs:    make(map[string]Blob),
	}
}

// Names returns the blob names in sorted order.
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.Blobs))
	for name := range b.Blobs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Size returns the total number of blob bytes.
func (b *Bundle) Size() int {
	n := 0
	for _, blob := range b.Blobs {
		n += len(blob.Data)
	}
	return n
}

var (
	bundleEncMode cbor.EncMode
	bundleDecMode cbor.DecMode
)

func init() {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano

	var err error
	bundleEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create bundle CBOR encoder mode: %v", err))
	}
	bundleDecMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create bundle CBOR decoder mode: %v", err))
	}
}

// MarshalBundle encodes b deterministically.
func MarshalBundle(b *Bundle) ([]byte, error) {
	return bundleEncMode.Marshal(b)
}

// UnmarshalBundle decodes a bundle and checks its version.
func UnmarshalBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := bundleDecMode.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Version != BundleVersion {
		return nil, fmt.Errorf("%w: %d", ErrBundleVersion, b.Version)
	}
	if b.Blobs == nil {
		b.Blobs = make(map[string]Blob)
	}
	return &b, nil
}

// WriteBundle writes b to path.
func WriteBundle(path string, b *Bundle) error {
	data, err := MarshalBundle(b)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// ReadBundle reads the bundle at path.
func ReadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return UnmarshalBundle(data)
}
