package model

import (
	"errors"
	"fmt"
)

// ErrReferenceData marks reference data that is inconsistent with what a
// builder requires: missing position group infos, malformed movement
// descriptions, occupations longer than eight slots. It aborts the build of
// the affected model.
var ErrReferenceData = errors.New("reference data inconsistency")

// Inconsistency wraps ErrReferenceData with the offending object.
func Inconsistency(object string, index int, format string, args ...any) error {
	return fmt.Errorf("%w: %s %d: %s", ErrReferenceData, object, index, fmt.Sprintf(format, args...))
}
