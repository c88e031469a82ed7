package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a requested column does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrEmptyDataset indicates a source without a header row.
	ErrEmptyDataset = errors.New("dataset has no header")
	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// FieldKindError reports a field used with the wrong kind, e.g. a
// categorical column passed where a numeric one is required.
type FieldKindError struct {
	Field string
	Have  Kind
	Want  Kind
}

func (e *FieldKindError) Error() string {
	return fmt.Sprintf("field %q is %s, want %s", e.Field, e.Have, e.Want)
}
