package pipeline

import "fmt"

// DataFormatError reports a raw field value that cannot be coerced to its
// declared type after sentinel substitution. It is fatal to the rebuild: the
// caller discards all partial output rather than publishing a half-typed
// snapshot.
type DataFormatError struct {
	Field string
	Row   int
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot coerce %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
