package loader

import (
	"errors"
	"fmt"
)

// ErrNoData reports a valid query that matched no activities. It is an empty
// state, not a failure.
var ErrNoData = errors.New("no activity data for the requested range")

// ErrInvalidSchema reports that a required field is absent or failed coercion.
// The whole load is rejected; no partial dataset is returned.
var ErrInvalidSchema = errors.New("invalid activity data")

// SourceError wraps a connection or query failure of the underlying source.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("activity source unavailable: %v", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceUnavailable reports whether err came from the source itself.
func IsSourceUnavailable(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

func invalidRecord(index int, field, reason string) error {
	return fmt.Errorf("%w: record %d: %s %s", ErrInvalidSchema, index, field, reason)
}
