package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMenuFound is matched by every *NoMenuFoundError.
	ErrNoMenuFound = errors.New("no menu table found")
	// ErrNilDocument is a caller bug: Extract needs a parsed document.
	ErrNilDocument = errors.New("nil document")
)

// NoMenuFoundError is advisory. The document carries no weekly menu table and
// yields no items; batch callers log it and move on.
type NoMenuFoundError struct {
	SourceRef string
}

func (e *NoMenuFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoMenuFound, e.SourceRef)
}

func (e *NoMenuFoundError) Is(target error) bool {
	return target == ErrNoMenuFound
}
