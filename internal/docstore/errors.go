package docstore

import (
	"errors"
	"fmt"
)

// ErrUnknownDocument is returned when an operation targets a filename that
// is not open in the store.
var ErrUnknownDocument = errors.New("unknown document")

// DocumentError wraps a store error with the operation and filename context.
type DocumentError struct {
	Op       string
	Filename string
	Err      error
}

// Error returns the formatted error message.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Filename, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}
