// Package gateway is the async request/response boundary to the remote
// storage and execution backend.
//
// The core only ever reaches the backend through the Gateway interface; the
// backend never touches session state directly. Every call carries the
// caller's context and the ambient anti-forgery token, which the core treats
// as an opaque pass-through credential.
package gateway

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoResponse is returned when the backend reply carries neither a result
// nor an error field.
var ErrNoResponse = errors.New("empty gateway response")

// Gateway provides the four backend operations over files.
type Gateway interface {
	// List returns the openable filenames, in backend order.
	List(ctx context.Context) ([]string, error)

	// Load returns the stored content of filename.
	Load(ctx context.Context, filename string) (string, error)

	// Save stores code under filename.
	Save(ctx context.Context, filename, code string) error

	// Execute runs code under the given execution language and returns the
	// backend's verbatim output and error text.
	Execute(ctx context.Context, code, language string) (ExecResult, error)
}

// ExecResult is the backend's reply to an execute request.
// Output and Error are rendered verbatim into the output surface; both may
// be non-empty at once (for example compiler warnings alongside output).
type ExecResult struct {
	Output string
	Error  string
}

// RemoteError is an error field carried in an otherwise well-formed backend
// response.
type RemoteError struct {
	Op      string
	Message string
}

// Error returns the formatted error message.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("gateway %s: %s", e.Op, e.Message)
}
