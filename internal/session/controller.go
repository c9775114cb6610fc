// Package session owns "which document is active" and orchestrates the
// open/close/switch/create lifecycle.
//
// The Controller is the only writer of document state: user actions enter
// here, mutate the document store, drive the editing widget in lock-step,
// and trigger preview recomposition. The remote gateway is invoked only from
// this package, and its results flow back through it. A gateway failure
// aborts the in-progress operation with prior state untouched.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/codepadhq/codepad/internal/docstore"
	"github.com/codepadhq/codepad/internal/editor"
	"github.com/codepadhq/codepad/internal/gateway"
	"github.com/codepadhq/codepad/internal/mode"
	"github.com/codepadhq/codepad/internal/preview"
)

// ErrLoadPending is returned when an open is requested for a filename whose
// load is already in flight. Repeated opens are rejected rather than
// duplicated, so at most one load per filename is ever outstanding.
var ErrLoadPending = errors.New("load already in flight")

// Logger is the logging surface the controller needs.
// *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Controller is the session state machine over open documents.
//
// Each document is in one of three states: closed (not in the store),
// open-inactive (in the store, not active), or open-active. At most one
// document is open-active; none when the store is empty.
type Controller struct {
	mu sync.Mutex

	store  *docstore.Store
	ed     editor.Editor
	gw     gateway.Gateway
	log    Logger
	active string

	// pending tracks filenames with an in-flight load. An entry removed
	// before the load resolves revokes it: the response is discarded
	// instead of resurrecting a closed tab.
	pending map[string]struct{}

	// Callbacks into the hosting UI. All are invoked outside the
	// controller lock and may be nil.
	onPreview  func(artifact string, ok bool)
	onNotice   func(message string)
	onOutput   func(text string)
	onFileList func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(log Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New creates a Controller over an empty document store and registers
// itself for the editor's change notifications.
func New(gw gateway.Gateway, ed editor.Editor, opts ...Option) *Controller {
	c := &Controller{
		store:   docstore.NewStore(),
		ed:      ed,
		gw:      gw,
		log:     nopLogger{},
		pending: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	ed.OnChange(c.OnEditorChange)
	return c
}

// OnPreview registers the callback receiving recomposed preview artifacts.
// ok is false when there is nothing to preview.
func (c *Controller) OnPreview(fn func(artifact string, ok bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPreview = fn
}

// OnNotice registers the callback for user-visible notices and warnings.
func (c *Controller) OnNotice(fn func(message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotice = fn
}

// OnOutput registers the callback receiving execution output.
func (c *Controller) OnOutput(fn func(text string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOutput = fn
}

// OnFileListChanged registers the callback signalling that the remote file
// list should be refreshed.
func (c *Controller) OnFileListChanged(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFileList = fn
}

// ActiveFilename returns the active document's filename, or "" when none.
func (c *Controller) ActiveFilename() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Tabs returns the open filenames in tab display order.
func (c *Controller) Tabs() []string {
	return c.store.KeysInOrder()
}

// Store returns the underlying document store.
func (c *Controller) Store() *docstore.Store {
	return c.store
}

// Preview recomputes the preview artifact for the current state.
func (c *Controller) Preview() (string, bool) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	return preview.Compose(c.store, active)
}

// OpenOrFocus opens filename, fetching its content from the gateway, or
// switches to it if it is already open.
//
// A second call for a filename whose load has not yet resolved returns
// ErrLoadPending without issuing a duplicate request. On gateway failure the
// open aborts with no state change: no document, no tab.
func (c *Controller) OpenOrFocus(ctx context.Context, filename string) error {
	if c.store.Has(filename) {
		return c.SwitchTo(filename)
	}

	c.mu.Lock()
	if _, inFlight := c.pending[filename]; inFlight {
		c.mu.Unlock()
		c.log.Debug("open rejected, load pending: %s", filename)
		return ErrLoadPending
	}
	c.pending[filename] = struct{}{}
	c.mu.Unlock()

	// Suspension point. The lock is not held across the gateway call.
	content, err := c.gw.Load(ctx, filename)

	c.mu.Lock()
	if _, wanted := c.pending[filename]; !wanted {
		// Revoked while in flight (tab closed, session shut down).
		c.mu.Unlock()
		c.log.Debug("discarding stale load response: %s", filename)
		return nil
	}
	delete(c.pending, filename)

	if err != nil {
		c.mu.Unlock()
		c.log.Error("loading %s: %v", filename, err)
		c.notify(fmt.Sprintf("Error loading file: %v", err))
		return err
	}

	c.store.Put(filename, content, mode.Resolve(filename))
	artifact, ok := c.activateLocked(filename)
	c.mu.Unlock()

	c.emitPreview(artifact, ok)
	return nil
}

// SwitchTo makes an already open document active, pushing its content and
// mode into the editor and recomposing the preview.
func (c *Controller) SwitchTo(filename string) error {
	c.mu.Lock()
	if !c.store.Has(filename) {
		c.mu.Unlock()
		return &docstore.DocumentError{Op: "switch", Filename: filename, Err: docstore.ErrUnknownDocument}
	}

	artifact, ok := c.activateLocked(filename)
	c.mu.Unlock()

	c.emitPreview(artifact, ok)
	return nil
}

// activateLocked sets filename active and syncs the editor. The caller must
// hold c.mu and filename must be open. Returns the recomposed preview.
func (c *Controller) activateLocked(filename string) (string, bool) {
	doc, _ := c.store.Get(filename)
	c.active = filename
	c.ed.SetValue(doc.GetContent())
	c.ed.SetMode(doc.GetMode())
	return preview.Compose(c.store, filename)
}

// CloseTab closes filename's tab and removes its document.
//
// If the closed document was active, the first remaining tab in order
// becomes active; with no tabs left the editor buffer is cleared and no
// document is active. Closing also revokes any in-flight load for the
// filename.
func (c *Controller) CloseTab(filename string) {
	c.mu.Lock()
	delete(c.pending, filename)
	c.store.Remove(filename)

	if c.active != filename {
		c.mu.Unlock()
		return
	}

	var artifact string
	var ok bool
	if next, found := c.store.FirstKey(); found {
		artifact, ok = c.activateLocked(next)
	} else {
		c.active = ""
		c.ed.SetValue("")
		artifact, ok = "", false
	}
	c.mu.Unlock()

	c.emitPreview(artifact, ok)
}

// OnEditorChange commits the editor buffer to the active document and
// recomposes the preview. Change events with no active document are
// ignored, not errors.
func (c *Controller) OnEditorChange() {
	c.mu.Lock()
	if c.active == "" {
		c.mu.Unlock()
		return
	}
	active := c.active

	if err := c.store.UpdateContent(active, c.ed.Value()); err != nil {
		c.mu.Unlock()
		c.log.Warn("editor change for %s: %v", active, err)
		return
	}

	artifact, ok := preview.Compose(c.store, active)
	c.mu.Unlock()

	c.emitPreview(artifact, ok)
}

// CreateNew opens an empty document under filename and makes it active.
//
// An empty filename (cancelled prompt) is a silent no-op. A name collision
// with an open document overwrites it in place; there is no duplicate-name
// protection. The file-list callback fires so the hosting UI can refresh
// the remote listing.
func (c *Controller) CreateNew(filename string) {
	if filename == "" {
		c.log.Debug("create cancelled: empty filename")
		return
	}

	c.mu.Lock()
	c.store.Put(filename, "", mode.Resolve(filename))
	artifact, ok := c.activateLocked(filename)
	fileList := c.onFileList
	c.mu.Unlock()

	c.emitPreview(artifact, ok)
	if fileList != nil {
		fileList()
	}
}

// Save sends the active document's content to the gateway.
//
// With no active document it is a guarded no-op with a user-visible
// warning. Local state is untouched either way: the in-memory content is
// already authoritative.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active == "" {
		c.notify("Please open a file to save.")
		return nil
	}

	doc, ok := c.store.Get(active)
	if !ok {
		return &docstore.DocumentError{Op: "save", Filename: active, Err: docstore.ErrUnknownDocument}
	}

	if err := c.gw.Save(ctx, active, doc.GetContent()); err != nil {
		c.log.Error("saving %s: %v", active, err)
		c.notify(fmt.Sprintf("Error saving file: %v", err))
		return err
	}

	c.notify("File saved successfully!")
	return nil
}

// Execute sends the live editor buffer to the gateway under the given
// execution language and renders the returned output or error text
// verbatim.
//
// The language is chosen independently of the active document's mode. With
// no active document it is a guarded no-op with a user-visible warning.
func (c *Controller) Execute(ctx context.Context, language string) error {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active == "" {
		c.notify("Please open a file to run.")
		return nil
	}

	// The live buffer, not the committed store content. The two are kept
	// synchronized by OnEditorChange, but the buffer is what the user sees.
	code := c.ed.Value()

	result, err := c.gw.Execute(ctx, code, language)
	if err != nil {
		c.log.Error("executing %s: %v", active, err)
		c.emitOutput("An error occurred.")
		return err
	}

	if result.Output != "" {
		c.emitOutput(result.Output)
	} else {
		c.emitOutput(result.Error)
	}
	return nil
}

// RefreshFileList fetches the openable filenames from the gateway. The
// result renders the file list only; document state is untouched.
func (c *Controller) RefreshFileList(ctx context.Context) ([]string, error) {
	files, err := c.gw.List(ctx)
	if err != nil {
		c.log.Error("listing files: %v", err)
		return nil, err
	}
	return files, nil
}

// NotImplemented reports the fixed notice for surfaces that exist in the
// UI but have no behavior yet (search, source control, extensions, account,
// settings).
func (c *Controller) NotImplemented(feature string) {
	c.notify(fmt.Sprintf("%s functionality not yet implemented.", feature))
}

// notify delivers a user-visible notice if a callback is registered.
func (c *Controller) notify(message string) {
	c.mu.Lock()
	fn := c.onNotice
	c.mu.Unlock()

	if fn != nil {
		fn(message)
	}
}

// emitOutput delivers execution output if a callback is registered.
func (c *Controller) emitOutput(text string) {
	c.mu.Lock()
	fn := c.onOutput
	c.mu.Unlock()

	if fn != nil {
		fn(text)
	}
}

// emitPreview delivers a recomposed preview if a callback is registered.
func (c *Controller) emitPreview(artifact string, ok bool) {
	c.mu.Lock()
	fn := c.onPreview
	c.mu.Unlock()

	if fn != nil {
		fn(artifact, ok)
	}
}
