// Package editor defines the narrow contract the session core holds against
// the text-editing widget.
//
// The widget owns a transient copy of the active document's content; the
// store remains the single source of truth. Synchronization is one-way,
// widget to store, driven by the discrete change notification.
package editor

import (
	"sync"

	"github.com/codepadhq/codepad/internal/mode"
)

// Editor is the entirety of the widget contract as the core sees it:
// a single mutable value cell, a mode setting, and a change notification.
type Editor interface {
	// Value returns the current buffer text.
	Value() string
	// SetValue replaces the buffer text. Must not fire the change callback;
	// it represents the core pushing state into the widget, not an edit.
	SetValue(text string)
	// SetMode selects the syntax treatment the widget should display.
	SetMode(tag mode.Tag)
	// OnChange registers the callback fired after each user edit.
	OnChange(fn func())
}

// Buffer is an in-memory Editor used by the server-side session host and
// by tests. Edit simulates a user edit: it updates the value and fires the
// change callback, mirroring how a real widget reports keystrokes.
type Buffer struct {
	mu       sync.Mutex
	value    string
	tag      mode.Tag
	onChange func()
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{tag: mode.PlainText}
}

// Value returns the current buffer text.
func (b *Buffer) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// SetValue replaces the buffer text without firing the change callback.
func (b *Buffer) SetValue(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = text
}

// SetMode records the syntax treatment for the buffer.
func (b *Buffer) SetMode(tag mode.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tag = tag
}

// Mode returns the current syntax treatment.
func (b *Buffer) Mode() mode.Tag {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tag
}

// OnChange registers the change callback.
func (b *Buffer) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Edit replaces the buffer text and fires the change callback, as a real
// widget does on a user edit.
func (b *Buffer) Edit(text string) {
	b.mu.Lock()
	b.value = text
	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}
