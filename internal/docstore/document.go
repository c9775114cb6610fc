// Package docstore holds the set of currently open documents.
//
// The store is an insertion-ordered map from filename to Document. Key order
// is the tab display order: new filenames append, overwrites keep their slot.
// The store knows nothing about the UI, the editor widget, or the remote
// backend; it is mutated only through the session controller.
package docstore

import (
	"sync"
	"time"

	"github.com/codepadhq/codepad/internal/mode"
)

// Document represents an open file held in memory.
//
// Content is the authoritative in-memory value; it may diverge from remote
// storage until saved. Mode is derived once from the filename at open or
// create time and never re-derived (renaming is unsupported).
type Document struct {
	mu sync.RWMutex

	// Filename identifies the document. It is the only identity key.
	Filename string

	// Content is the current document text.
	Content string

	// Mode is the editing-language tag resolved from Filename.
	Mode mode.Tag

	// Version is incremented on each content change.
	Version int64

	// OpenedAt is when the document entered the store.
	OpenedAt time.Time

	// ModifiedAt is when the content last changed.
	ModifiedAt time.Time
}

// NewDocument creates a Document with version 1.
func NewDocument(filename, content string, tag mode.Tag) *Document {
	now := time.Now()
	return &Document{
		Filename:   filename,
		Content:    content,
		Mode:       tag,
		Version:    1,
		OpenedAt:   now,
		ModifiedAt: now,
	}
}

// GetContent returns the current content.
func (d *Document) GetContent() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Content
}

// SetContent replaces the content and increments the version.
func (d *Document) SetContent(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Content = content
	d.Version++
	d.ModifiedAt = time.Now()
}

// GetMode returns the editing-language tag.
func (d *Document) GetMode() mode.Tag {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Mode
}

// GetVersion returns the current version.
func (d *Document) GetVersion() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Version
}
