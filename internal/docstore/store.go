package docstore

import (
	"sync"
	"time"

	"github.com/codepadhq/codepad/internal/mode"
)

// Store manages the open documents and their tab order.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	documents map[string]*Document
	order     []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		documents: make(map[string]*Document),
	}
}

// Has reports whether filename is open.
func (s *Store) Has(filename string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[filename]
	return ok
}

// Get returns the document for filename if it is open.
func (s *Store) Get(filename string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[filename]
	return doc, ok
}

// Put inserts or overwrites a document.
// A new filename appends to the tab order; an existing filename keeps its
// slot and has content and mode replaced in place.
func (s *Store) Put(filename, content string, tag mode.Tag) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.documents[filename]; ok {
		doc.mu.Lock()
		doc.Content = content
		doc.Mode = tag
		doc.Version++
		doc.ModifiedAt = time.Now()
		doc.mu.Unlock()
		return doc
	}

	doc := NewDocument(filename, content, tag)
	s.documents[filename] = doc
	s.order = append(s.order, filename)
	return doc
}

// UpdateContent replaces the content of an open document.
// Returns a DocumentError wrapping ErrUnknownDocument if filename is not open.
func (s *Store) UpdateContent(filename, content string) error {
	s.mu.RLock()
	doc, ok := s.documents[filename]
	s.mu.RUnlock()

	if !ok {
		return &DocumentError{Op: "update", Filename: filename, Err: ErrUnknownDocument}
	}

	doc.SetContent(content)
	return nil
}

// Remove deletes a document and its tab slot. No-op if filename is not open.
func (s *Store) Remove(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[filename]; !ok {
		return
	}

	delete(s.documents, filename)
	for i, key := range s.order {
		if key == filename {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// KeysInOrder returns the open filenames in insertion order.
// The returned slice is a copy.
func (s *Store) KeysInOrder() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// FirstKey returns the first filename in tab order, or "" and false when the
// store is empty. Used to pick a fallback active document after a close.
func (s *Store) FirstKey() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return "", false
	}
	return s.order[0], true
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
