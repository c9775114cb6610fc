// Package workspace provides the backend's file storage over a directory.
//
// Filenames are flat: anything containing a path separator or traversal
// component is rejected before touching the filesystem.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for workspace operations.
var (
	ErrNotFound        = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

// PathError wraps a workspace error with the operation and filename.
type PathError struct {
	Op       string
	Filename string
	Err      error
}

// Error returns the formatted error message.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Filename, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// Store reads and writes files inside a single root directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the workspace directory.
func (s *Store) Root() string {
	return s.root
}

// List returns the workspace filenames in name order.
// Subdirectories are skipped: the workspace is flat.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing workspace: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of filename.
func (s *Store) Read(filename string) (string, error) {
	path, err := s.resolve("load", filename)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &PathError{Op: "load", Filename: filename, Err: ErrNotFound}
		}
		return "", &PathError{Op: "load", Filename: filename, Err: err}
	}
	return string(data), nil
}

// Write stores content under filename, replacing any existing file.
func (s *Store) Write(filename, content string) error {
	path, err := s.resolve("save", filename)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &PathError{Op: "save", Filename: filename, Err: err}
	}
	return nil
}

// Exists reports whether filename is present in the workspace.
func (s *Store) Exists(filename string) bool {
	path, err := s.resolve("stat", filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// resolve validates filename and returns its absolute path in the root.
func (s *Store) resolve(op, filename string) (string, error) {
	if filename == "" ||
		strings.ContainsAny(filename, "/\\") ||
		filename == "." || filename == ".." {
		return "", &PathError{Op: op, Filename: filename, Err: ErrInvalidFilename}
	}
	return filepath.Join(s.root, filename), nil
}
