// Package preview derives a renderable composite from the open documents.
//
// At most one style document and one script document contribute, chosen by
// tab order rather than by any linkage declared in the markup. Recomposition
// is a single scan over the open documents and is never cached.
package preview

import (
	"github.com/codepadhq/codepad/internal/docstore"
)

// Source is the read-only view of the document store the compositor needs.
type Source interface {
	Get(filename string) (*docstore.Document, bool)
	KeysInOrder() []string
}

// Compose builds the preview artifact for the active document.
//
// It returns ok = false when there is nothing to preview: no active document,
// the active document is not open, or its mode is not markup. Otherwise the
// result is the active document's content with the first open style document
// prepended as an embedded style block and the first open script document
// appended as an embedded script block.
func Compose(src Source, activeFilename string) (string, bool) {
	if activeFilename == "" {
		return "", false
	}

	active, ok := src.Get(activeFilename)
	if !ok || !active.GetMode().IsMarkup() {
		return "", false
	}

	result := active.GetContent()

	keys := src.KeysInOrder()

	for _, key := range keys {
		doc, ok := src.Get(key)
		if !ok {
			continue
		}
		if doc.GetMode().IsStyle() {
			result = "<style>" + doc.GetContent() + "</style>" + result
			break
		}
	}

	for _, key := range keys {
		doc, ok := src.Get(key)
		if !ok {
			continue
		}
		if doc.GetMode().IsScript() {
			result = result + "<script>" + doc.GetContent() + "</script>"
			break
		}
	}

	return result, true
}
