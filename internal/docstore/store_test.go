package docstore

import (
	"errors"
	"testing"

	"github.com/codepadhq/codepad/internal/mode"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore()

	store.Put("main.py", "print(1)", mode.Python)

	doc, ok := store.Get("main.py")
	if !ok {
		t.Fatal("Get returned ok = false for open document")
	}
	if doc.GetContent() != "print(1)" {
		t.Errorf("Content = %q, want %q", doc.GetContent(), "print(1)")
	}
	if doc.GetMode() != mode.Python {
		t.Errorf("Mode = %q, want %q", doc.GetMode(), mode.Python)
	}
	if !store.Has("main.py") {
		t.Error("Has = false for open document")
	}
}

func TestStore_PutOverwriteKeepsOrder(t *testing.T) {
	store := NewStore()

	store.Put("a.html", "<p>a</p>", mode.Markup)
	store.Put("b.css", "b{}", mode.Style)
	store.Put("a.html", "<p>new</p>", mode.Markup)

	keys := store.KeysInOrder()
	want := []string{"a.html", "b.css"}
	if len(keys) != len(want) {
		t.Fatalf("KeysInOrder returned %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	doc, _ := store.Get("a.html")
	if doc.GetContent() != "<p>new</p>" {
		t.Errorf("Content = %q, want %q", doc.GetContent(), "<p>new</p>")
	}
}

func TestStore_UpdateContentRoundTrip(t *testing.T) {
	store := NewStore()
	store.Put("app.js", "", mode.Script)

	if err := store.UpdateContent("app.js", "console.log(1)"); err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}

	doc, _ := store.Get("app.js")
	if doc.GetContent() != "console.log(1)" {
		t.Errorf("Content = %q, want %q", doc.GetContent(), "console.log(1)")
	}
	if doc.GetVersion() != 2 {
		t.Errorf("Version = %d, want 2", doc.GetVersion())
	}
}

func TestStore_UpdateContentUnknown(t *testing.T) {
	store := NewStore()

	err := store.UpdateContent("ghost.txt", "boo")
	if err == nil {
		t.Fatal("UpdateContent on unknown document returned nil error")
	}
	if !errors.Is(err, ErrUnknownDocument) {
		t.Errorf("error = %v, want ErrUnknownDocument", err)
	}

	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatal("error is not a *DocumentError")
	}
	if docErr.Filename != "ghost.txt" {
		t.Errorf("Filename = %q, want %q", docErr.Filename, "ghost.txt")
	}
}

func TestStore_RemovePreservesOrder(t *testing.T) {
	store := NewStore()
	store.Put("a.py", "", mode.Python)
	store.Put("b.js", "", mode.Script)
	store.Put("c.go", "", mode.Go)

	store.Remove("b.js")

	keys := store.KeysInOrder()
	want := []string{"a.py", "c.go"}
	if len(keys) != len(want) {
		t.Fatalf("KeysInOrder returned %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	// Removing an absent key is a no-op.
	store.Remove("b.js")
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestStore_FirstKey(t *testing.T) {
	store := NewStore()

	if _, ok := store.FirstKey(); ok {
		t.Error("FirstKey on empty store returned ok = true")
	}

	store.Put("x.c", "", mode.C)
	store.Put("y.cpp", "", mode.CPP)

	first, ok := store.FirstKey()
	if !ok || first != "x.c" {
		t.Errorf("FirstKey = %q, %v, want %q, true", first, ok, "x.c")
	}

	store.Remove("x.c")
	first, ok = store.FirstKey()
	if !ok || first != "y.cpp" {
		t.Errorf("FirstKey after remove = %q, %v, want %q, true", first, ok, "y.cpp")
	}
}
