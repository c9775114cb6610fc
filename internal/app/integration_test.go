package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/codepadhq/codepad/internal/editor"
	"github.com/codepadhq/codepad/internal/gateway"
	"github.com/codepadhq/codepad/internal/runner"
	"github.com/codepadhq/codepad/internal/server"
	"github.com/codepadhq/codepad/internal/session"
	"github.com/codepadhq/codepad/internal/workspace"
)

// setupStack runs a real backend over a temp workspace and returns a
// session controller connected to it through the HTTP gateway.
func setupStack(t *testing.T) (*session.Controller, *editor.Buffer, *workspace.Store) {
	t.Helper()

	files, err := workspace.NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	srv := server.New(files, runner.New(), server.WithCSRFToken("tok"))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	gw := gateway.NewHTTPClient(ts.URL, gateway.WithCSRFToken("tok"))
	buf := editor.NewBuffer()
	ctrl := session.New(gw, buf)
	return ctrl, buf, files
}

func TestEndToEnd_OpenEditSaveRoundTrip(t *testing.T) {
	ctrl, buf, files := setupStack(t)
	ctx := context.Background()

	if err := files.Write("main.py", "print('old')"); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.OpenOrFocus(ctx, "main.py"); err != nil {
		t.Fatalf("OpenOrFocus failed: %v", err)
	}
	if buf.Value() != "print('old')" {
		t.Fatalf("editor buffer = %q, want remote content", buf.Value())
	}

	buf.Edit("print('new')")
	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := files.Read("main.py")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if stored != "print('new')" {
		t.Errorf("stored content = %q, want %q", stored, "print('new')")
	}
}

func TestEndToEnd_PreviewComposition(t *testing.T) {
	ctrl, _, files := setupStack(t)
	ctx := context.Background()

	if err := files.Write("index.html", "<p>hi</p>"); err != nil {
		t.Fatal(err)
	}
	if err := files.Write("style.css", "p{color:red}"); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.OpenOrFocus(ctx, "index.html"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.OpenOrFocus(ctx, "style.css"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SwitchTo("index.html"); err != nil {
		t.Fatal(err)
	}

	got, ok := ctrl.Preview()
	if !ok {
		t.Fatal("Preview returned ok = false")
	}
	want := "<style>p{color:red}</style><p>hi</p>"
	if got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}
}

func TestEndToEnd_ExecuteLua(t *testing.T) {
	ctrl, buf, _ := setupStack(t)
	ctx := context.Background()

	ctrl.CreateNew("demo.lua")
	buf.Edit(`print("sum:", 2 + 2)`)

	var output string
	ctrl.OnOutput(func(text string) { output = text })

	if err := ctrl.Execute(ctx, "lua"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if output != "sum:\t4\n" {
		t.Errorf("output = %q, want %q", output, "sum:\t4\n")
	}
}

func TestEndToEnd_ListFiles(t *testing.T) {
	ctrl, _, files := setupStack(t)
	ctx := context.Background()

	for _, name := range []string{"b.js", "a.py"} {
		if err := files.Write(name, ""); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ctrl.RefreshFileList(ctx)
	if err != nil {
		t.Fatalf("RefreshFileList failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a.py" || names[1] != "b.js" {
		t.Errorf("files = %v, want [a.py b.js]", names)
	}
}

func TestEndToEnd_LoadFailureLeavesSessionUntouched(t *testing.T) {
	ctrl, _, _ := setupStack(t)

	err := ctrl.OpenOrFocus(context.Background(), "missing.py")
	if err == nil {
		t.Fatal("OpenOrFocus for missing file returned nil error")
	}
	if len(ctrl.Tabs()) != 0 {
		t.Errorf("tabs = %v, want none", ctrl.Tabs())
	}
	if ctrl.ActiveFilename() != "" {
		t.Errorf("active = %q, want none", ctrl.ActiveFilename())
	}
}
