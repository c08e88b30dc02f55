package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lambda-lang/lambda/internal/diagnostics"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writeFile(%s): %v", name, err)
	}
	return path
}

func TestCanonicalizeDotsToSlashes(t *testing.T) {
	got := Canonicalize("a.b.c", "/root/proj")
	want := filepath.Join("/root/proj", "a", "b", "c"+".ls")
	if got != want {
		t.Errorf("Canonicalize() = %q, want %q", got, want)
	}
}

func TestLoadDedupReturnsIdenticalScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ls", `pub let g = "b-greeting"`)
	writeFile(t, dir, "a.ls", `
import "b"
g
`)

	loader := NewLoader(nil)
	main, err := loader.Load(filepath.Join(dir, "a.ls"), true)
	if err != nil {
		t.Fatalf("Load(a): %v", err)
	}
	if len(main.Imports) != 1 {
		t.Fatalf("main.Imports = %d, want 1", len(main.Imports))
	}

	// Loading b directly again must return the very same Script.
	again, err := loader.Load(filepath.Join(dir, "b.ls"), false)
	if err != nil {
		t.Fatalf("Load(b) again: %v", err)
	}
	if again != main.Imports[0] {
		t.Errorf("second Load(b) returned a different Script instance")
	}
}

func TestLoadDetectsCircularImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ls", `import "b"`)
	writeFile(t, dir, "b.ls", `import "a"`)

	loader := NewLoader(nil)
	_, err := loader.Load(filepath.Join(dir, "a.ls"), true)
	if err == nil {
		t.Fatal("expected a circular import error, got nil")
	}
	diagErr, ok := err.(*diagnostics.Error)
	if !ok {
		t.Fatalf("error is %T, want *diagnostics.Error", err)
	}
	if diagErr.Code != diagnostics.ErrLd001 {
		t.Errorf("error code = %s, want %s", diagErr.Code, diagnostics.ErrLd001)
	}
	if len(diagErr.Chain) < 2 {
		t.Errorf("cycle chain = %v, want at least 2 entries", diagErr.Chain)
	}
}

func TestLoadParsesPubExports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ls", `
package lib (mk, g)
pub let g = "hi"
pub fn mk() { g }
`)
	loader := NewLoader(nil)
	s, err := loader.Load(filepath.Join(dir, "lib.ls"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Exports) != 2 {
		t.Fatalf("Exports = %v, want 2 entries", s.Exports)
	}
}
