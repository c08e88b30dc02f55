package link_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/jit"
	"github.com/lambda-lang/lambda/internal/link"
	"github.com/lambda-lang/lambda/internal/script"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLinkerResolvesExportedFunction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ls", `package lib (add)
pub fn add(a, b) { a + b }
`)
	mainPath := writeFile(t, dir, "main.ls", `import "lib"
lib.add(2, 3);
`)

	loader := script.NewLoader(jit.Compile)
	main, err := loader.Load(mainPath, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	linker, err := link.NewLinker(main)
	if err != nil {
		t.Fatalf("new linker: %v", err)
	}
	if err := linker.InitAll(); err != nil {
		t.Fatalf("init all: %v", err)
	}

	result, err := linker.ResolveCall("lib", "add", []item.Item{item.MakeInt(2), item.MakeInt(3)})
	if err != nil {
		t.Fatalf("resolve call: %v", err)
	}
	if result.Tag() != item.Int || result.IntValue() != 5 {
		t.Fatalf("expected INT(5), got tag=%v payload=%v", result.Tag(), result.Payload())
	}
}

func TestLinkerRejectsUnexportedSymbol(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ls", `package lib ()
fn helper() { 1 }
`)
	mainPath := writeFile(t, dir, "main.ls", `import "lib"
1;
`)

	loader := script.NewLoader(jit.Compile)
	main, err := loader.Load(mainPath, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	linker, err := link.NewLinker(main)
	if err != nil {
		t.Fatalf("new linker: %v", err)
	}
	if err := linker.InitAll(); err != nil {
		t.Fatalf("init all: %v", err)
	}

	if _, err := linker.ResolveCall("lib", "helper", nil); err == nil {
		t.Fatalf("expected an error resolving a non-exported symbol")
	}
}
