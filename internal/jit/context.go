package jit

import (
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/runtime"
	"github.com/lambda-lang/lambda/internal/script"
)

// Context is one script's compiled JIT state: its function protos plus a
// VM ready to execute them. This is the Go-native analogue of the link
// layer's per-module symbol table (spec.md §4.4.1's function-pointer
// fields in Mod{N}) — a name-indexed table of callable entry points
// instead of BSS-resident C function pointers.
type Context struct {
	Script  *script.Script
	Protos  map[string]*FunctionProto
	VM      *VM
	Runtime *runtime.Context
}

// defaultRuntime is the process-wide singleton runtime.Context spec.md
// §3.4 describes ("A single Context instance exists for a program run")
// that Compile uses for every script it compiles. Embedders that need
// several isolated runs inside one process (e.g. a REPL session, or
// running an unrelated script per test) should call CompileWith against
// their own runtime.Context instead.
var defaultRuntime = runtime.New()

// Compile satisfies script.Compiler: it compiles s's AST to bytecode
// protos and attaches a fresh Context as s.JIT (spec.md §4.3 step 6,
// "transpile + JIT compile; attach jit context and main entry"). It does
// not execute anything — running main is a separate, explicit step
// (spec.md §4.3 step 7), invoked once per the Initialized guard (§9).
func Compile(s *script.Script) error {
	return compileInto(s, defaultRuntime)
}

// CompileWith returns a script.Compiler bound to rc, so every script a
// single Loader.Load session compiles shares rc's heap, number stack,
// and type registry (spec.md §3.4) instead of each getting its own.
func CompileWith(rc *runtime.Context) script.Compiler {
	return func(s *script.Script) error {
		return compileInto(s, rc)
	}
}

func compileInto(s *script.Script, rc *runtime.Context) error {
	protos, err := CompileProgram(s.AST)
	if err != nil {
		return err
	}
	ctx := &Context{
		Script:  s,
		Protos:  protos,
		VM:      NewVMWithRuntime(protos, rc),
		Runtime: rc,
	}
	s.JIT = ctx
	return nil
}

// Run executes the script's compiled main entry exactly once, honoring
// the execute-once guard spec.md §9 recommends modeling as an explicit
// boolean rather than a generated static flag. A repeat call returns
// NULL (spec.md §8), not the cached result of the first run — main's
// side effects fire once; its value is not memoized for re-reading.
// The run is bracketed by this script's own type_list becoming the
// active one (spec.md §4.4.2's save/swap/restore discipline), so any
// MAP literal or type-registry lookup evaluated while main runs resolves
// against this module's own types rather than whichever module called in.
func (c *Context) Run() (item.Item, error) {
	if c.Script.Initialized {
		return item.NullItem, nil
	}
	var result item.Item
	var runErr error
	c.Runtime.Types.WithTypeList(c.Script.TypeList, func() {
		result, runErr = c.VM.Run()
	})
	if runErr != nil {
		return item.ErrorItem, runErr
	}
	c.Script.Initialized = true
	c.Script.MainResult = result
	return result, nil
}

// CallExported invokes a named public function of this script with args
// already resolved to Items — used by the link layer to satisfy a
// cross-module call through a ModuleStub function-pointer slot
// (spec.md §4.4.3/§4.4.5). Bracketed by the same type_list swap as Run,
// since the callee's own type annotations must be active while it runs.
func (c *Context) CallExported(name string, args []item.Item) (item.Item, error) {
	var result item.Item
	var callErr error
	c.Runtime.Types.WithTypeList(c.Script.TypeList, func() {
		result, callErr = c.VM.callNamed(name, args)
	})
	return result, callErr
}

// GetExportedVar reads a named public `let`-bound global of this script
// (spec.md §4.4.1's public variable slots).
func (c *Context) GetExportedVar(name string) (item.Item, bool) {
	v, ok := c.VM.Globals[name]
	return v, ok
}
