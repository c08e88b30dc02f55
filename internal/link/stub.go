// Package link implements Lambda's cross-module link layer (spec.md
// §4.4): the runtime analogue of the transpiled C stubs a Lambda
// compiler would otherwise generate per imported module (a BSS struct
// `Mod{N}` holding a pointer to the importee's const pool, its
// `_mod_main`/`_init_vars` entry points, a table of function pointers,
// and slots for its public variables). This Go port has no C transpile
// step, so ModuleStub is a plain struct populated by direct field
// writes at link time instead of by emitted initializer code — grounded
// on the teacher's internal/vm/vm_imports.go pattern of exposing an
// imported module's namespace as an *evaluator.RecordInstance.
package link

import (
	"golang.org/x/exp/slices"

	"github.com/lambda-lang/lambda/internal/diagnostics"
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/script"
	"github.com/lambda-lang/lambda/internal/token"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// exportedFunc is the indirect invocation contract a compiled script's
// JIT context must satisfy to be callable through a ModuleStub — kept
// as a narrow interface so this package never imports internal/jit
// (mirroring the script<->jit cycle-avoidance already used for the
// Compiler callback).
type exportedFunc interface {
	CallExported(name string, args []item.Item) (item.Item, error)
	GetExportedVar(name string) (item.Item, bool)
	Run() (item.Item, error)
}

// ModuleStub is the record spec.md §4.4.1 describes. The importee's
// const pool and type list are held directly; its init entry point,
// public function table and public variable slots are not separate
// fields but are all reached through entry, the importee's JIT context.
type ModuleStub struct {
	Alias    string // the importer's local name for this module
	Script   *script.Script
	ConstPtr *script.ConstList // consts ptr
	TypePtr  *typesystem.TypeList

	entry exportedFunc // _mod_main / _init_vars / function table / var slots, all reached through the Script's JIT context
}

// NewModuleStub builds the stub an importer links against once the
// importee has finished loading and compiling (spec.md §4.4.1).
func NewModuleStub(alias string, s *script.Script) (*ModuleStub, error) {
	if s.JIT == nil {
		return nil, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk002, token.Token{}, s.Path)
	}
	ef, ok := s.JIT.(exportedFunc)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk002, token.Token{}, s.Path)
	}
	stub := &ModuleStub{
		Alias:    alias,
		Script:   s,
		ConstPtr: s.ConstList,
		TypePtr:  s.TypeList,
		entry:    ef,
	}
	return stub, nil
}

// EnsureInitialized runs the importee's `_mod_main` exactly once before
// any of its exports are used (spec.md §4.4.3/§4.4.4): link-time
// initialization order requires every import to finish running its own
// top level before the importer's own body begins.
func (m *ModuleStub) EnsureInitialized() error {
	_, err := m.entry.Run()
	return err
}

// isExported reports whether name is among s's declared `pub` symbols
// (spec.md §4.4.5: only exported names are resolvable through a stub).
func isExported(s *script.Script, name string) bool {
	return slices.Contains(s.Exports, name)
}

// Call invokes the importee's exported function name through the stub's
// function-pointer table (spec.md §4.4.1 "function pointers", §4.4.5
// "name prefixed by alias").
func (m *ModuleStub) Call(name string, args []item.Item) (item.Item, error) {
	if !isExported(m.Script, name) {
		return item.ErrorItem, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk001, token.Token{}, name, m.Script.Path)
	}
	return m.entry.CallExported(name, args)
}

// Var reads the importee's exported public variable slot name.
func (m *ModuleStub) Var(name string) (item.Item, error) {
	if !isExported(m.Script, name) {
		return item.ErrorItem, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk001, token.Token{}, name, m.Script.Path)
	}
	v, ok := m.entry.GetExportedVar(name)
	if !ok {
		return item.UndefinedItem, nil
	}
	return v, nil
}
