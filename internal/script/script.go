// Package script implements the module loader (component C, spec.md
// §3.3/§4.3): the Script record and the Loader that resolves, dedups,
// and cycle-checks a program's import graph. Grounded on the teacher's
// internal/modules.Loader (map-keyed cache + Processing cycle-detection
// set), generalized with an ordered load stack so the cycle error can
// report the full "A → B → A" chain spec.md §8 scenario 3 requires.
package script

import (
	"github.com/lambda-lang/lambda/internal/ast"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// Script is a loaded module (spec.md §3.3): "reference path, a unique
// index (used for link-stub naming), is_main/is_loading flags, source
// text, AST root, current name scope, its own const_list, its own
// type_list, a JIT context, and a compiled main entry point."
type Script struct {
	Path      string // canonical absolute path
	Index     int    // unique per loader, assigned in load order
	IsMain    bool
	IsLoading bool

	Source string
	AST    *ast.Program

	Scope *Scope

	ConstList *ConstList
	TypeList  *typesystem.TypeList

	// JIT is populated by the caller (internal/jit) once this script's
	// AST has been compiled. A nil JIT means compilation failed or has
	// not yet run — importers must treat that as load failure (spec.md
	// §4.3 step 8) and must never execute a partially-compiled module.
	JIT any

	// Initialized is the execute-once guard of spec.md §4.4.4, kept as a
	// plain field of the module record instead of a generated static
	// boolean. internal/jit's Context.Run sets it on the first run and
	// returns NULL without running the body again on later calls.
	Initialized bool
	MainResult  any

	// Imports lists, in declaration order, the scripts this one imports
	// — used both to drive link-time initialization (internal/link) and
	// to reproduce the depth-first declaration-order guarantee of
	// spec.md §5 ("Ordering guarantees"). ImportAliases is parallel to
	// Imports: the importer's `as` alias, or the import path's final
	// segment when no alias was given (spec.md §4.3 step 1).
	Imports       []*Script
	ImportAliases []string

	// Exports names every symbol this module exposes — the
	// import-name-prefixing rule of spec.md §4.4.5 resolves against this
	// list. With `package name (*)` it holds every `pub let`/`pub fn`/`pub
	// type` in declaration order; with an explicit list it holds the
	// listed names in the clause's order; without a package clause it is
	// empty.
	Exports []string
}

// Scope is the current name table a script's top level resolves
// against — a flat map is sufficient here since this reduced front end
// has no nested block-scoping beyond function bodies (handled by the
// jit package's own local-variable table).
type Scope struct {
	names map[string]bool
}

func NewScope() *Scope { return &Scope{names: make(map[string]bool)} }

func (s *Scope) Declare(name string) { s.names[name] = true }
func (s *Scope) Has(name string) bool { return s.names[name] }

// ConstList is the module-local constant table of spec.md §3.3/§4.4.2:
// "its own const_list (module-local constant table, indexed by
// integer)". Indices are meaningful only within the owning Script.
type ConstList struct {
	values []any
}

func NewConstList() *ConstList { return &ConstList{} }

func (cl *ConstList) Add(v any) int {
	cl.values = append(cl.values, v)
	return len(cl.values) - 1
}

func (cl *ConstList) At(idx int) (any, bool) {
	if idx < 0 || idx >= len(cl.values) {
		return nil, false
	}
	return cl.values[idx], true
}

func (cl *ConstList) Len() int { return len(cl.values) }
