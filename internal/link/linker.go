package link

import (
	"github.com/lambda-lang/lambda/internal/diagnostics"
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/script"
	"github.com/lambda-lang/lambda/internal/token"
)

// Linker builds and holds the ModuleStub set for one script's import
// graph and satisfies jit.ImportResolver, so a compiled script's VM can
// reach across into its dependencies' namespaces (spec.md §4.4.5).
type Linker struct {
	stubs map[string]*ModuleStub // by alias, within one importing script
	order []string               // declaration order, for deterministic init
}

// NewLinker builds the link table for s (spec.md §4.4.3): for each
// import, in declaration order, it builds a ModuleStub and binds it
// under the alias the loader recorded in s.ImportAliases. It runs no
// module code; InitAll runs each importee's main exactly once (its own
// Initialized guard makes repeat calls, from a diamond-shaped import
// graph, free). Swapping in a module's own type list while its code runs
// is done by jit.Context via typesystem.Context.WithTypeList, not here,
// and cmd/lambda calls InitAll before the importer's own jit.Context.Run.
func NewLinker(s *script.Script) (*Linker, error) {
	l := &Linker{stubs: make(map[string]*ModuleStub), order: append([]string(nil), s.ImportAliases...)}
	for i, dep := range s.Imports {
		alias := s.ImportAliases[i]
		stub, err := NewModuleStub(alias, dep)
		if err != nil {
			return nil, err
		}
		l.stubs[alias] = stub
	}
	return l, nil
}

// InitAll runs every linked import's top level exactly once, in
// declaration order (spec.md §5's ordering guarantee), before the
// importer's own body is allowed to run.
func (l *Linker) InitAll() error {
	for _, alias := range l.order {
		if err := l.stubs[alias].EnsureInitialized(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveVar satisfies jit.ImportResolver: `alias.name` reads.
func (l *Linker) ResolveVar(alias, name string) (item.Item, error) {
	stub, ok := l.stubs[alias]
	if !ok {
		return item.ErrorItem, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk001, token.Token{}, alias+"."+name, "<unresolved alias>")
	}
	return stub.Var(name)
}

// ResolveCall satisfies jit.ImportResolver: `alias.name(args...)` calls.
func (l *Linker) ResolveCall(alias, name string, args []item.Item) (item.Item, error) {
	stub, ok := l.stubs[alias]
	if !ok {
		return item.ErrorItem, diagnostics.New(diagnostics.PhaseLink, diagnostics.ErrLk001, token.Token{}, alias+"."+name, "<unresolved alias>")
	}
	return stub.Call(name, args)
}
