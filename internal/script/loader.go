package script

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lambda-lang/lambda/internal/ast"
	"github.com/lambda-lang/lambda/internal/config"
	"github.com/lambda-lang/lambda/internal/diagnostics"
	"github.com/lambda-lang/lambda/internal/lexer"
	"github.com/lambda-lang/lambda/internal/parser"
	"github.com/lambda-lang/lambda/internal/pipeline"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// Compiler runs transpilation + JIT compilation against a freshly
// AST-built Script, attaching its JIT context and main entry (spec.md
// §4.3 step 6). Injected by the caller (cmd/lambda wires this to
// internal/jit.CompileWith) so this package never imports internal/jit —
// that would otherwise form a cycle, since the jit compiler itself needs
// *script.Script.
type Compiler func(s *Script) error

// Loader resolves, dedups, and cycle-checks a program's import graph
// (component C, spec.md §4.3).
type Loader struct {
	scripts  map[string]*Script // by canonical path
	stack    []string           // ordered load stack, for cycle-chain reporting
	stacking map[string]bool
	nextIdx  int
	compile  Compiler
}

func NewLoader(compile Compiler) *Loader {
	return &Loader{
		scripts:  make(map[string]*Script),
		stacking: make(map[string]bool),
		compile:  compile,
	}
}

// Canonicalize maps a dot-separated import path to an absolute slash
// path with the configured source extension, relative to fromDir
// (spec.md §4.3 step 1: "dot-separated paths map to slash-separated
// file paths with .ls extension").
func Canonicalize(importPath, fromDir string) string {
	rel := strings.ReplaceAll(importPath, ".", string(filepath.Separator))
	hasExt := false
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(rel, ext) {
			hasExt = true
			break
		}
	}
	if !hasExt {
		rel += config.SourceFileExt
	}
	joined := filepath.Join(fromDir, rel)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// Load implements spec.md §4.3's load_script(runtime, path, is_main).
func (l *Loader) Load(path string, isMain bool) (*Script, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Step 2/3: already-known path — either a cycle or a dedup hit.
	if existing, ok := l.scripts[absPath]; ok {
		if existing.IsLoading {
			chain := append(append([]string{}, l.stack...), absPath)
			return nil, diagnostics.NewCycle(chain)
		}
		return existing, nil
	}

	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	// Step 4: allocate, mark loading, push onto the load stack.
	s := &Script{
		Path:      absPath,
		Index:     l.nextIdx,
		IsMain:    isMain,
		IsLoading: true,
		Source:    string(source),
		Scope:     NewScope(),
		ConstList: NewConstList(),
		TypeList:  typesystem.NewTypeList(),
	}
	l.nextIdx++
	l.scripts[absPath] = s
	l.stack = append(l.stack, absPath)
	l.stacking[absPath] = true
	defer func() {
		l.stack = l.stack[:len(l.stack)-1]
		delete(l.stacking, absPath)
		s.IsLoading = false
	}()

	// Step 5: parse, then eagerly and depth-first resolve every import.
	prog, perr := l.parse(s)
	if perr != nil {
		return nil, perr
	}
	s.AST = prog

	dir := filepath.Dir(absPath)
	for _, imp := range prog.Imports {
		depPath := Canonicalize(imp.Path.Value, dir)
		dep, err := l.Load(depPath, false)
		if err != nil {
			if cyc, ok := err.(*diagnostics.Error); ok && cyc.Code == diagnostics.ErrLd001 {
				return nil, err
			}
			return nil, diagnostics.New(diagnostics.PhaseLoader, diagnostics.ErrLd004, imp.Token, imp.Path.Value)
		}
		s.Imports = append(s.Imports, dep)
		alias := baseName(depPath)
		if imp.Alias != nil {
			alias = imp.Alias.Value
		}
		s.ImportAliases = append(s.ImportAliases, alias)
	}

	// Register every top-level type declaration into this script's
	// module-local type_list (spec.md §3.3, §4.4.2) regardless of
	// export status — non-exported shapes are still resolved locally.
	for _, stmt := range prog.Statements {
		if td, ok := stmt.(*ast.TypeDeclaration); ok {
			shape := typesystem.TypeMapShape{Name: td.Name.Value}
			for _, f := range td.Fields {
				shape.Fields = append(shape.Fields, typesystem.FieldShape{
					Name: f.Name.Value,
					Type: typesystem.TCon{Name: f.TypeName},
				})
			}
			s.TypeList.Add(shape.AsRecord())
		}
	}

	if prog.Package != nil {
		if prog.Package.ExportAll {
			for _, stmt := range prog.Statements {
				if let, ok := stmt.(*ast.LetStatement); ok && let.Pub {
					s.Exports = append(s.Exports, let.Name.Value)
				}
				if fn, ok := stmt.(*ast.FunctionStatement); ok && fn.Pub {
					s.Exports = append(s.Exports, fn.Name.Value)
				}
				if td, ok := stmt.(*ast.TypeDeclaration); ok && td.Pub {
					s.Exports = append(s.Exports, td.Name.Value)
				}
			}
		} else {
			for _, e := range prog.Package.Exports {
				s.Exports = append(s.Exports, e.Value)
			}
		}
	}

	// Step 6: transpile + JIT compile. A nil/erroring compile leaves the
	// script uncompiled; callers must never execute it (step 8).
	if l.compile != nil {
		if err := l.compile(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (l *Loader) parse(s *Script) (*ast.Program, error) {
	ctx := pipeline.NewPipelineContext(s.Source)
	ctx.FilePath = s.Path
	lx := lexer.New(s.Source)
	ctx.TokenStream = lexer.NewTokenStream(lx)
	p := parser.New(ctx.TokenStream, ctx)
	prog := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	return prog, nil
}

// baseName strips a path's directory and source extension, giving the
// default import alias when no `as` clause is present (spec.md §4.3
// step 1: "the alias defaults to the final segment of the import path").
func baseName(path string) string {
	start := 0
	end := len(path)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			start = i + 1
			break
		}
	}
	for i := end - 1; i >= start; i-- {
		if path[i] == '.' {
			end = i
			break
		}
	}
	return path[start:end]
}

// Get returns a previously loaded script by canonical path, if any.
func (l *Loader) Get(path string) (*Script, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	s, ok := l.scripts[absPath]
	return s, ok
}

// All returns every loaded script, for diagnostics/tests.
func (l *Loader) All() []*Script {
	out := make([]*Script, 0, len(l.scripts))
	for _, s := range l.scripts {
		out = append(out, s)
	}
	return out
}
