// Package diagnostics carries structured, positioned errors across every
// phase of the runtime: tokenizing, parsing, module loading, linking, and
// (for internal invariant violations only, never user-level type errors)
// execution. Per spec.md §7, user-visible runtime type errors never surface
// as a Go error — they live in the Item stream as the ERROR tag and are
// tested for by callers, not wrapped here.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/lambda-lang/lambda/internal/token"
)

// Phase identifies where in the pipeline an error originated.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
	PhaseLoader Phase = "loader"
	PhaseLink   Phase = "link"
	PhaseJIT    Phase = "jit"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // invalid character
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected identifier
	ErrP003 ErrorCode = "P003" // could not parse number literal
	ErrP004 ErrorCode = "P004" // no prefix parse function
	ErrP005 ErrorCode = "P005" // expected closing delimiter
	ErrP006 ErrorCode = "P006" // invalid import syntax

	ErrLd001 ErrorCode = "Ld001" // circular import
	ErrLd002 ErrorCode = "Ld002" // no source files found
	ErrLd003 ErrorCode = "Ld003" // mixed package declarations in one directory
	ErrLd004 ErrorCode = "Ld004" // import of a module whose compilation failed

	ErrLk001 ErrorCode = "Lk001" // unresolved public symbol at link time
	ErrLk002 ErrorCode = "Lk002" // link attempted against an uncompiled module

	ErrJ001 ErrorCode = "J001" // compile error (type mismatch, unresolved name, ...)
)

var errorTemplates = map[ErrorCode]string{
	ErrL001:  "invalid character: %q",
	ErrP001:  "unexpected token: expected %q, got %q",
	ErrP002:  "expected an identifier",
	ErrP003:  "could not parse %q as a number literal",
	ErrP004:  "no prefix parse function for %q",
	ErrP005:  "expected closing %q, got %q instead",
	ErrP006:  "invalid import syntax: %s",
	ErrLd001: "circular import detected: %s",
	ErrLd002: "no source files with extension %q found in %s",
	ErrLd003: "multiple package names in directory %s: %s and %s",
	ErrLd004: "import of %q failed: dependent module did not compile",
	ErrLk001: "unresolved public symbol %q in module %q",
	ErrLk002: "cannot link against %q: module has no compiled JIT context",
	ErrJ001:  "%s",
}

// Error is a single positioned diagnostic. Chain carries the import-path
// sequence for a circular-import report (spec.md §8 scenario 3: "A → B → A").
type Error struct {
	Code  ErrorCode
	Phase Phase
	Args  []any
	Tok   token.Token
	File  string
	Chain []string
}

func (e *Error) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		template = string(e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)

	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%s: ", e.File)
	}
	if e.Phase != "" {
		fmt.Fprintf(&b, "[%s] ", e.Phase)
	}
	if e.Tok.Line > 0 {
		fmt.Fprintf(&b, "error at %d:%d [%s]: %s", e.Tok.Line, e.Tok.Column, e.Code, message)
	} else {
		fmt.Fprintf(&b, "error [%s]: %s", e.Code, message)
	}
	if len(e.Chain) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Chain, " → "))
	}
	return b.String()
}

// New builds a positioned error for the given phase.
func New(phase Phase, code ErrorCode, tok token.Token, args ...any) *Error {
	return &Error{Code: code, Phase: phase, Tok: tok, Args: args}
}

// NewCycle builds the circular-import error of spec.md §4.3 step 2, §8
// scenario 3. chain is the load-stack path, oldest first, with the
// reentered module repeated at the end (e.g. ["A", "B", "A"]).
func NewCycle(chain []string) *Error {
	return &Error{
		Code:  ErrLd001,
		Phase: PhaseLoader,
		Args:  []any{strings.Join(chain, " → ")},
		Chain: chain,
	}
}
