package pipeline

import (
	"github.com/lambda-lang/lambda/internal/ast"
	"github.com/lambda-lang/lambda/internal/diagnostics"
)

// PipelineContext holds all the data passed between pipeline stages:
// lexing, parsing, and (in internal/script) loading.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream TokenStream
	AstRoot     *ast.Program
	Errors      []*diagnostics.Error
}

// NewPipelineContext creates and initializes a new PipelineContext.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Errors:     []*diagnostics.Error{},
	}
}
