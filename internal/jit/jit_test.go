package jit

import (
	"testing"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/lexer"
	"github.com/lambda-lang/lambda/internal/parser"
	"github.com/lambda-lang/lambda/internal/pipeline"
)

func parseProgram(t *testing.T, src string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	lx := lexer.New(src)
	ctx.TokenStream = lexer.NewTokenStream(lx)
	p := parser.New(ctx.TokenStream, ctx)
	ctx.AstRoot = p.ParseProgram()
	return ctx
}

func TestCompileAndRunArithmetic(t *testing.T) {
	ctx := parseProgram(t, `1 + 2 * 3;`)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	protos, err := CompileProgram(ctx.AstRoot)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	vm := NewVM(protos)
	if _, err := vm.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestCompileAndRunLetAndGlobal(t *testing.T) {
	ctx := parseProgram(t, `let x = 10; x + 5;`)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	protos, err := CompileProgram(ctx.AstRoot)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	vm := NewVM(protos)
	result, err := vm.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Tag() != item.Int || result.IntValue() != 15 {
		t.Fatalf("expected INT(15), got tag=%v payload=%v", result.Tag(), result.Payload())
	}
}

func TestCompileAndRunFunctionCall(t *testing.T) {
	ctx := parseProgram(t, `fn add(a, b) { a + b } add(2, 3);`)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	protos, err := CompileProgram(ctx.AstRoot)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := protos["add"]; !ok {
		t.Fatalf("expected proto %q to be compiled", "add")
	}
	vm := NewVM(protos)
	result, err := vm.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Tag() != item.Int || result.IntValue() != 5 {
		t.Fatalf("expected INT(5), got tag=%v payload=%v", result.Tag(), result.Payload())
	}
}

func TestCompileAndRunIfExpression(t *testing.T) {
	ctx := parseProgram(t, `let x = if (1 < 2) { 100 } else { 200 }; x;`)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	protos, err := CompileProgram(ctx.AstRoot)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	vm := NewVM(protos)
	result, err := vm.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Tag() != item.Int || result.IntValue() != 100 {
		t.Fatalf("expected INT(100), got tag=%v payload=%v", result.Tag(), result.Payload())
	}
}

func TestListAndIndex(t *testing.T) {
	ctx := parseProgram(t, `let xs = [1, 2, 3]; xs[1];`)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	protos, err := CompileProgram(ctx.AstRoot)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	vm := NewVM(protos)
	result, err := vm.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Tag() != item.Int || result.IntValue() != 2 {
		t.Fatalf("expected INT(2), got tag=%v payload=%v", result.Tag(), result.Payload())
	}
}

func TestChunkSerializeRoundTrip(t *testing.T) {
	c := NewChunk("main")
	idx := c.AddConstant(item.MakeInt(42), "")
	c.WriteOp(OpConst, 1)
	c.WriteUint16(uint16(idx), 1)
	c.WriteOp(OpReturn, 1)

	data, err := c.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got.Name != c.Name || got.Len() != c.Len() {
		t.Fatalf("round-trip mismatch: got %+v", got)
	}
}
