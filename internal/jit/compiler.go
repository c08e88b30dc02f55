package jit

import (
	"fmt"

	"github.com/lambda-lang/lambda/internal/ast"
	"github.com/lambda-lang/lambda/internal/item"
)

// FunctionProto is a compiled function: its own chunk plus parameter
// names (resolved to local slots at call time). The top-level script
// body compiles to the proto named "main" — the Go-native analogue of
// the link layer's `_mod_main` field (spec.md §4.4.1).
type FunctionProto struct {
	Name   string
	Params []string
	Chunk  *Chunk
}

// compiler walks one script's AST and emits one FunctionProto per
// function plus a "main" proto for the top-level statement sequence.
// Grounded on the teacher's evaluator tree-walk structure, retargeted
// to bytecode emission instead of direct interpretation.
type compiler struct {
	protos  map[string]*FunctionProto
	chunk   *Chunk
	locals  []string // local slot names for the function currently compiling
	errs    []error
}

func newCompiler() *compiler {
	return &compiler{protos: make(map[string]*FunctionProto)}
}

// CompileProgram compiles prog into a set of function protos, returning
// the "main" proto and any compile-time errors encountered. "main"
// returns the value of the final top-level expression statement, or
// UNDEFINED when the script does not end in one.
func CompileProgram(prog *ast.Program) (map[string]*FunctionProto, error) {
	c := newCompiler()

	mainChunk := NewChunk("main")
	c.chunk = mainChunk
	for i, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok && i == len(prog.Statements)-1 {
			c.compileExpression(es.Expression)
			continue
		}
		c.compileStatement(stmt)
	}
	c.emit(OpReturn, 0)
	c.protos["main"] = &FunctionProto{Name: "main", Chunk: mainChunk}

	if len(c.errs) > 0 {
		return nil, c.errs[0]
	}
	return c.protos, nil
}

func (c *compiler) emit(op Opcode, line int) { c.chunk.WriteOp(op, line) }

func (c *compiler) emitConst(v item.Item, s string, line int) {
	idx := c.chunk.AddConstant(v, s)
	c.emit(OpConst, line)
	c.chunk.WriteUint16(uint16(idx), line)
}

func (c *compiler) fail(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("jit: "+format, args...))
}

func (c *compiler) compileStatement(stmt ast.Statement) {
	line := 0
	switch s := stmt.(type) {
	case *ast.LetStatement:
		c.compileExpression(s.Value)
		c.emit(OpDefineGlobal, line)
		idx := c.chunk.AddConstant(item.NullItem, s.Name.Value)
		c.chunk.WriteUint16(uint16(idx), line)

	case *ast.FunctionStatement:
		c.compileFunction(s.Name.Value, s.Params, s.Body)

	case *ast.TypeDeclaration:
		// Type declarations carry no runtime bytecode — they are resolved
		// entirely at load time into the script's TypeList (spec.md §4.4.2).

	case *ast.ExpressionStatement:
		c.compileExpression(s.Expression)
		c.emit(OpPop, line)

	default:
		c.fail("unsupported statement node %T", stmt)
	}
}

// compileFunction compiles a named function into its own proto; params
// are bound to local slots 0..len(params)-1 by the call convention.
func (c *compiler) compileFunction(name string, params []*ast.Identifier, body *ast.BlockExpression) {
	sub := newCompiler()
	sub.protos = c.protos
	sub.chunk = NewChunk(name)
	for _, p := range params {
		sub.locals = append(sub.locals, p.Value)
	}
	sub.compileBlockValue(body)
	sub.emit(OpReturn, 0)
	if len(sub.errs) > 0 {
		c.errs = append(c.errs, sub.errs...)
	}

	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Value
	}
	c.protos[name] = &FunctionProto{Name: name, Params: paramNames, Chunk: sub.chunk}
}

// compileBlockValue emits code for a block's statements, leaving the
// value of the final ExpressionStatement (if any) on the stack; empty
// blocks and blocks ending in a non-expression statement push UNDEFINED.
func (c *compiler) compileBlockValue(b *ast.BlockExpression) {
	if len(b.Statements) == 0 {
		c.emitConst(item.UndefinedItem, "", 0)
		return
	}
	for i, stmt := range b.Statements {
		last := i == len(b.Statements)-1
		if es, ok := stmt.(*ast.ExpressionStatement); ok && last {
			c.compileExpression(es.Expression)
			continue
		}
		c.compileStatement(stmt)
		if last {
			c.emitConst(item.UndefinedItem, "", 0)
		}
	}
}

func (c *compiler) resolveLocal(name string) (int, bool) {
	for i, n := range c.locals {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (c *compiler) compileExpression(expr ast.Expression) {
	line := 0
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		c.emitConst(item.MakeInt(int32(e.Value)), "", line)

	case *ast.FloatLiteral:
		c.emitConst(item.Make(item.Float, 0), fmt.Sprintf("%g", e.Value), line)

	case *ast.StringLiteral:
		c.emitConst(item.Make(item.String, 0), e.Value, line)

	case *ast.BoolLiteral:
		if e.Value {
			c.emit(OpTrue, line)
		} else {
			c.emit(OpFalse, line)
		}

	case *ast.NullLiteral:
		c.emit(OpNull, line)

	case *ast.UndefinedLiteral:
		c.emit(OpUndefined, line)

	case *ast.Identifier:
		if idx, ok := c.resolveLocal(e.Value); ok {
			c.emit(OpGetLocal, line)
			c.chunk.WriteUint16(uint16(idx), line)
			return
		}
		c.emit(OpGetGlobal, line)
		idx := c.chunk.AddConstant(item.NullItem, e.Value)
		c.chunk.WriteUint16(uint16(idx), line)

	case *ast.PrefixExpression:
		c.compileExpression(e.Right)
		switch e.Operator {
		case "-":
			c.emit(OpNeg, line)
		case "!":
			c.emit(OpNot, line)
		default:
			c.fail("unsupported prefix operator %q", e.Operator)
		}

	case *ast.InfixExpression:
		c.compileInfix(e)

	case *ast.ListLiteral:
		for _, el := range e.Elements {
			c.compileExpression(el)
		}
		c.emit(OpMakeList, line)
		c.chunk.WriteUint16(uint16(len(e.Elements)), line)

	case *ast.MapLiteral:
		for i := range e.Keys {
			c.compileExpression(e.Keys[i])
			c.compileExpression(e.Values[i])
		}
		c.emit(OpMakeMap, line)
		c.chunk.WriteUint16(uint16(len(e.Keys)), line)

	case *ast.IndexExpression:
		c.compileExpression(e.Left)
		c.compileExpression(e.Index)
		c.emit(OpIndex, line)

	case *ast.MemberExpression:
		// alias.name on an imported module resolves through the link
		// layer (spec.md §4.4.5). Any member access whose receiver is a
		// bare identifier compiles to OpGetImportVar, so it is always
		// treated as an import lookup; OpMember is emitted only for other
		// receiver expressions (a call result, an index, a literal).
		if obj, ok := e.Object.(*ast.Identifier); ok {
			c.emit(OpGetImportVar, line)
			aidx := c.chunk.AddConstant(item.NullItem, obj.Value)
			c.chunk.WriteUint16(uint16(aidx), line)
			nidx := c.chunk.AddConstant(item.NullItem, e.Field.Value)
			c.chunk.WriteUint16(uint16(nidx), line)
			return
		}
		c.compileExpression(e.Object)
		c.emit(OpMember, line)
		idx := c.chunk.AddConstant(item.NullItem, e.Field.Value)
		c.chunk.WriteUint16(uint16(idx), line)

	case *ast.CallExpression:
		for _, a := range e.Args {
			c.compileExpression(a)
		}
		if mem, ok := e.Callee.(*ast.MemberExpression); ok {
			if alias, ok := mem.Object.(*ast.Identifier); ok {
				c.emit(OpCallImport, line)
				aidx := c.chunk.AddConstant(item.NullItem, alias.Value)
				c.chunk.WriteUint16(uint16(aidx), line)
				nidx := c.chunk.AddConstant(item.NullItem, mem.Field.Value)
				c.chunk.WriteUint16(uint16(nidx), line)
				c.chunk.WriteUint16(uint16(len(e.Args)), line)
				return
			}
		}
		if ident, ok := e.Callee.(*ast.Identifier); ok {
			c.emit(OpCall, line)
			idx := c.chunk.AddConstant(item.NullItem, ident.Value)
			c.chunk.WriteUint16(uint16(idx), line)
			c.chunk.WriteUint16(uint16(len(e.Args)), line)
			return
		}
		c.fail("unsupported call callee %T", e.Callee)

	case *ast.BlockExpression:
		c.compileBlockValue(e)

	case *ast.IfExpression:
		c.compileExpression(e.Condition)
		c.emit(OpJumpIfFalse, line)
		jumpElsePos := c.chunk.Len()
		c.chunk.WriteUint16(0, line)

		c.compileBlockValue(e.Consequence)
		c.emit(OpJump, line)
		jumpEndPos := c.chunk.Len()
		c.chunk.WriteUint16(0, line)

		elseTarget := c.chunk.Len()
		c.patchUint16(jumpElsePos, elseTarget)
		if e.Alternative != nil {
			c.compileBlockValue(e.Alternative)
		} else {
			c.emitConst(item.UndefinedItem, "", line)
		}
		endTarget := c.chunk.Len()
		c.patchUint16(jumpEndPos, endTarget)

	case *ast.FunctionLiteral:
		name := fmt.Sprintf("$anon%d", e.ID())
		c.compileFunction(name, e.Params, e.Body)
		c.emitConst(item.Make(item.Func, 0), name, line)

	default:
		c.fail("unsupported expression node %T", expr)
	}
}

func (c *compiler) patchUint16(pos int, v int) {
	c.chunk.Code[pos] = byte(v >> 8)
	c.chunk.Code[pos+1] = byte(v)
}

var infixOps = map[string]Opcode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpMod,
	"&": OpBitAnd, "|": OpBitOr, "^": OpBitXor,
	"++": OpConcat,
	"&&": OpLogAnd, "||": OpLogOr,
	"==": OpEq, "!=": OpNotEq,
	"<": OpLt, ">": OpGt, "<=": OpLte, ">=": OpGte,
}

func (c *compiler) compileInfix(e *ast.InfixExpression) {
	op, ok := infixOps[e.Operator]
	if !ok {
		c.fail("unsupported infix operator %q", e.Operator)
		return
	}
	c.compileExpression(e.Left)
	c.compileExpression(e.Right)
	c.emit(op, 0)
}
