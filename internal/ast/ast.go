// Package ast defines the syntax tree Lambda's front end produces and the
// loader/JIT consume. Per spec.md §6, the AST contract classifies
// top-level nodes as LET_STAM / PUB_STAM / CONTENT / IMPORT / EXPR; each
// carries a stable node id used downstream to generate unique identifiers
// (here: names of anonymous function protos in the jit) — see NodeID.
package ast

import "github.com/lambda-lang/lambda/internal/token"

var nextNodeID int

// NodeID allocates a process-wide unique, stable id for a freshly parsed
// node. A node receives its id when it is built through newBase or on the
// first call to its ID method; it keeps that id afterwards, and no id is
// reused, satisfying the "stable node id" contract of spec.md §6 even
// across the dedup/cache paths in the loader.
func NodeID() int {
	nextNodeID++
	return nextNodeID
}

type Node interface {
	TokenLiteral() string
	ID() int
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

type base struct {
	id int
}

func newBase() base { return base{id: NodeID()} }
func (b *base) ID() int {
	if b.id == 0 {
		b.id = NodeID()
	}
	return b.id
}

// Program is the root node of every file's AST. Kind §6 classification:
// Package/Imports are IMPORT-class, Statements hold LET_STAM/PUB_STAM/CONTENT.
type Program struct {
	base
	Package    *PackageDeclaration
	Imports    []*ImportStatement
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func NewProgram() *Program { return &Program{base: newBase()} }

// PackageDeclaration names the package and what it exports.
// package name (a, b, c) or package name (*)
type PackageDeclaration struct {
	base
	Token     token.Token
	Name      *Identifier
	Exports   []*Identifier
	ExportAll bool
}

func (pd *PackageDeclaration) statementNode()       {}
func (pd *PackageDeclaration) TokenLiteral() string { return pd.Token.Lexeme }

// ImportStatement: import "path" [as alias]  — classified IMPORT in §6.
type ImportStatement struct {
	base
	Token token.Token
	Path  *StringLiteral
	Alias *Identifier
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }

// Identifier, e.g. a variable or function name.
type Identifier struct {
	base
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token  { return i.Token }

// LetStatement: `let name = expr` — classified LET_STAM in §6.
type LetStatement struct {
	base
	Token token.Token
	Pub   bool // true for `pub let` — classified PUB_STAM in §6
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }

// FunctionStatement: `fn name(params) { body }` (or `pub fn`).
type FunctionStatement struct {
	base
	Token  token.Token
	Pub    bool
	Name   *Identifier
	Params []*Identifier
	Body   *BlockExpression
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Lexeme }

// TypeField is one `name: TypeName` entry of a TypeDeclaration's record
// shape.
type TypeField struct {
	Name     *Identifier
	TypeName string
}

// TypeDeclaration: `[pub] type Name = { field: TypeName, ... }`. Only a
// flat record shape is supported — the reduced front end does not parse
// full type expressions (unions, applications, aliases), matching
// SPEC_FULL.md's scope: this exists to exercise the per-module type_list
// registry (spec.md §4.4.2), not to be a complete type-checker surface.
type TypeDeclaration struct {
	base
	Token  token.Token
	Pub    bool
	Name   *Identifier
	Fields []TypeField
}

func (td *TypeDeclaration) statementNode()       {}
func (td *TypeDeclaration) TokenLiteral() string { return td.Token.Lexeme }

// ExpressionStatement wraps a bare expression used for its value or effect
// — classified CONTENT in §6 (the module's returned/printed result).
type ExpressionStatement struct {
	base
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }

// --- Expressions ---

type IntegerLiteral struct {
	base
	Token token.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()       {}
func (n *IntegerLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IntegerLiteral) GetToken() token.Token { return n.Token }

type FloatLiteral struct {
	base
	Token token.Token
	Value float64
}

func (n *FloatLiteral) expressionNode()       {}
func (n *FloatLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FloatLiteral) GetToken() token.Token { return n.Token }

type StringLiteral struct {
	base
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()       {}
func (n *StringLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *StringLiteral) GetToken() token.Token { return n.Token }

type BoolLiteral struct {
	base
	Token token.Token
	Value bool
}

func (n *BoolLiteral) expressionNode()       {}
func (n *BoolLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *BoolLiteral) GetToken() token.Token { return n.Token }

type NullLiteral struct {
	base
	Token token.Token
}

func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

type UndefinedLiteral struct {
	base
	Token token.Token
}

func (n *UndefinedLiteral) expressionNode()       {}
func (n *UndefinedLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *UndefinedLiteral) GetToken() token.Token { return n.Token }

// ListLiteral: [e1, e2, ...]
type ListLiteral struct {
	base
	Token    token.Token
	Elements []Expression
}

func (n *ListLiteral) expressionNode()       {}
func (n *ListLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ListLiteral) GetToken() token.Token { return n.Token }

// MapLiteral: %{k1: v1, k2: v2}
type MapLiteral struct {
	base
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (n *MapLiteral) expressionNode()       {}
func (n *MapLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *MapLiteral) GetToken() token.Token { return n.Token }

type PrefixExpression struct {
	base
	Token    token.Token
	Operator string
	Right    Expression
}

func (n *PrefixExpression) expressionNode()       {}
func (n *PrefixExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *PrefixExpression) GetToken() token.Token { return n.Token }

type InfixExpression struct {
	base
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *InfixExpression) expressionNode()       {}
func (n *InfixExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *InfixExpression) GetToken() token.Token { return n.Token }

// CallExpression: callee(args...). Callee is either a plain Identifier (a
// local reference) or a MemberExpression on an imported module alias —
// the code generator distinguishes the two per §4.4.5.
type CallExpression struct {
	base
	Token    token.Token
	Callee   Expression
	Args     []Expression
}

func (n *CallExpression) expressionNode()       {}
func (n *CallExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *CallExpression) GetToken() token.Token { return n.Token }

// MemberExpression: object.field — also used for `moduleAlias.name` per
// §4.4.5's import name-prefixing.
type MemberExpression struct {
	base
	Token  token.Token
	Object Expression
	Field  *Identifier
}

func (n *MemberExpression) expressionNode()       {}
func (n *MemberExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *MemberExpression) GetToken() token.Token { return n.Token }

type IndexExpression struct {
	base
	Token token.Token
	Left  Expression
	Index Expression
}

func (n *IndexExpression) expressionNode()       {}
func (n *IndexExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IndexExpression) GetToken() token.Token { return n.Token }

// BlockExpression is a `{ stmt; stmt; expr }` sequence; its value is the
// value of the trailing ExpressionStatement, if any, else Undefined.
type BlockExpression struct {
	base
	Token      token.Token
	Statements []Statement
}

func (n *BlockExpression) expressionNode()       {}
func (n *BlockExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *BlockExpression) GetToken() token.Token { return n.Token }

type IfExpression struct {
	base
	Token       token.Token
	Condition   Expression
	Consequence *BlockExpression
	Alternative *BlockExpression
}

func (n *IfExpression) expressionNode()       {}
func (n *IfExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IfExpression) GetToken() token.Token { return n.Token }

// FunctionLiteral: an anonymous `fn(params) { body }` expression.
type FunctionLiteral struct {
	base
	Token  token.Token
	Params []*Identifier
	Body   *BlockExpression
}

func (n *FunctionLiteral) expressionNode()       {}
func (n *FunctionLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FunctionLiteral) GetToken() token.Token { return n.Token }
