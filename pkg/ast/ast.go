// Package ast defines the abstract syntax tree of leaplang programs.
//
// The tree is a closed sum type: every node implements Node through an
// unexported marker method, so only this package can add node kinds. A
// parent exclusively owns its children and nodes are never shared.
package ast

import "github.com/leapstack-labs/leaplang/pkg/token"

// Kind identifies the variant of a node.
type Kind int

// Kind constants, one per node type.
const (
	KindProgram Kind = iota
	KindBlock
	KindDecl
	KindAssign
	KindIf
	KindBinary
	KindLiteral
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "Block"
	case KindDecl:
		return "Decl"
	case KindAssign:
		return "Assign"
	case KindIf:
		return "If"
	case KindBinary:
		return "Binary"
	case KindLiteral:
		return "Literal"
	case KindIdentifier:
		return "Identifier"
	default:
		return "Node"
	}
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is the interface for all AST nodes.
type Node interface {
	Kind() Kind
	// Token is the token that introduced the node. It supplies the source
	// position and, for operators and declarations, the operative text.
	Token() token.Token
	// Value is the display value: a variable name, an operator symbol, a
	// literal lexeme, or a marker such as "program".
	Value() string
	// Children returns the child nodes in their fixed order.
	Children() []Node
	node() // marker method to restrict implementation
}

// Stmt is a node that can appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// nodeBase provides the token shared by all nodes.
type nodeBase struct {
	tok token.Token
}

func (n *nodeBase) Token() token.Token { return n.tok }
func (n *nodeBase) node()              {}

// Pos returns the position of the node's token.
func (n *nodeBase) Pos() token.Position { return n.tok.Pos }

// Program is the root of a parsed source file.
type Program struct {
	nodeBase
	Stmts []Stmt
}

// NewProgram creates a Program node.
func NewProgram(tok token.Token, stmts []Stmt) *Program {
	return &Program{nodeBase: nodeBase{tok: tok}, Stmts: stmts}
}

func (n *Program) Kind() Kind       { return KindProgram }
func (n *Program) Value() string    { return "program" }
func (n *Program) Children() []Node { return stmtChildren(n.Stmts) }

// Block is a braced statement list. Blocks do not open a scope.
type Block struct {
	nodeBase
	Stmts []Stmt
}

// NewBlock creates a Block node; tok is the opening brace.
func NewBlock(tok token.Token, stmts []Stmt) *Block {
	return &Block{nodeBase: nodeBase{tok: tok}, Stmts: stmts}
}

func (n *Block) Kind() Kind       { return KindBlock }
func (n *Block) Value() string    { return "block" }
func (n *Block) Children() []Node { return stmtChildren(n.Stmts) }
func (n *Block) stmtNode()        {}

// Decl declares a variable, optionally with an initializer.
// Its token is the type keyword.
type Decl struct {
	nodeBase
	Name *Identifier
	Init Expr // nil when there is no initializer
}

// NewDecl creates a Decl node; typeTok is the type keyword.
func NewDecl(typeTok token.Token, name *Identifier, init Expr) *Decl {
	return &Decl{nodeBase: nodeBase{tok: typeTok}, Name: name, Init: init}
}

func (n *Decl) Kind() Kind    { return KindDecl }
func (n *Decl) Value() string { return n.Name.Name() }
func (n *Decl) Children() []Node {
	if n.Init == nil {
		return []Node{n.Name}
	}
	return []Node{n.Name, n.Init}
}
func (n *Decl) stmtNode() {}

// TypeName returns the type keyword of the declaration.
func (n *Decl) TypeName() string { return n.tok.Lexeme }

// Assign stores the value of an expression in a variable.
// Its token is the target identifier.
type Assign struct {
	nodeBase
	Target *Identifier
	Expr   Expr
}

// NewAssign creates an Assign node.
func NewAssign(target *Identifier, expr Expr) *Assign {
	return &Assign{nodeBase: nodeBase{tok: target.tok}, Target: target, Expr: expr}
}

func (n *Assign) Kind() Kind       { return KindAssign }
func (n *Assign) Value() string    { return "=" }
func (n *Assign) Children() []Node { return []Node{n.Target, n.Expr} }
func (n *Assign) stmtNode()        {}

// If is a conditional with an optional else branch.
type If struct {
	nodeBase
	Cond Expr
	Then Stmt
	Else Stmt // nil when there is no else branch
}

// NewIf creates an If node; tok is the `if` keyword.
func NewIf(tok token.Token, cond Expr, then, els Stmt) *If {
	return &If{nodeBase: nodeBase{tok: tok}, Cond: cond, Then: then, Else: els}
}

func (n *If) Kind() Kind    { return KindIf }
func (n *If) Value() string { return "if" }
func (n *If) Children() []Node {
	if n.Else == nil {
		return []Node{n.Cond, n.Then}
	}
	return []Node{n.Cond, n.Then, n.Else}
}
func (n *If) stmtNode() {}

// Binary applies an infix operator to two operands.
// Its token is the operator.
type Binary struct {
	nodeBase
	Left  Expr
	Right Expr
}

// NewBinary creates a Binary node.
func NewBinary(op token.Token, left, right Expr) *Binary {
	return &Binary{nodeBase: nodeBase{tok: op}, Left: left, Right: right}
}

func (n *Binary) Kind() Kind       { return KindBinary }
func (n *Binary) Value() string    { return n.tok.Lexeme }
func (n *Binary) Children() []Node { return []Node{n.Left, n.Right} }
func (n *Binary) exprNode()        {}

// Op returns the operator symbol.
func (n *Binary) Op() string { return n.tok.Lexeme }

// Literal is an integer, real, string or boolean constant.
type Literal struct {
	nodeBase
}

// NewLiteral creates a Literal node.
func NewLiteral(tok token.Token) *Literal {
	return &Literal{nodeBase: nodeBase{tok: tok}}
}

func (n *Literal) Kind() Kind       { return KindLiteral }
func (n *Literal) Value() string    { return n.tok.Lexeme }
func (n *Literal) Children() []Node { return nil }
func (n *Literal) exprNode()        {}

// Identifier is a reference to a variable.
type Identifier struct {
	nodeBase
}

// NewIdentifier creates an Identifier node.
func NewIdentifier(tok token.Token) *Identifier {
	return &Identifier{nodeBase: nodeBase{tok: tok}}
}

func (n *Identifier) Kind() Kind       { return KindIdentifier }
func (n *Identifier) Value() string    { return n.tok.Lexeme }
func (n *Identifier) Children() []Node { return nil }
func (n *Identifier) exprNode()        {}

// Name returns the variable name.
func (n *Identifier) Name() string { return n.tok.Lexeme }

func stmtChildren(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}
