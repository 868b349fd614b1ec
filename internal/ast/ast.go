// Package ast defines the syntax tree handed over by the external
// front end (tokenizer + recursive-descent parser).
//
// The tree is pure syntax: node kind, optional literal text, 1-based
// line/column, ordered children. All semantic information lives in the
// symbol table and the annotated tree, never on these nodes.
package ast

import "github.com/fabianreyesmn/pygframe/internal/source"

// Node kinds produced by the parser. Binary operator nodes use the
// operator itself as their kind ("+", "&&", ...), as does unary "!".
const (
	KindProgram       = "Program"
	KindBlock         = "Block"
	KindVarDecl       = "VarDecl"
	KindAssign        = "Assign"
	KindIf            = "If"
	KindWhile         = "While"
	KindDoUntil       = "DoUntil"
	KindRead          = "Read"
	KindWrite         = "Write"
	KindIdentifier    = "Identifier"
	KindIntLiteral    = "IntLiteral"
	KindFloatLiteral  = "FloatLiteral"
	KindBoolLiteral   = "BoolLiteral"
	KindStringLiteral = "StringLiteral"
	KindNot           = "!"
)

// Node is a single syntax-tree node.
//
// Identity is positional: two nodes are "the same node" only when they
// are the same pointer.
type Node struct {
	Kind     string  `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Line     int     `json:"line"`
	Column   int     `json:"column"`
	Children []*Node `json:"children,omitempty"`
}

// New creates a node. Used by tests and by tooling that builds trees
// programmatically instead of decoding them.
func New(kind, text string, line, column int, children ...*Node) *Node {
	return &Node{
		Kind:     kind,
		Text:     text,
		Line:     line,
		Column:   column,
		Children: children,
	}
}

// Loc returns the node's source location.
func (n *Node) Loc() *source.Location {
	return source.NewLocation(n.Line, n.Column)
}

// Child returns the i-th child or nil when the parser delivered fewer
// children than expected. Callers degrade to a structural diagnostic
// on nil, never panic.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// binaryOps is the closed set of two-operand operator kinds.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
	">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true,
	"&&": true, "||": true,
}

// IsBinaryOp reports whether kind is a binary operator tag.
func IsBinaryOp(kind string) bool {
	return binaryOps[kind]
}

// IsCompound reports whether kind opens a child scope (if/while/do-until).
func IsCompound(kind string) bool {
	return kind == KindIf || kind == KindWhile || kind == KindDoUntil
}

// IsLiteral reports whether kind is a literal node.
func IsLiteral(kind string) bool {
	switch kind {
	case KindIntLiteral, KindFloatLiteral, KindBoolLiteral, KindStringLiteral:
		return true
	}
	return false
}
