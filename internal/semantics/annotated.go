package semantics

import (
	"github.com/fabianreyesmn/pygframe/internal/types"
)

// ConstValue is a folded literal value attached to an annotated node.
type ConstValue struct {
	Kind  types.Kind `json:"kind"`
	Int   int64      `json:"int,omitempty"`
	Float float64    `json:"float,omitempty"`
	Bool  bool       `json:"bool,omitempty"`
}

// SymbolRef ties an identifier node back to its symbol as a
// (scope id, name) pair resolved lazily through the owning table.
// Never a direct pointer: the table stays the sole owner.
type SymbolRef struct {
	Scope string `json:"scope"`
	Name  string `json:"name"`
}

// Annotated is a syntax-tree node after semantic analysis: the same
// shape as the input node plus up to three decorations. A nil Type
// means the node is unresolved (an error was reported, or the node is
// a statement with no type).
//
// Annotated trees are built fresh by the checking pass; input nodes
// are never mutated.
type Annotated struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Line     int          `json:"line"`
	Column   int          `json:"column"`
	Type     *types.Type  `json:"type,omitempty"`
	Value    *ConstValue  `json:"value,omitempty"`
	Symbol   *SymbolRef   `json:"symbol,omitempty"`
	Children []*Annotated `json:"children,omitempty"`
}

// Child returns the i-th child or nil, mirroring ast.Node.Child.
func (a *Annotated) Child(i int) *Annotated {
	if i < 0 || i >= len(a.Children) {
		return nil
	}
	return a.Children[i]
}

// Stats summarizes annotation coverage over one tree.
type Stats struct {
	Nodes      int // total node count
	Typed      int // nodes carrying a resolved type
	Unresolved int // expression nodes left without a type
	Folded     int // nodes carrying a constant value
	Bound      int // identifier nodes bound to a symbol
}

// Stats walks the tree and counts annotations. Statement nodes
// (program, blocks, compounds, I/O) are typeless by design and are
// not counted as unresolved.
func (a *Annotated) Stats() Stats {
	var s Stats
	a.collectStats(&s)
	return s
}

func (a *Annotated) collectStats(s *Stats) {
	s.Nodes++
	if a.Type != nil {
		s.Typed++
	} else if a.isExpression() {
		s.Unresolved++
	}
	if a.Value != nil {
		s.Folded++
	}
	if a.Symbol != nil {
		s.Bound++
	}
	for _, c := range a.Children {
		c.collectStats(s)
	}
}

func (a *Annotated) isExpression() bool {
	switch a.Kind {
	case "Identifier", "IntLiteral", "FloatLiteral", "BoolLiteral", "Assign", "!":
		return true
	}
	// binary operator tags
	switch a.Kind {
	case "+", "-", "*", "/", "%", "^", ">", "<", ">=", "<=", "==", "!=", "&&", "||":
		return true
	}
	return false
}
