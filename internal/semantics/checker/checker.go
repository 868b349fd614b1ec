// Package checker implements the checking + annotation pass (pass 2
// of the semantic analyzer).
//
// It visits every node in post-order, building a fresh annotated tree
// decorated with resolved types, folded literal values, and symbol
// references. Input nodes are never mutated. Every error condition
// degrades to "leave this node unresolved and keep going": one run
// always yields a complete annotated tree plus a full diagnostics
// list, never an abort.
package checker

import (
	"strconv"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/context"
	"github.com/fabianreyesmn/pygframe/internal/diagnostics"
	"github.com/fabianreyesmn/pygframe/internal/semantics"
	src "github.com/fabianreyesmn/pygframe/internal/source"
	"github.com/fabianreyesmn/pygframe/internal/types"
)

// Checker validates types and builds the annotated tree.
type Checker struct {
	ctx   *context.CompilerContext
	table *semantics.SymbolTable
}

// New creates a checker for the given context.
func New(ctx *context.CompilerContext) *Checker {
	return &Checker{ctx: ctx, table: ctx.Symbols}
}

// Run executes the checking pass and stores the annotated tree in the
// context. The caller guarantees a non-nil root and a completed
// declaration pass.
func Run(ctx *context.CompilerContext) {
	ctx.Annotated = New(ctx).checkNode(ctx.Root)
}

// checkNode dispatches on the node kind. Children are always checked
// before the parent's own rule runs, so a parent can read its
// children's resolved types.
func (c *Checker) checkNode(n *ast.Node) *semantics.Annotated {
	if n == nil {
		return nil
	}

	a := &semantics.Annotated{
		Kind:   n.Kind,
		Text:   n.Text,
		Line:   n.Line,
		Column: n.Column,
	}

	switch {
	case n.Kind == ast.KindIdentifier:
		c.bindIdentifier(n, a)

	case n.Kind == ast.KindIntLiteral:
		a.Type = types.IntType
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			v = 0 // malformed literals are a tokenizer concern
		}
		a.Value = &semantics.ConstValue{Kind: types.Int, Int: v}

	case n.Kind == ast.KindFloatLiteral:
		a.Type = types.FloatType
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			v = 0
		}
		a.Value = &semantics.ConstValue{Kind: types.Float, Float: v}

	case n.Kind == ast.KindBoolLiteral:
		a.Type = types.BooleanType
		a.Value = &semantics.ConstValue{Kind: types.Boolean, Bool: n.Text == "true"}

	case n.Kind == ast.KindStringLiteral:
		// Only legal inside Write; carries no semantic type.

	case n.Kind == ast.KindVarDecl:
		c.checkVarDecl(n, a)

	case n.Kind == ast.KindAssign:
		c.checkAssign(n, a)

	case n.Kind == ast.KindNot:
		c.checkNot(n, a)

	case ast.IsBinaryOp(n.Kind):
		c.checkBinary(n, a)

	case ast.IsCompound(n.Kind):
		c.checkCompound(n, a)

	default:
		// Program, Block, Read, Write: containers; check children.
		for _, child := range n.Children {
			a.Children = append(a.Children, c.checkNode(child))
		}
	}

	return a
}

// bindIdentifier resolves a variable use against the visible scopes.
func (c *Checker) bindIdentifier(n *ast.Node, a *semantics.Annotated) {
	sym := c.table.Lookup(n.Text)
	if sym == nil {
		c.ctx.Diagnostics.Add(diagnostics.UndeclaredVariable(n.Loc(), n.Text))
		return
	}
	a.Type = sym.Type
	a.Symbol = &semantics.SymbolRef{Scope: sym.ScopeID, Name: sym.Name}
}

// checkVarDecl annotates a declaration with its declared type and
// binds its identifier children. The declaration pass already created
// the symbols; an identifier here can only miss when it was itself a
// duplicate (then it binds to the original).
func (c *Checker) checkVarDecl(n *ast.Node, a *semantics.Annotated) {
	a.Type = types.FromName(n.Text)
	for _, child := range n.Children {
		ca := &semantics.Annotated{
			Kind:   child.Kind,
			Text:   child.Text,
			Line:   child.Line,
			Column: child.Column,
		}
		if child.Kind == ast.KindIdentifier {
			if sym := c.table.Lookup(child.Text); sym != nil {
				ca.Type = sym.Type
				ca.Symbol = &semantics.SymbolRef{Scope: sym.ScopeID, Name: sym.Name}
			}
		}
		a.Children = append(a.Children, ca)
	}
}

// checkAssign validates an assignment. The right side's type is
// computed first; the left side must be an identifier. Assignment is
// an expression typed as its assigned value.
func (c *Checker) checkAssign(n *ast.Node, a *semantics.Annotated) {
	target := n.Child(0)
	value := n.Child(1)

	if target == nil || value == nil {
		// Parser delivered fewer children than the contract requires.
		c.ctx.Diagnostics.Add(diagnostics.InvalidAssignmentTarget(n.Loc()))
		for _, child := range n.Children {
			a.Children = append(a.Children, c.checkNode(child))
		}
		return
	}

	va := c.checkNode(value)
	ta := c.checkNode(target)
	a.Children = append(a.Children, ta, va)

	if target.Kind != ast.KindIdentifier {
		c.ctx.Diagnostics.Add(diagnostics.InvalidAssignmentTarget(target.Loc()))
		return
	}

	// Unresolved operand types never cascade into a second error.
	if ta.Type == nil || va.Type == nil {
		return
	}

	if !types.ValidAssignment(ta.Type, va.Type) {
		c.ctx.Diagnostics.Add(
			diagnostics.AssignmentError(n.Loc(), target.Text, ta.Type.String(), va.Type.String()))
		if !types.Compatible(ta.Type, va.Type) {
			c.ctx.Diagnostics.Add(
				diagnostics.InvalidConversion(n.Loc(), va.Type.String(), ta.Type.String()))
		}
		return
	}

	c.table.MarkInitialized(target.Text)
	a.Type = va.Type
}

// checkNot validates unary logical negation.
func (c *Checker) checkNot(n *ast.Node, a *semantics.Annotated) {
	operand := c.checkNode(n.Child(0))
	if operand != nil {
		a.Children = append(a.Children, operand)
	}
	if operand == nil || operand.Type == nil {
		return
	}
	if operand.Type.Kind != types.Boolean {
		c.ctx.Diagnostics.Add(diagnostics.UnaryMisuse(n.Loc(), operand.Type.String()))
		return
	}
	a.Type = types.BooleanType
}

// checkBinary applies the operator result rules to a two-operand node.
func (c *Checker) checkBinary(n *ast.Node, a *semantics.Annotated) {
	left := c.checkNode(n.Child(0))
	right := c.checkNode(n.Child(1))
	if left != nil {
		a.Children = append(a.Children, left)
	}
	if right != nil {
		a.Children = append(a.Children, right)
	}
	if left == nil || right == nil {
		// Structural breakage is the parser's contract violation;
		// the node simply stays unresolved.
		return
	}

	// An unresolved child already produced its own diagnostic.
	if left.Type == nil || right.Type == nil {
		return
	}

	result := types.ResultType(n.Kind, left.Type, right.Type)
	if result == nil {
		if types.ClassOf(n.Kind) == types.OpRelational {
			c.ctx.Diagnostics.Add(diagnostics.TypeIncompatibility(
				n.Loc(), n.Kind, left.Type.String(), right.Type.String()))
		} else {
			c.ctx.Diagnostics.Add(diagnostics.OperatorMisuse(
				n.Loc(), n.Kind, left.Type.String(), right.Type.String()))
		}
		return
	}
	a.Type = result
}

// checkCompound re-enters the scope the declaration pass created for
// this node and checks its children inside it. Non-bool conditions
// are accepted by the language; they only draw a warning when the
// warn-conditions option is on.
func (c *Checker) checkCompound(n *ast.Node, a *semantics.Annotated) {
	if id := c.ctx.BlockScope(n); id != "" {
		if c.table.Reenter(id) {
			defer c.table.Leave()
		}
	}

	for _, child := range n.Children {
		a.Children = append(a.Children, c.checkNode(child))
	}

	if !c.ctx.Options.WarnConditions {
		return
	}
	cond := a.Child(conditionIndex(n.Kind, len(a.Children)))
	if cond != nil && cond.Type != nil && cond.Type.Kind != types.Boolean {
		c.ctx.Diagnostics.Add(diagnostics.ConditionType(
			src.NewLocation(cond.Line, cond.Column), conditionName(n.Kind), cond.Type.String()))
	}
}

// conditionIndex locates the condition child: first for if/while,
// last for do-until (post-test).
func conditionIndex(kind string, childCount int) int {
	if kind == ast.KindDoUntil {
		return childCount - 1
	}
	return 0
}

func conditionName(kind string) string {
	switch kind {
	case ast.KindIf:
		return "if"
	case ast.KindWhile:
		return "while"
	default:
		return "do-until"
	}
}
