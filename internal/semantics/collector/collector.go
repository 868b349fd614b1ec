// Package collector implements the declaration pass (pass 1 of the
// semantic analyzer).
//
// It walks the raw tree once, declaring every variable into the active
// scope and opening a fresh scope for each compound statement. The
// scope id created for a compound node is recorded in the context's
// BlockScopes map so the checking pass can re-enter exactly the same
// scopes with the same visibility.
package collector

import (
	"fmt"
	"strings"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/context"
	"github.com/fabianreyesmn/pygframe/internal/diagnostics"
	"github.com/fabianreyesmn/pygframe/internal/types"
)

// Collector walks the tree and builds the symbol table.
// Stateless beyond the context it operates on.
type Collector struct {
	ctx *context.CompilerContext
}

// New creates a collector for the given context.
func New(ctx *context.CompilerContext) *Collector {
	return &Collector{ctx: ctx}
}

// Run executes the declaration pass over the context's tree.
// The caller guarantees a non-nil root.
func Run(ctx *context.CompilerContext) {
	New(ctx).collect(ctx.Root)
}

func (c *Collector) collect(n *ast.Node) {
	if n == nil {
		return
	}

	switch {
	case n.Kind == ast.KindVarDecl:
		c.collectVarDecl(n)

	case ast.IsCompound(n.Kind):
		// Push even when the body is empty or malformed, so the
		// scope stack stays balanced.
		label := fmt.Sprintf("%s_%d", scopeLabel(n.Kind), n.Line)
		id := c.ctx.Symbols.EnterScope(label)
		c.ctx.SetBlockScope(n, id)
		for _, child := range n.Children {
			c.collect(child)
		}
		c.ctx.Symbols.ExitScope()

	default:
		for _, child := range n.Children {
			c.collect(child)
		}
	}
}

// collectVarDecl declares every identifier child of a declaration
// node with the declared base type. A name already present in the
// current scope is the sole duplicate-declaration condition.
func (c *Collector) collectVarDecl(n *ast.Node) {
	declared := types.FromName(n.Text)

	for _, child := range n.Children {
		if child.Kind != ast.KindIdentifier {
			continue
		}
		existing, ok := c.ctx.Symbols.Declare(child.Text, declared, child)
		if !ok {
			c.ctx.Diagnostics.Add(
				diagnostics.DuplicateDeclaration(child.Loc(), existing.Loc(), child.Text))
		}
	}
}

// scopeLabel maps a compound node kind to its scope-label prefix
// ("if_3", "while_7", "dountil_9").
func scopeLabel(kind string) string {
	switch kind {
	case ast.KindIf:
		return "if"
	case ast.KindWhile:
		return "while"
	case ast.KindDoUntil:
		return "dountil"
	}
	return strings.ToLower(kind)
}
