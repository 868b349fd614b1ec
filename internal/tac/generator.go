package tac

import (
	"strconv"

	"github.com/fabianreyesmn/pygframe/internal/semantics"
)

// Generator lowers one annotated tree to a flat instruction list.
// Temp and label counters are owned by the instance; two generations
// never share them.
type Generator struct {
	prog       Program
	tempCount  int
	labelCount int
}

// NewGenerator creates a generator with fresh counters.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers the tree rooted at node and returns the program.
// A nil root lowers to an empty program.
func Generate(root *semantics.Annotated) Program {
	g := NewGenerator()
	g.lowerStatement(root)
	return g.prog
}

func (g *Generator) emit(in Instruction) {
	g.prog = append(g.prog, in)
}

// newTemp returns the next fresh temporary: t1, t2, ...
func (g *Generator) newTemp() string {
	g.tempCount++
	return "t" + strconv.Itoa(g.tempCount)
}

// newLabel returns base + the next counter value. One counter is
// shared across all base names, so labels read L_else1, L_endif2,
// L_while3, ...
func (g *Generator) newLabel(base string) string {
	g.labelCount++
	return base + strconv.Itoa(g.labelCount)
}

// lowerStatement lowers one statement node. Containers lower their
// children in order and produce no instruction of their own.
func (g *Generator) lowerStatement(n *semantics.Annotated) {
	if n == nil {
		return
	}

	switch n.Kind {
	case "Program", "Block":
		for _, child := range n.Children {
			g.lowerStatement(child)
		}

	case "VarDecl":
		// Declarations reserve no TAC; addresses were assigned by
		// the symbol table.

	case "Assign":
		g.lowerExpression(n)

	case "Read":
		if target := n.Child(0); target != nil {
			g.emit(Instruction{Op: OpRead, Dest: target.Text})
		}

	case "Write":
		for _, part := range n.Children {
			if part.Kind == "StringLiteral" {
				g.emit(Instruction{Op: OpPrintStr, Text: unquote(part.Text)})
			} else {
				place := g.lowerExpression(part)
				g.emit(Instruction{Op: OpPrint, Arg1: place})
			}
		}

	case "If":
		g.lowerIf(n)

	case "While":
		g.lowerWhile(n)

	case "DoUntil":
		g.lowerDoUntil(n)

	default:
		// A bare expression in statement position still lowers, its
		// place simply goes unused.
		g.lowerExpression(n)
	}
}

// lowerIf emits the pre-test branch shape. Both labels always exist:
// with no else branch the else label is immediately followed by the
// end label.
func (g *Generator) lowerIf(n *semantics.Annotated) {
	cond := g.lowerExpression(n.Child(0))
	lElse := g.newLabel("L_else")
	lEnd := g.newLabel("L_endif")

	g.emit(Instruction{Op: OpIfFalse, Arg1: cond, Label: lElse})
	g.lowerStatement(n.Child(1))
	g.emit(Instruction{Op: OpGoto, Label: lEnd})
	g.emit(Instruction{Op: OpLabel, Label: lElse})
	if elseBranch := n.Child(2); elseBranch != nil {
		g.lowerStatement(elseBranch)
	}
	g.emit(Instruction{Op: OpLabel, Label: lEnd})
}

// lowerWhile emits the standard pre-test loop shape.
func (g *Generator) lowerWhile(n *semantics.Annotated) {
	lStart := g.newLabel("L_while")
	lEnd := g.newLabel("L_endwhile")

	g.emit(Instruction{Op: OpLabel, Label: lStart})
	cond := g.lowerExpression(n.Child(0))
	g.emit(Instruction{Op: OpIfFalse, Arg1: cond, Label: lEnd})
	g.lowerStatement(n.Child(1))
	g.emit(Instruction{Op: OpGoto, Label: lStart})
	g.emit(Instruction{Op: OpLabel, Label: lEnd})
}

// lowerDoUntil emits a post-test loop: the body repeats while the
// condition is still false and exits once it turns true.
func (g *Generator) lowerDoUntil(n *semantics.Annotated) {
	lStart := g.newLabel("L_do")

	g.emit(Instruction{Op: OpLabel, Label: lStart})
	last := len(n.Children) - 1
	for i := 0; i < last; i++ {
		g.lowerStatement(n.Children[i])
	}
	cond := g.lowerExpression(n.Child(last))
	g.emit(Instruction{Op: OpIfFalse, Arg1: cond, Label: lStart})
}

// lowerExpression lowers one expression node and returns its place:
// the variable, literal, or temporary holding the result.
func (g *Generator) lowerExpression(n *semantics.Annotated) string {
	if n == nil {
		return "0"
	}

	switch n.Kind {
	case "Identifier":
		return n.Text

	case "IntLiteral", "FloatLiteral":
		return n.Text

	case "BoolLiteral":
		// Booleans are 1/0 on the wire so every interpreter operand
		// is numeric.
		if n.Text == "true" {
			return "1"
		}
		return "0"

	case "Assign":
		target := n.Child(0)
		value := g.lowerExpression(n.Child(1))
		if target == nil {
			return value
		}
		g.emit(Instruction{Op: OpCopy, Dest: target.Text, Arg1: value})
		return target.Text

	case "!":
		operand := g.lowerExpression(n.Child(0))
		t := g.newTemp()
		g.emit(Instruction{Op: OpNot, Dest: t, Arg1: operand})
		return t

	default:
		left := g.lowerExpression(n.Child(0))
		right := g.lowerExpression(n.Child(1))
		t := g.newTemp()
		g.emit(Instruction{Op: OpBinary, Dest: t, Arg1: left, Operator: n.Kind, Arg2: right})
		return t
	}
}

// unquote strips one layer of surrounding double quotes when the
// front end serialized the literal with them.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
