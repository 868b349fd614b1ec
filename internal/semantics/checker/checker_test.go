package checker

import (
	"testing"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/context"
	"github.com/fabianreyesmn/pygframe/internal/diagnostics"
	"github.com/fabianreyesmn/pygframe/internal/semantics/collector"
	"github.com/fabianreyesmn/pygframe/internal/types"
)

// analyze runs both passes over root with the given options.
func analyze(root *ast.Node, options *context.CompilerOptions) *context.CompilerContext {
	ctx := context.New(root, options)
	collector.Run(ctx)
	Run(ctx)
	return ctx
}

func intDecl(name string, line int) *ast.Node {
	return ast.New(ast.KindVarDecl, "int", line, 1,
		ast.New(ast.KindIdentifier, name, line, 5))
}

func floatDecl(name string, line int) *ast.Node {
	return ast.New(ast.KindVarDecl, "float", line, 1,
		ast.New(ast.KindIdentifier, name, line, 7))
}

// TestLiteralAnnotation verifies literal typing and constant folding
func TestLiteralAnnotation(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindIntLiteral, "42", 1, 1),
		ast.New(ast.KindFloatLiteral, "2.5", 2, 1),
		ast.New(ast.KindBoolLiteral, "true", 3, 1))

	ctx := analyze(root, nil)

	a := ctx.Annotated
	if a.Child(0).Type.Kind != types.Int || a.Child(0).Value.Int != 42 {
		t.Errorf("int literal annotation = %+v", a.Child(0))
	}
	if a.Child(1).Type.Kind != types.Float || a.Child(1).Value.Float != 2.5 {
		t.Errorf("float literal annotation = %+v", a.Child(1))
	}
	if a.Child(2).Type.Kind != types.Boolean || !a.Child(2).Value.Bool {
		t.Errorf("bool literal annotation = %+v", a.Child(2))
	}
}

// TestMalformedLiteralFoldsToZero verifies tokenizer-level garbage is
// not fatal at this layer
func TestMalformedLiteralFoldsToZero(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindIntLiteral, "4x2", 1, 1))

	ctx := analyze(root, nil)

	if ctx.HasErrors() {
		t.Error("malformed literal should not be an error here")
	}
	if ctx.Annotated.Child(0).Value.Int != 0 {
		t.Error("malformed literal should fold to 0")
	}
}

// TestIdentifierBinding verifies symbol references on identifier nodes
func TestIdentifierBinding(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		intDecl("x", 1),
		ast.New(ast.KindWrite, "", 2, 1,
			ast.New(ast.KindIdentifier, "x", 2, 9)))

	ctx := analyze(root, nil)

	use := ctx.Annotated.Child(1).Child(0)
	if use.Type == nil || use.Type.Kind != types.Int {
		t.Fatalf("identifier type = %v, want int", use.Type)
	}
	if use.Symbol == nil || use.Symbol.Scope != "global" || use.Symbol.Name != "x" {
		t.Errorf("symbol ref = %+v, want global/x", use.Symbol)
	}
	if ctx.Symbols.Resolve(use.Symbol.Scope, use.Symbol.Name) == nil {
		t.Error("symbol ref should resolve through the table")
	}
}

// TestUndeclaredVariable verifies the lookup failure path
func TestUndeclaredVariable(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindWrite, "", 1, 1,
			ast.New(ast.KindIdentifier, "ghost", 1, 9)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrUndeclaredVariable); len(got) != 1 {
		t.Fatalf("expected 1 UndeclaredVariable, got %d", len(got))
	}
	if ctx.Annotated.Child(0).Child(0).Type != nil {
		t.Error("undeclared identifier should stay unresolved")
	}
}

// TestNoCascade verifies an unresolved child produces exactly one
// diagnostic, not one per ancestor
func TestNoCascade(t *testing.T) {
	// ghost + 1 > 2: ghost is the only error
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(">", "", 1, 1,
			ast.New("+", "", 1, 1,
				ast.New(ast.KindIdentifier, "ghost", 1, 1),
				ast.New(ast.KindIntLiteral, "1", 1, 9)),
			ast.New(ast.KindIntLiteral, "2", 1, 13)))

	ctx := analyze(root, nil)

	if n := len(ctx.Diagnostics.Diagnostics()); n != 1 {
		t.Errorf("expected exactly 1 diagnostic, got %d:\n%s", n, ctx.Diagnostics.EmitAllToString())
	}
	if ctx.Annotated.Child(0).Type != nil {
		t.Error("parent of an unresolved child should stay unresolved")
	}
}

// TestPromotionInExpression verifies int operands widen under float
func TestPromotionInExpression(t *testing.T) {
	// float f; f = 1 + 2.5;
	root := ast.New(ast.KindProgram, "", 1, 1,
		floatDecl("f", 1),
		ast.New(ast.KindAssign, "", 2, 3,
			ast.New(ast.KindIdentifier, "f", 2, 1),
			ast.New("+", "", 2, 7,
				ast.New(ast.KindIntLiteral, "1", 2, 5),
				ast.New(ast.KindFloatLiteral, "2.5", 2, 9))))

	ctx := analyze(root, nil)

	if ctx.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", ctx.Diagnostics.EmitAllToString())
	}
	assign := ctx.Annotated.Child(1)
	if assign.Type == nil || assign.Type.Kind != types.Float {
		t.Errorf("assignment type = %v, want float (the assigned value's type)", assign.Type)
	}
	if sym := ctx.Symbols.Resolve("global", "f"); sym == nil || !sym.Initialized {
		t.Error("assignment target should be marked initialized")
	}
}

// TestNarrowingAssignmentFails verifies float-to-int is rejected with
// an AssignmentError but no InvalidConversion (the types are compatible)
func TestNarrowingAssignmentFails(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		intDecl("x", 1),
		ast.New(ast.KindAssign, "", 2, 3,
			ast.New(ast.KindIdentifier, "x", 2, 1),
			ast.New(ast.KindFloatLiteral, "2.5", 2, 5)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrAssignment); len(got) != 1 {
		t.Fatalf("expected 1 AssignmentError, got %d", len(got))
	}
	if got := ctx.Diagnostics.ByCode(diagnostics.ErrInvalidConversion); len(got) != 0 {
		t.Error("float-to-int is compatible (just not assignable); no InvalidConversion expected")
	}
	if sym := ctx.Symbols.Resolve("global", "x"); sym.Initialized {
		t.Error("failed assignment should not mark the target initialized")
	}
}

// TestUnrelatedAssignmentAlsoInvalidConversion verifies bool-to-int
// draws both the assignment error and the conversion error
func TestUnrelatedAssignmentAlsoInvalidConversion(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		intDecl("x", 1),
		ast.New(ast.KindAssign, "", 2, 3,
			ast.New(ast.KindIdentifier, "x", 2, 1),
			ast.New(ast.KindBoolLiteral, "true", 2, 5)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrAssignment); len(got) != 1 {
		t.Errorf("expected 1 AssignmentError, got %d", len(got))
	}
	if got := ctx.Diagnostics.ByCode(diagnostics.ErrInvalidConversion); len(got) != 1 {
		t.Errorf("expected 1 InvalidConversion, got %d", len(got))
	}
}

// TestInvalidAssignmentTarget verifies a non-identifier left side is a
// structural error, not a type error
func TestInvalidAssignmentTarget(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindAssign, "", 1, 3,
			ast.New(ast.KindIntLiteral, "5", 1, 1),
			ast.New(ast.KindIntLiteral, "7", 1, 5)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrInvalidAssignmentTarget); len(got) != 1 {
		t.Fatalf("expected 1 InvalidAssignmentTarget, got %d", len(got))
	}
}

// TestAssignMissingChildren verifies short Assign nodes degrade to a
// structural diagnostic, never a crash
func TestAssignMissingChildren(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindAssign, "", 1, 3,
			ast.New(ast.KindIdentifier, "x", 1, 1)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrInvalidAssignmentTarget); len(got) != 1 {
		t.Fatalf("expected 1 structural diagnostic, got %d", len(got))
	}
}

// TestModuloMisuse verifies % on a float operand is OperatorMisuse
func TestModuloMisuse(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New("%", "", 1, 3,
			ast.New(ast.KindFloatLiteral, "2.5", 1, 1),
			ast.New(ast.KindIntLiteral, "2", 1, 7)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrOperatorMisuse); len(got) != 1 {
		t.Fatalf("expected 1 OperatorMisuse, got %d", len(got))
	}
}

// TestLogicalMisuse verifies && on numbers is OperatorMisuse
func TestLogicalMisuse(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New("&&", "", 1, 3,
			ast.New(ast.KindIntLiteral, "1", 1, 1),
			ast.New(ast.KindIntLiteral, "2", 1, 6)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrOperatorMisuse); len(got) != 1 {
		t.Fatalf("expected 1 OperatorMisuse, got %d", len(got))
	}
}

// TestRelationalIncompatibility verifies bool vs int comparison is
// TypeIncompatibility (relational wording, not misuse)
func TestRelationalIncompatibility(t *testing.T) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(">", "", 1, 3,
			ast.New(ast.KindBoolLiteral, "true", 1, 1),
			ast.New(ast.KindIntLiteral, "1", 1, 8)))

	ctx := analyze(root, nil)

	if got := ctx.Diagnostics.ByCode(diagnostics.ErrTypeIncompatibility); len(got) != 1 {
		t.Fatalf("expected 1 TypeIncompatibility, got %d", len(got))
	}
}

// TestUnaryNot verifies '!' requires a bool operand
func TestUnaryNot(t *testing.T) {
	ok := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindNot, "", 1, 1,
			ast.New(ast.KindBoolLiteral, "true", 1, 2)))
	ctx := analyze(ok, nil)
	if ctx.HasErrors() {
		t.Error("'! true' should type-check")
	}
	if got := ctx.Annotated.Child(0).Type; got == nil || got.Kind != types.Boolean {
		t.Errorf("'!' result type = %v, want bool", got)
	}

	bad := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindNot, "", 1, 1,
			ast.New(ast.KindIntLiteral, "3", 1, 2)))
	ctx = analyze(bad, nil)
	if got := ctx.Diagnostics.ByCode(diagnostics.ErrOperatorMisuse); len(got) != 1 {
		t.Errorf("expected 1 OperatorMisuse for '! 3', got %d", len(got))
	}
}

// TestScopeReentry verifies a block-local variable resolves inside its
// construct and not after it
func TestScopeReentry(t *testing.T) {
	// if (true) { int tmp; tmp = 1; }  write tmp;   <- second use fails
	root := ast.New(ast.KindProgram, "", 1, 1,
		ast.New(ast.KindIf, "", 1, 1,
			ast.New(ast.KindBoolLiteral, "true", 1, 5),
			ast.New(ast.KindBlock, "", 1, 10,
				ast.New(ast.KindVarDecl, "int", 2, 3,
					ast.New(ast.KindIdentifier, "tmp", 2, 7)),
				ast.New(ast.KindAssign, "", 3, 7,
					ast.New(ast.KindIdentifier, "tmp", 3, 3),
					ast.New(ast.KindIntLiteral, "1", 3, 9)))),
		ast.New(ast.KindWrite, "", 5, 1,
			ast.New(ast.KindIdentifier, "tmp", 5, 9)))

	ctx := analyze(root, nil)

	undeclared := ctx.Diagnostics.ByCode(diagnostics.ErrUndeclaredVariable)
	if len(undeclared) != 1 {
		t.Fatalf("expected exactly 1 UndeclaredVariable, got %d:\n%s",
			len(undeclared), ctx.Diagnostics.EmitAllToString())
	}
	if undeclared[0].Loc().Line != 5 {
		t.Errorf("undeclared use reported at line %d, want 5 (after the if)", undeclared[0].Loc().Line)
	}
}

// TestConditionWarning verifies non-bool conditions warn (and only
// warn) when the option is on
func TestConditionWarning(t *testing.T) {
	build := func() *ast.Node {
		return ast.New(ast.KindProgram, "", 1, 1,
			ast.New(ast.KindWhile, "", 1, 1,
				ast.New(ast.KindIntLiteral, "1", 1, 8),
				ast.New(ast.KindBlock, "", 1, 12)))
	}

	ctx := analyze(build(), nil) // defaults: WarnConditions on
	if ctx.HasErrors() {
		t.Error("a non-bool condition must not be an error")
	}
	if got := ctx.Diagnostics.ByCode(diagnostics.WarnConditionType); len(got) != 1 {
		t.Errorf("expected 1 condition warning, got %d", len(got))
	}

	ctx = analyze(build(), &context.CompilerOptions{WarnConditions: false})
	if got := len(ctx.Diagnostics.Diagnostics()); got != 0 {
		t.Errorf("expected no diagnostics with warnings off, got %d", got)
	}
}

// TestDeterministicDiagnostics verifies two runs yield identical
// diagnostic lists
func TestDeterministicDiagnostics(t *testing.T) {
	build := func() *ast.Node {
		return ast.New(ast.KindProgram, "", 1, 1,
			ast.New(ast.KindWrite, "", 1, 1,
				ast.New(ast.KindIdentifier, "a", 1, 9)),
			ast.New(ast.KindWrite, "", 2, 1,
				ast.New(ast.KindIdentifier, "b", 2, 9)))
	}

	first := analyze(build(), nil).Diagnostics.EmitAllToString()
	second := analyze(build(), nil).Diagnostics.EmitAllToString()
	if first != second {
		t.Error("diagnostic output differs between identical runs")
	}
}

// BenchmarkAnalyze measures both passes over a small program
func BenchmarkAnalyze(b *testing.B) {
	root := ast.New(ast.KindProgram, "", 1, 1,
		intDecl("x", 1),
		ast.New(ast.KindAssign, "", 2, 3,
			ast.New(ast.KindIdentifier, "x", 2, 1),
			ast.New("+", "", 2, 7,
				ast.New(ast.KindIntLiteral, "2", 2, 5),
				ast.New(ast.KindIntLiteral, "3", 2, 9))))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analyze(root, nil)
	}
}
