package tac

import (
	"reflect"
	"testing"

	"github.com/fabianreyesmn/pygframe/internal/semantics"
)

func node(kind, text string, children ...*semantics.Annotated) *semantics.Annotated {
	return &semantics.Annotated{Kind: kind, Text: text, Children: children}
}

// TestLowerExpression verifies operand-first lowering with one fresh
// temporary per operator
func TestLowerExpression(t *testing.T) {
	// x = 2 + 3 * 4
	tree := node("Program", "",
		node("Assign", "",
			node("Identifier", "x"),
			node("+", "",
				node("IntLiteral", "2"),
				node("*", "",
					node("IntLiteral", "3"),
					node("IntLiteral", "4")))))

	got := Generate(tree).Lines()
	want := []string{
		"t1 = 3 * 4",
		"t2 = 2 + t1",
		"x = t2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestLowerIfElse verifies the exact branch shape and label ordering
func TestLowerIfElse(t *testing.T) {
	// if (a > b) x = 1 else x = 2
	tree := node("Program", "",
		node("If", "",
			node(">", "",
				node("Identifier", "a"),
				node("Identifier", "b")),
			node("Assign", "",
				node("Identifier", "x"),
				node("IntLiteral", "1")),
			node("Assign", "",
				node("Identifier", "x"),
				node("IntLiteral", "2"))))

	got := Generate(tree).Lines()
	want := []string{
		"t1 = a > b",
		"IF_FALSE t1 GOTO L_else1",
		"x = 1",
		"GOTO L_endif2",
		"LABEL L_else1",
		"x = 2",
		"LABEL L_endif2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestLowerIfWithoutElse verifies both labels still exist, with the
// else label immediately followed by the end label
func TestLowerIfWithoutElse(t *testing.T) {
	tree := node("Program", "",
		node("If", "",
			node(">", "",
				node("Identifier", "a"),
				node("Identifier", "b")),
			node("Assign", "",
				node("Identifier", "x"),
				node("IntLiteral", "1"))))

	got := Generate(tree).Lines()
	want := []string{
		"t1 = a > b",
		"IF_FALSE t1 GOTO L_else1",
		"x = 1",
		"GOTO L_endif2",
		"LABEL L_else1",
		"LABEL L_endif2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestLowerWhile verifies the pre-test loop shape
func TestLowerWhile(t *testing.T) {
	// while (i > 0) i = i - 1
	tree := node("Program", "",
		node("While", "",
			node(">", "",
				node("Identifier", "i"),
				node("IntLiteral", "0")),
			node("Assign", "",
				node("Identifier", "i"),
				node("-", "",
					node("Identifier", "i"),
					node("IntLiteral", "1")))))

	got := Generate(tree).Lines()
	want := []string{
		"LABEL L_while1",
		"t1 = i > 0",
		"IF_FALSE t1 GOTO L_endwhile2",
		"t2 = i - 1",
		"i = t2",
		"GOTO L_while1",
		"LABEL L_endwhile2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestLowerDoUntil verifies the post-test loop shape
func TestLowerDoUntil(t *testing.T) {
	// do i = i + 1 until (i > 9)
	tree := node("Program", "",
		node("DoUntil", "",
			node("Assign", "",
				node("Identifier", "i"),
				node("+", "",
					node("Identifier", "i"),
					node("IntLiteral", "1"))),
			node(">", "",
				node("Identifier", "i"),
				node("IntLiteral", "9"))))

	got := Generate(tree).Lines()
	want := []string{
		"LABEL L_do1",
		"t1 = i + 1",
		"i = t1",
		"t2 = i > 9",
		"IF_FALSE t2 GOTO L_do1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestLowerIO verifies READ / PRINT_STR / PRINT preserve source order
func TestLowerIO(t *testing.T) {
	tree := node("Program", "",
		node("Read", "",
			node("Identifier", "x")),
		node("Write", "",
			node("StringLiteral", "result: "),
			node("+", "",
				node("Identifier", "x"),
				node("IntLiteral", "1"))))

	got := Generate(tree).Lines()
	want := []string{
		"READ x",
		`PRINT_STR "result: "`,
		"t1 = x + 1",
		"PRINT t1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestBoolLiteralPlaces verifies booleans lower to 1/0
func TestBoolLiteralPlaces(t *testing.T) {
	tree := node("Program", "",
		node("Assign", "",
			node("Identifier", "b"),
			node("BoolLiteral", "true")),
		node("Assign", "",
			node("Identifier", "c"),
			node("BoolLiteral", "false")))

	got := Generate(tree).Lines()
	want := []string{"b = 1", "c = 0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering = %v, want %v", got, want)
	}
}

// TestLowerNot verifies unary negation gets its own temporary
func TestLowerNot(t *testing.T) {
	tree := node("Program", "",
		node("Assign", "",
			node("Identifier", "b"),
			node("!", "",
				node("Identifier", "flag"))))

	got := Generate(tree).Lines()
	want := []string{"t1 = ! flag", "b = t1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering = %v, want %v", got, want)
	}
}

// TestAssignmentIsAnExpression verifies an assignment used as a value
// returns the target as its place
func TestAssignmentIsAnExpression(t *testing.T) {
	// y = (x = 5) + 1
	tree := node("Program", "",
		node("Assign", "",
			node("Identifier", "y"),
			node("+", "",
				node("Assign", "",
					node("Identifier", "x"),
					node("IntLiteral", "5")),
				node("IntLiteral", "1"))))

	got := Generate(tree).Lines()
	want := []string{
		"x = 5",
		"t1 = x + 1",
		"y = t1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lowering =\n%v\nwant\n%v", got, want)
	}
}

// TestCountersAreFreshPerGeneration verifies two lowerings never share
// temp or label counters
func TestCountersAreFreshPerGeneration(t *testing.T) {
	tree := node("Program", "",
		node("Assign", "",
			node("Identifier", "x"),
			node("+", "",
				node("IntLiteral", "1"),
				node("IntLiteral", "2"))))

	first := Generate(tree).Text()
	second := Generate(tree).Text()
	if first != second {
		t.Errorf("generation is not deterministic:\n%s\nvs\n%s", first, second)
	}
}

// TestLabelIndex verifies the pre-scan label table
func TestLabelIndex(t *testing.T) {
	prog := Program{
		{Op: OpLabel, Label: "L_while1"},
		{Op: OpGoto, Label: "L_while1"},
		{Op: OpLabel, Label: "L_endwhile2"},
	}

	idx := prog.LabelIndex()
	if idx["L_while1"] != 0 || idx["L_endwhile2"] != 2 {
		t.Errorf("LabelIndex = %v", idx)
	}
}

// TestVarDeclLowersToNothing verifies declarations emit no code
func TestVarDeclLowersToNothing(t *testing.T) {
	tree := node("Program", "",
		node("VarDecl", "int",
			node("Identifier", "x")))

	if got := Generate(tree); len(got) != 0 {
		t.Errorf("VarDecl lowered to %v, want nothing", got.Lines())
	}
}

// TestNilRoot verifies a nil tree lowers to an empty program
func TestNilRoot(t *testing.T) {
	if got := Generate(nil); len(got) != 0 {
		t.Errorf("nil root lowered to %v", got.Lines())
	}
}
