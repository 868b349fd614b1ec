package ast

import (
	"strings"
	"testing"
)

const sampleTree = `{
	"kind": "Program",
	"line": 1,
	"column": 1,
	"children": [
		{
			"kind": "VarDecl",
			"text": "int",
			"line": 1,
			"column": 1,
			"children": [
				{"kind": "Identifier", "text": "x", "line": 1, "column": 5}
			]
		},
		{
			"kind": "Assign",
			"line": 2,
			"column": 3,
			"children": [
				{"kind": "Identifier", "text": "x", "line": 2, "column": 1},
				{
					"kind": "+",
					"line": 2,
					"column": 7,
					"children": [
						{"kind": "IntLiteral", "text": "2", "line": 2, "column": 5},
						{"kind": "IntLiteral", "text": "3", "line": 2, "column": 9}
					]
				}
			]
		}
	]
}`

// TestDecode verifies a serialized tree round-trips into nodes
func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(sampleTree))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if root.Kind != KindProgram {
		t.Errorf("root kind = %q, want Program", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	decl := root.Child(0)
	if decl.Kind != KindVarDecl || decl.Text != "int" {
		t.Errorf("first child = %q/%q, want VarDecl/int", decl.Kind, decl.Text)
	}

	sum := root.Child(1).Child(1)
	if sum.Kind != "+" || len(sum.Children) != 2 {
		t.Errorf("expected a two-operand '+' node, got %q with %d children", sum.Kind, len(sum.Children))
	}
	if sum.Line != 2 || sum.Column != 7 {
		t.Errorf("'+' location = %d,%d, want 2,7", sum.Line, sum.Column)
	}
}

// TestDecodeRejectsGarbage verifies malformed input is a Go error
func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("not json")); err == nil {
		t.Error("expected an error for malformed input")
	}
	if _, err := Decode(strings.NewReader(`{"line": 1}`)); err == nil {
		t.Error("expected an error for a root without a kind")
	}
}

// TestChildOutOfRange verifies missing children degrade to nil
func TestChildOutOfRange(t *testing.T) {
	n := New(KindAssign, "", 1, 1, New(KindIdentifier, "x", 1, 1))

	if n.Child(0) == nil {
		t.Error("Child(0) should exist")
	}
	if n.Child(1) != nil || n.Child(-1) != nil {
		t.Error("out-of-range children should be nil")
	}
}

// TestKindPredicates verifies the kind classification helpers
func TestKindPredicates(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/", "%", "^", ">", "<", ">=", "<=", "==", "!=", "&&", "||"} {
		if !IsBinaryOp(op) {
			t.Errorf("IsBinaryOp(%q) = false, want true", op)
		}
	}
	if IsBinaryOp("!") || IsBinaryOp(KindAssign) {
		t.Error("'!' and Assign are not binary operators")
	}

	for _, k := range []string{KindIf, KindWhile, KindDoUntil} {
		if !IsCompound(k) {
			t.Errorf("IsCompound(%q) = false, want true", k)
		}
	}
	if IsCompound(KindBlock) {
		t.Error("Block does not open a scope")
	}
}
