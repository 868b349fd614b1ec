// Package tac defines the three-address-code instruction set and the
// generator that lowers an annotated tree into it.
//
// Instructions are structured (opcode + operand fields), not strings;
// the textual form exists only for logging and golden-file tests.
package tac

import (
	"fmt"
	"strings"
)

// OpCode identifies one instruction form.
type OpCode int

const (
	OpLabel   OpCode = iota // LABEL name
	OpGoto                  // GOTO name
	OpIfFalse               // IF_FALSE cond GOTO name
	OpRead                  // READ var
	OpPrintStr              // PRINT_STR "text"
	OpPrint                 // PRINT place
	OpCopy                  // dest = place
	OpNot                   // dest = ! place
	OpBinary                // dest = left op right
)

// Instruction is one three-address instruction. Only the fields the
// opcode uses are set; a "place" is a variable name, a literal, or a
// temporary t<N>.
type Instruction struct {
	Op       OpCode
	Label    string // label name for Label/Goto/IfFalse
	Dest     string // destination place for Read/Copy/Not/Binary
	Arg1     string // condition (IfFalse), source (Copy/Not/Print), left operand (Binary)
	Arg2     string // right operand (Binary)
	Operator string // binary operator tag
	Text     string // unquoted text for PrintStr
}

// String renders the instruction in the textual grammar.
func (in Instruction) String() string {
	switch in.Op {
	case OpLabel:
		return "LABEL " + in.Label
	case OpGoto:
		return "GOTO " + in.Label
	case OpIfFalse:
		return fmt.Sprintf("IF_FALSE %s GOTO %s", in.Arg1, in.Label)
	case OpRead:
		return "READ " + in.Dest
	case OpPrintStr:
		return fmt.Sprintf("PRINT_STR %q", in.Text)
	case OpPrint:
		return "PRINT " + in.Arg1
	case OpCopy:
		return fmt.Sprintf("%s = %s", in.Dest, in.Arg1)
	case OpNot:
		return fmt.Sprintf("%s = ! %s", in.Dest, in.Arg1)
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", in.Dest, in.Arg1, in.Operator, in.Arg2)
	default:
		return "NOP"
	}
}

// Program is an ordered instruction sequence.
type Program []Instruction

// Lines returns the textual form, one instruction per element.
func (p Program) Lines() []string {
	out := make([]string, len(p))
	for i, in := range p {
		out[i] = in.String()
	}
	return out
}

// Text returns the textual form joined with newlines.
func (p Program) Text() string {
	return strings.Join(p.Lines(), "\n")
}

// LabelIndex builds the label→index table used by the interpreter.
// Built once by a pre-scan; a later duplicate label wins, matching
// linear-scan resolution.
func (p Program) LabelIndex() map[string]int {
	idx := make(map[string]int)
	for i, in := range p {
		if in.Op == OpLabel {
			idx[in.Label] = i
		}
	}
	return idx
}
