// Package vm implements the three-address-code interpreter: a
// flat-memory, label-indexed virtual machine with injected I/O
// callbacks.
package vm

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/fabianreyesmn/pygframe/internal/tac"
)

// ReadFunc solicits one line of input for a READ of the named
// variable. Blocking; the machine offers no timeout.
type ReadFunc func(name string) string

// WriteFunc receives each printed line as it is produced.
type WriteFunc func(line string)

// ErrStepLimit is returned when MaxSteps is exceeded.
var ErrStepLimit = errors.New("step limit exceeded")

// Value is one memory cell: an int or a float. Booleans live as 1/0
// ints. The zero Value is int 0.
type Value struct {
	IsFloat bool
	I       int64
	F       float64
}

func intVal(i int64) Value     { return Value{I: i} }
func floatVal(f float64) Value { return Value{IsFloat: true, F: f} }

// AsFloat widens the value for mixed-type arithmetic and comparison.
func (v Value) AsFloat() float64 {
	if v.IsFloat {
		return v.F
	}
	return float64(v.I)
}

// Truthy applies C-style truthiness: 0 is false, anything else true.
func (v Value) Truthy() bool {
	if v.IsFloat {
		return v.F != 0
	}
	return v.I != 0
}

// String formats the value for PRINT. Floats always show a decimal
// point, so an integral float prints as "2.0", never "2".
func (v Value) String() string {
	if !v.IsFloat {
		return strconv.FormatInt(v.I, 10)
	}
	s := strconv.FormatFloat(v.F, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Interpreter executes one TAC program. State: a program counter, the
// label→index table built once up front, and a name→value store.
// One interpreter is owned by one run; construct a fresh one per
// execution.
type Interpreter struct {
	prog   tac.Program
	labels map[string]int
	mem    map[string]Value
	out    []string
	pc     int

	read  ReadFunc
	write WriteFunc

	// MaxSteps guards runaway loops. 0 means unlimited.
	MaxSteps int
}

// New creates an interpreter over prog. Either callback may be nil:
// reads then default to "0" and writes only accumulate.
func New(prog tac.Program, read ReadFunc, write WriteFunc) *Interpreter {
	return &Interpreter{
		prog:   prog,
		labels: prog.LabelIndex(),
		mem:    make(map[string]Value),
		read:   read,
		write:  write,
	}
}

// Output returns the printed lines so far.
func (it *Interpreter) Output() []string {
	out := make([]string, len(it.out))
	copy(out, it.out)
	return out
}

// Memory returns the value stored under name and whether it exists.
func (it *Interpreter) Memory(name string) (Value, bool) {
	v, ok := it.mem[name]
	return v, ok
}

// Run executes the program from the first instruction until pc runs
// past the end (there is no halt opcode). Returns the printed lines
// joined with newlines. The only error is the optional step limit.
func (it *Interpreter) Run() (string, error) {
	steps := 0
	it.pc = 0
	for it.pc < len(it.prog) {
		if it.MaxSteps > 0 {
			steps++
			if steps > it.MaxSteps {
				return strings.Join(it.out, "\n"), ErrStepLimit
			}
		}
		it.step(it.prog[it.pc])
	}
	return strings.Join(it.out, "\n"), nil
}

// step dispatches one instruction. Default control flow is pc+1;
// GOTO and a taken IF_FALSE redirect it.
func (it *Interpreter) step(in tac.Instruction) {
	next := it.pc + 1

	switch in.Op {
	case tac.OpLabel:
		// marker only

	case tac.OpGoto:
		next = it.jump(in.Label)

	case tac.OpIfFalse:
		if !it.operand(in.Arg1).Truthy() {
			next = it.jump(in.Label)
		}

	case tac.OpRead:
		text := "0"
		if it.read != nil {
			text = it.read(in.Dest)
		}
		it.mem[in.Dest] = parseInput(text)

	case tac.OpPrintStr:
		it.print(in.Text)

	case tac.OpPrint:
		it.print(it.operand(in.Arg1).String())

	case tac.OpCopy:
		it.mem[in.Dest] = it.operand(in.Arg1)

	case tac.OpNot:
		if it.operand(in.Arg1).Truthy() {
			it.mem[in.Dest] = intVal(0)
		} else {
			it.mem[in.Dest] = intVal(1)
		}

	case tac.OpBinary:
		it.mem[in.Dest] = apply(in.Operator, it.operand(in.Arg1), it.operand(in.Arg2))
	}

	it.pc = next
}

// jump resolves a label to its index. An unresolved label jumps past
// the end of the program, terminating execution.
func (it *Interpreter) jump(label string) int {
	if idx, ok := it.labels[label]; ok {
		return idx
	}
	return len(it.prog)
}

func (it *Interpreter) print(line string) {
	it.out = append(it.out, line)
	if it.write != nil {
		it.write(line)
	}
}

// operand resolves a place: memory first, then literal text. An
// unknown token evaluates as its numeric spelling, defaulting to 0.
func (it *Interpreter) operand(place string) Value {
	if v, ok := it.mem[place]; ok {
		return v
	}
	return parseInput(place)
}

// parseInput parses operand/input text: float iff it contains a
// decimal point, int otherwise, 0 on failure.
func parseInput(text string) Value {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return intVal(0)
		}
		return floatVal(f)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return intVal(0)
	}
	return intVal(i)
}

// apply evaluates one binary operation. Both operands are always
// evaluated (no short-circuiting in a linear instruction stream).
// Division and modulo by zero yield 0 rather than raising.
func apply(op string, l, r Value) Value {
	switch op {
	case "+", "-", "*":
		return arith(op, l, r)
	case "/":
		if r.AsFloat() == 0 {
			return intVal(0)
		}
		return floatVal(l.AsFloat() / r.AsFloat())
	case "%":
		if !l.IsFloat && !r.IsFloat {
			if r.I == 0 {
				return intVal(0)
			}
			return intVal(l.I % r.I)
		}
		if r.AsFloat() == 0 {
			return intVal(0)
		}
		return floatVal(math.Mod(l.AsFloat(), r.AsFloat()))
	case "^":
		if !l.IsFloat && !r.IsFloat && r.I >= 0 {
			return intVal(ipow(l.I, r.I))
		}
		return floatVal(math.Pow(l.AsFloat(), r.AsFloat()))
	case ">", "<", ">=", "<=", "==", "!=":
		return boolVal(compare(op, l, r))
	case "&&":
		return boolVal(l.Truthy() && r.Truthy())
	case "||":
		return boolVal(l.Truthy() || r.Truthy())
	}
	return intVal(0)
}

func arith(op string, l, r Value) Value {
	if l.IsFloat || r.IsFloat {
		a, b := l.AsFloat(), r.AsFloat()
		switch op {
		case "+":
			return floatVal(a + b)
		case "-":
			return floatVal(a - b)
		default:
			return floatVal(a * b)
		}
	}
	switch op {
	case "+":
		return intVal(l.I + r.I)
	case "-":
		return intVal(l.I - r.I)
	default:
		return intVal(l.I * r.I)
	}
}

func compare(op string, l, r Value) bool {
	a, b := l.AsFloat(), r.AsFloat()
	switch op {
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case "==":
		return a == b
	default:
		return a != b
	}
}

func boolVal(b bool) Value {
	if b {
		return intVal(1)
	}
	return intVal(0)
}

func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
