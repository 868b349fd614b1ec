// Package types implements the type model of the language: four base
// kinds, int→float promotion, and the operator result rules.
package types

// Kind enumerates the base type kinds.
type Kind int

const (
	Int Kind = iota
	Float
	Boolean
	Void
)

// String returns the source-level spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "bool"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Type is a resolved semantic type. The array fields are part of the
// contract with the front end but the current grammar never sets them.
type Type struct {
	Kind      Kind
	IsArray   bool
	ArraySize int
}

// Predeclared singletons for the scalar types. Types are immutable, so
// sharing them is safe.
var (
	IntType     = &Type{Kind: Int}
	FloatType   = &Type{Kind: Float}
	BooleanType = &Type{Kind: Boolean}
	VoidType    = &Type{Kind: Void}
)

func (t *Type) String() string {
	if t.IsArray {
		return t.Kind.String() + "[]"
	}
	return t.Kind.String()
}

// FromName maps a declared type name to its type, or nil for an
// unknown name.
func FromName(name string) *Type {
	switch name {
	case "int":
		return IntType
	case "float", "real", "double":
		return FloatType
	case "bool", "boolean":
		return BooleanType
	case "void":
		return VoidType
	}
	return nil
}

// IsNumeric reports whether t participates in arithmetic.
func IsNumeric(t *Type) bool {
	return t != nil && !t.IsArray && (t.Kind == Int || t.Kind == Float)
}

// PromotesTo reports whether a value of type from implicitly widens to
// type to. Int→Float is the only promotion in the language.
func PromotesTo(from, to *Type) bool {
	if from == nil || to == nil {
		return false
	}
	return from.Kind == Int && to.Kind == Float && !from.IsArray && !to.IsArray
}

// Compatible reports whether a and b are the same type or one promotes
// to the other. The relation is symmetric.
func Compatible(a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind == b.Kind && a.IsArray == b.IsArray {
		return true
	}
	return PromotesTo(a, b) || PromotesTo(b, a)
}

// ValidAssignment reports whether a value of type value may be stored
// into a target of type target: equal, or the value promotes. Float
// never narrows to int implicitly.
func ValidAssignment(target, value *Type) bool {
	if target == nil || value == nil {
		return false
	}
	if target.Kind == value.Kind && target.IsArray == value.IsArray {
		return true
	}
	return PromotesTo(value, target)
}

// OpClass partitions the binary operators for diagnostic wording.
type OpClass int

const (
	OpArithmetic OpClass = iota
	OpRelational
	OpLogical
	OpUnknown
)

// ClassOf returns the class of a binary operator tag.
func ClassOf(op string) OpClass {
	switch op {
	case "+", "-", "*", "/", "%", "^":
		return OpArithmetic
	case ">", "<", ">=", "<=", "==", "!=":
		return OpRelational
	case "&&", "||":
		return OpLogical
	}
	return OpUnknown
}

// ResultType applies the operator rules to two resolved operand types:
//
//   - relational: operands must be compatible; result bool
//   - logical: both operands must be bool; result bool
//   - modulo: both operands must be int exactly, no promotion; result int
//   - other arithmetic: both operands numeric; float if either is float
//
// Returns nil when the operands are not acceptable for the operator.
func ResultType(op string, left, right *Type) *Type {
	if left == nil || right == nil {
		return nil
	}
	switch ClassOf(op) {
	case OpRelational:
		if Compatible(left, right) {
			return BooleanType
		}
	case OpLogical:
		if left.Kind == Boolean && right.Kind == Boolean {
			return BooleanType
		}
	case OpArithmetic:
		if op == "%" {
			if left.Kind == Int && right.Kind == Int {
				return IntType
			}
			return nil
		}
		if IsNumeric(left) && IsNumeric(right) {
			if left.Kind == Float || right.Kind == Float {
				return FloatType
			}
			return IntType
		}
	}
	return nil
}
