package diagnostics

import (
	"fmt"

	"github.com/fabianreyesmn/pygframe/internal/source"
)

// Convenience constructors, one per taxonomy member.

// AnalysisError is the single fatal condition: there is no tree to
// analyze. Reported at the synthetic location 0,0.
func AnalysisError() *Diagnostic {
	return NewError("no syntax tree to analyze").
		WithCode(ErrAnalysis).
		WithPrimaryLabel(source.NewLocation(0, 0), "analysis received a null tree").
		WithHelp("check that the parser produced a tree before running analysis")
}

// UndeclaredVariable creates a diagnostic for a name not visible in any scope
func UndeclaredVariable(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("variable '%s' is not declared", name)).
		WithCode(ErrUndeclaredVariable).
		WithPrimaryLabel(loc, "not found in this scope or any enclosing scope").
		WithHelp("declare the variable before using it")
}

// DuplicateDeclaration creates a diagnostic for a name redeclared in the
// same scope, pointing back at the original declaration
func DuplicateDeclaration(newLoc, prevLoc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("variable '%s' is already declared in this scope", name)).
		WithCode(ErrDuplicateDeclaration).
		WithPrimaryLabel(newLoc, "redeclared here").
		WithSecondaryLabel(prevLoc, "previously declared here").
		WithHelp("use a different name or remove one of the declarations")
}

// TypeIncompatibility creates a diagnostic for operands that fail the
// compatibility relation under a relational operator
func TypeIncompatibility(loc *source.Location, op, left, right string) *Diagnostic {
	return NewError(fmt.Sprintf("incompatible types for operator '%s': %s and %s", op, left, right)).
		WithCode(ErrTypeIncompatibility).
		WithPrimaryLabel(loc, fmt.Sprintf("'%s' cannot compare %s with %s", op, left, right))
}

// OperatorMisuse creates a diagnostic for an operator applied to the
// wrong type class (modulo on floats, logical on numbers, ...)
func OperatorMisuse(loc *source.Location, op, left, right string) *Diagnostic {
	return NewError(fmt.Sprintf("operator '%s' cannot be applied to %s and %s", op, left, right)).
		WithCode(ErrOperatorMisuse).
		WithPrimaryLabel(loc, requirementFor(op))
}

// UnaryMisuse creates a diagnostic for unary '!' on a non-boolean operand
func UnaryMisuse(loc *source.Location, operand string) *Diagnostic {
	return NewError(fmt.Sprintf("operator '!' cannot be applied to %s", operand)).
		WithCode(ErrOperatorMisuse).
		WithPrimaryLabel(loc, "operator '!' requires a bool operand")
}

// InvalidConversion creates a diagnostic for an assignment whose value
// type cannot be promoted to the target type at all
func InvalidConversion(loc *source.Location, from, to string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot convert %s to %s", from, to)).
		WithCode(ErrInvalidConversion).
		WithPrimaryLabel(loc, "no implicit conversion exists between these types").
		WithNote("the only implicit conversion is int to float")
}

// InvalidAssignmentTarget creates a diagnostic for an assignment whose
// left side is not an identifier
func InvalidAssignmentTarget(loc *source.Location) *Diagnostic {
	return NewError("invalid assignment target").
		WithCode(ErrInvalidAssignmentTarget).
		WithPrimaryLabel(loc, "left side of an assignment must be a variable").
		WithHelp("only a declared variable can appear on the left of '='")
}

// AssignmentError creates a diagnostic for an assignment that fails the
// target/value validation, naming the variable and both types
func AssignmentError(loc *source.Location, name, target, value string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot assign %s to variable '%s' of type %s", value, name, target)).
		WithCode(ErrAssignment).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %s, found %s", target, value))
}

// ConditionType creates a warning for a non-boolean if/while/do-until
// condition. Warning only: the language accepts these programs.
func ConditionType(loc *source.Location, kind, found string) *Diagnostic {
	return NewWarning(fmt.Sprintf("%s condition has type %s, expected bool", kind, found)).
		WithCode(WarnConditionType).
		WithPrimaryLabel(loc, "condition is evaluated with C-style truthiness").
		WithNote("0 is false, any other value is true")
}

func requirementFor(op string) string {
	switch op {
	case "%":
		return "operator '%' requires two int operands"
	case "&&", "||":
		return fmt.Sprintf("operator '%s' requires two bool operands", op)
	default:
		return fmt.Sprintf("operator '%s' requires numeric operands", op)
	}
}
