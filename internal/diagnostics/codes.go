package diagnostics

// Taxonomy codes. E-codes are errors, W-codes are warnings.
const (
	ErrAnalysis                = "E3000" // missing/null input tree
	ErrUndeclaredVariable      = "E3001"
	ErrDuplicateDeclaration    = "E3002"
	ErrTypeIncompatibility     = "E3003"
	ErrOperatorMisuse          = "E3004"
	ErrInvalidConversion       = "E3005"
	ErrInvalidAssignmentTarget = "E3006"
	ErrAssignment              = "E3007"

	WarnConditionType = "W3001"
)
