package diagnostics

import (
	"github.com/fabianreyesmn/pygframe/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Label represents a labeled source position in a diagnostic
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main error location
	Secondary                   // Additional context (e.g. "previously declared here")
)

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic represents a single semantic error or warning.
// Immutable once added to a bag; accumulated, never mutated.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // Taxonomy code like "E3001"
	Labels   []Label
	Notes    []Note
	Help     string // Suggestion for fixing the error

	seq int // insertion order, assigned by the bag
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// WithCode sets the taxonomy code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabel adds a labeled location to the diagnostic
func (d *Diagnostic) WithLabel(loc *source.Location, message string, style LabelStyle) *Diagnostic {
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
		Style:    style,
	})
	return d
}

// WithPrimaryLabel adds a primary labeled location
func (d *Diagnostic) WithPrimaryLabel(loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(loc, message, Primary)
}

// WithSecondaryLabel adds a secondary labeled location
func (d *Diagnostic) WithSecondaryLabel(loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(loc, message, Secondary)
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets helpful suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Loc returns the diagnostic's primary location: the first primary
// label, else the first label of any style, else a synthetic 0,0.
func (d *Diagnostic) Loc() *source.Location {
	for _, l := range d.Labels {
		if l.Style == Primary {
			return l.Location
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Location
	}
	return source.NewLocation(0, 0)
}
