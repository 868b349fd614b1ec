package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Severity and annotation styles. Color is dropped automatically when
// pterm.DisableColor has been called (tests, piped output).
var (
	errorStyle     = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warningStyle   = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	locationStyle  = pterm.NewStyle(pterm.FgCyan)
	secondaryStyle = pterm.NewStyle(pterm.FgGray)
	annotStyle     = pterm.NewStyle(pterm.FgLightBlue)
)

// Emitter renders diagnostics as plain annotated text. The analyzer
// never sees source code (only the serialized tree), so rendering is
// location-based rather than source-excerpt-based.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates an emitter writing to stdout
func NewEmitter() *Emitter {
	return &Emitter{w: os.Stdout}
}

// NewEmitterWithWriter creates an emitter writing to w
func NewEmitterWithWriter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit renders a single diagnostic:
//
//	error[E3001]: variable 'x' is not declared
//	  --> line 4, column 9: not found in this scope or any enclosing scope
//	  = help: declare the variable before using it
func (e *Emitter) Emit(d *Diagnostic) {
	style := errorStyle
	if d.Severity == Warning {
		style = warningStyle
	}

	header := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	fmt.Fprintf(e.w, "%s: %s\n", style.Sprint(header), d.Message)

	for _, label := range d.Labels {
		line := fmt.Sprintf("  --> %s", label.Location)
		if label.Message != "" {
			line += ": " + label.Message
		}
		if label.Style == Primary {
			fmt.Fprintln(e.w, locationStyle.Sprint(line))
		} else {
			fmt.Fprintln(e.w, secondaryStyle.Sprint(line))
		}
	}

	for _, note := range d.Notes {
		fmt.Fprintln(e.w, annotStyle.Sprint("  = note: "+note.Message))
	}
	if d.Help != "" {
		fmt.Fprintln(e.w, annotStyle.Sprint("  = help: "+d.Help))
	}
}
