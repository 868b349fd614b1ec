package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// DiagnosticBag collects diagnostics during analysis.
//
// Append-only: diagnostics are never mutated or discarded once added.
// Deduplication, if any, is the analyzer's responsibility.
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates an empty diagnostic bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	diag.seq = len(db.diagnostics)
	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns all diagnostics in insertion order
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// Sorted returns all diagnostics in reporting order: by primary
// location (line, then column), ties broken by insertion order.
// The order is total and stable across runs on identical input.
func (db *DiagnosticBag) Sorted() []*Diagnostic {
	out := db.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].Loc(), out[j].Loc()
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		if li.Column != lj.Column {
			return li.Column < lj.Column
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// ByCode returns the diagnostics carrying the given taxonomy code,
// in reporting order.
func (db *DiagnosticBag) ByCode(code string) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range db.Sorted() {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// OnLine returns the diagnostics whose primary location is on the
// given line, in reporting order.
func (db *DiagnosticBag) OnLine(line int) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range db.Sorted() {
		if d.Loc().Line == line {
			out = append(out, d)
		}
	}
	return out
}

// EmitAll renders all diagnostics to stdout in reporting order.
func (db *DiagnosticBag) EmitAll() {
	db.EmitAllToWriter(os.Stdout)
}

// EmitAllToString renders all diagnostics to a string
func (db *DiagnosticBag) EmitAllToString() string {
	var buf bytes.Buffer
	db.EmitAllToWriter(&buf)
	return buf.String()
}

// EmitAllToWriter renders all diagnostics to a specific writer
func (db *DiagnosticBag) EmitAllToWriter(w io.Writer) {
	emitter := NewEmitterWithWriter(w)

	for _, diag := range db.Sorted() {
		emitter.Emit(diag)
	}

	db.mu.Lock()
	errorCount := db.errorCount
	warnCount := db.warnCount
	db.mu.Unlock()

	if errorCount > 0 {
		fmt.Fprintf(w, "\nAnalysis failed with %d error(s)", errorCount)
		if warnCount > 0 {
			fmt.Fprintf(w, " and %d warning(s)", warnCount)
		}
		fmt.Fprintln(w)
	} else if warnCount > 0 {
		fmt.Fprintf(w, "\nAnalysis succeeded with %d warning(s)\n", warnCount)
	}
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
