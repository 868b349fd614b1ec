// Package context provides a shared compilation context for all phases
//
// ARCHITECTURE DESIGN:
// This package implements the central "context" pattern used in production
// compilers. All phases are stateless workers that receive a
// CompilerContext and operate on the state within it.
//
// Key principles:
// 1. Single source of truth: all per-run state lives in CompilerContext
// 2. Phases are workers: collector, checker, generator, interpreter
//    don't own state
// 3. One context per analysis run: two runs never share a symbol table,
//    a diagnostics bag, or name counters
// 4. Thread-safe accessors, so independent contexts may run concurrently
//
// AUTHORITATIVE DATA SOURCES:
// - Symbols (SymbolTable): the single source of truth for declarations
// - Annotated: the checked tree; identifier nodes point back into the
//   table via (scope id, name) pairs, never owning pointers
// - BlockScopes: maps compound-statement nodes to the scope ids the
//   declaration pass created, so the checking pass re-enters the same
//   scopes
package context

import (
	"sync"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/diagnostics"
	"github.com/fabianreyesmn/pygframe/internal/semantics"
	"github.com/fabianreyesmn/pygframe/internal/tac"
)

// CompilationPhase tracks the current phase of a run.
type CompilationPhase int

const (
	PhaseInitial    CompilationPhase = iota // Not started
	PhaseCollecting                         // Building the symbol table
	PhaseChecking                           // Type checking + annotation
	PhaseLowering                           // Generating three-address code
	PhaseExecuting                          // Running the interpreter
	PhaseComplete                           // Run finished
)

// CompilerOptions holds per-run configuration.
// Passed to the context at creation time and remains immutable.
type CompilerOptions struct {
	Debug          bool   // Enable debug output during compilation
	Run            bool   // Execute the generated program
	EmitTAC        bool   // Print/write the textual TAC
	TACFile        string // Optional output path for the TAC text
	WarnConditions bool   // Warn on non-bool if/while/do-until conditions
}

// DefaultOptions returns the option defaults used when no flags or
// config file override them.
func DefaultOptions() *CompilerOptions {
	return &CompilerOptions{WarnConditions: true}
}

// CompilerContext is the central hub for one analysis run.
type CompilerContext struct {
	// Diagnostics - centralized error and warning collection.
	// All phases report here instead of storing their own errors.
	Diagnostics *diagnostics.DiagnosticBag

	// Root - the raw syntax tree from the front end. May be nil, in
	// which case analysis reports a single AnalysisError.
	Root *ast.Node

	// Symbols - the run's symbol table, built by the collector
	Symbols *semantics.SymbolTable

	// Annotated - the checked tree, built by the checker
	Annotated *semantics.Annotated

	// Program - the lowered three-address code
	Program tac.Program

	// Output - the interpreter's collected output, newline-joined
	Output string

	// BlockScopes - maps compound-statement nodes to their scope ids
	BlockScopes map[*ast.Node]string

	// CurrentPhase - phase tracker for debug output
	CurrentPhase CompilationPhase

	// Options - immutable run configuration
	Options *CompilerOptions

	mu sync.RWMutex
}

// New creates a fresh context for one run over the given tree.
// This is the entry point for starting a new analysis session.
func New(root *ast.Node, options *CompilerOptions) *CompilerContext {
	if options == nil {
		options = DefaultOptions()
	}

	return &CompilerContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(),
		Root:         root,
		Symbols:      semantics.NewSymbolTable(),
		BlockScopes:  make(map[*ast.Node]string),
		Options:      options,
		CurrentPhase: PhaseInitial,
	}
}

// SetPhase records the current phase.
func (ctx *CompilerContext) SetPhase(p CompilationPhase) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.CurrentPhase = p
}

// Phase returns the current phase.
func (ctx *CompilerContext) Phase() CompilationPhase {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.CurrentPhase
}

// SetBlockScope associates a scope id with a compound-statement node
func (ctx *CompilerContext) SetBlockScope(block *ast.Node, scopeID string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.BlockScopes[block] = scopeID
}

// BlockScope retrieves the scope id associated with a compound node.
// Empty string when the declaration pass never reached the node.
func (ctx *CompilerContext) BlockScope(block *ast.Node) string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.BlockScopes[block]
}

// HasErrors returns true if any errors have been reported.
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// EmitDiagnostics outputs all collected diagnostics to the console.
// Typically called at the end of a run.
func (ctx *CompilerContext) EmitDiagnostics() {
	ctx.Diagnostics.EmitAll()
}
