package cmd

import (
	"fmt"
	"os"

	"github.com/fabianreyesmn/pygframe/internal/context"
	"github.com/fabianreyesmn/pygframe/internal/diagnostics"
	"github.com/fabianreyesmn/pygframe/internal/semantics/checker"
	"github.com/fabianreyesmn/pygframe/internal/semantics/collector"
	"github.com/fabianreyesmn/pygframe/internal/tac"
	"github.com/fabianreyesmn/pygframe/internal/vm"
)

// RunCollectorPhase walks the tree and builds the symbol table (Phase 1)
func RunCollectorPhase(ctx *context.CompilerContext) {
	ctx.SetPhase(context.PhaseCollecting)

	collector.Run(ctx)

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Collected %d scope(s)\n", len(ctx.Symbols.ScopeIDs()))
	}
}

// RunCheckerPhase validates types and builds the annotated tree (Phase 2)
func RunCheckerPhase(ctx *context.CompilerContext) {
	ctx.SetPhase(context.PhaseChecking)

	checker.Run(ctx)

	if ctx.Options.Debug {
		stats := ctx.Annotated.Stats()
		fmt.Fprintf(os.Stderr, "  ✓ Annotated %d node(s), %d typed, %d unresolved\n",
			stats.Nodes, stats.Typed, stats.Unresolved)
	}
}

// RunLoweringPhase generates the three-address code (Phase 3)
func RunLoweringPhase(ctx *context.CompilerContext) {
	ctx.SetPhase(context.PhaseLowering)

	ctx.Program = tac.Generate(ctx.Annotated)

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Generated %d instruction(s)\n", len(ctx.Program))
	}
}

// Compile runs analysis and lowering over the context's tree.
// All phases report problems through ctx.Diagnostics; the returned
// error only marks a run whose output must not be executed.
func Compile(ctx *context.CompilerContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Analysis Started]\n")
	}

	// A missing tree is the single fatal condition: one diagnostic,
	// empty outputs.
	if ctx.Root == nil {
		ctx.Diagnostics.Add(diagnostics.AnalysisError())
		ctx.SetPhase(context.PhaseComplete)
		return fmt.Errorf("analysis failed: no input tree")
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 1] Declaration Collection\n")
	}
	RunCollectorPhase(ctx)

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 2] Type Checking + Annotation\n")
	}
	RunCheckerPhase(ctx)

	if ctx.HasErrors() {
		ctx.SetPhase(context.PhaseComplete)
		return fmt.Errorf("analysis failed with %d error(s)", ctx.Diagnostics.ErrorCount())
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 3] TAC Generation\n")
	}
	RunLoweringPhase(ctx)

	ctx.SetPhase(context.PhaseComplete)
	return nil
}

// Execute runs the lowered program on the interpreter (Phase 4) and
// stores the collected output on the context.
func Execute(ctx *context.CompilerContext, read vm.ReadFunc, write vm.WriteFunc) (string, error) {
	ctx.SetPhase(context.PhaseExecuting)

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 4] Execution\n")
	}

	machine := vm.New(ctx.Program, read, write)
	out, err := machine.Run()
	ctx.Output = out
	if err != nil {
		return out, fmt.Errorf("execution failed: %w", err)
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Program finished\n")
	}
	return out, nil
}
