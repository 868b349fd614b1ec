package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/cmd"
	"github.com/fabianreyesmn/pygframe/internal/config"
	"github.com/fabianreyesmn/pygframe/internal/context"
	"github.com/fabianreyesmn/pygframe/internal/semantics"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	runFlag := flag.Bool("run", false, "Execute the generated program")
	emitTACFlag := flag.Bool("emit-tac", false, "Print the three-address code")
	symbolsFlag := flag.Bool("symbols", false, "Print the symbol table")
	configFlag := flag.String("config", config.DefaultFileName, "Path to the configuration file")
	flag.Parse()

	// Validate arguments
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr,
			"Usage: %s [--debug] [--run] [--emit-tac] [--symbols] [--config pygframe.toml] <tree.json>\n",
			filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	// Configuration file supplies defaults; flags override.
	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	options := cfg.Options()
	if *debugFlag {
		options.Debug = true
	}
	if *runFlag {
		options.Run = true
	}
	if *emitTACFlag {
		options.EmitTAC = true
	}

	// Load the serialized syntax tree from the front end
	root, err := ast.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create the per-run context and run analysis + lowering
	ctx := context.New(root, options)
	compileErr := cmd.Compile(ctx)

	ctx.EmitDiagnostics()
	if options.Debug {
		cmd.ReportResult(ctx)
	}
	if compileErr != nil {
		os.Exit(1)
	}

	if *symbolsFlag {
		fmt.Print(semantics.FormatSymbolTable(ctx.Symbols.Export()))
	}

	if options.EmitTAC {
		text := ctx.Program.Text() + "\n"
		if options.TACFile != "" {
			if err := os.WriteFile(options.TACFile, []byte(text), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", options.TACFile, err)
				os.Exit(1)
			}
		} else {
			fmt.Print(text)
		}
	}

	if options.Run {
		stdin := bufio.NewReader(os.Stdin)
		read := func(name string) string {
			fmt.Printf("Enter value for %s: ", name)
			line, err := stdin.ReadString('\n')
			if err != nil {
				return "0"
			}
			return strings.TrimSpace(line)
		}
		write := func(line string) {
			fmt.Println(line)
		}
		if _, err := cmd.Execute(ctx, read, write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
