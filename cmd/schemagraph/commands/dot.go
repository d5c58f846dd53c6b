package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// DotFlags contains flags for the dot command
type DotFlags struct {
	Output string
	Kinds  string
	Quiet  bool
	Corpus CorpusFlags
}

// SetupDotFlags creates and configures a FlagSet for the dot command.
func SetupDotFlags() (*flag.FlagSet, *DotFlags) {
	fs := flag.NewFlagSet("dot", flag.ContinueOnError)
	flags := &DotFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Kinds, "kinds", "", "comma-separated edge kinds to include (default all)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the graph, no run header")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the graph, no run header")
	AddCorpusFlags(fs, &flags.Corpus)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph dot [flags] <dir|archive.txtar>\n\n")
		Writef(fs.Output(), "Export the schema dependency graph in Graphviz DOT format. Nodes are\n")
		Writef(fs.Output(), "colored by schema kind, edges by edge kind. Output ordering is stable\n")
		Writef(fs.Output(), "across runs, so exports diff cleanly.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph dot ./schemas | dot -Tsvg -o graph.svg\n")
		Writef(fs.Output(), "  schemagraph dot -o graph.dot ./schemas\n")
		Writef(fs.Output(), "  schemagraph dot --kinds field,extends,variant ./schemas\n")
	}

	return fs, flags
}

// HandleDot executes the dot command
func HandleDot(args []string) error {
	fs, flags := SetupDotFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	kinds, err := ParseEdgeKinds(flags.Kinds)
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output); err != nil {
			return err
		}
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("dot command requires exactly one corpus directory or archive")
	}
	corpusPath := fs.Arg(0)

	result, err := ResolveCorpus(corpusPath, flags.Corpus)
	if err != nil {
		return err
	}

	var dot string
	if len(kinds) > 0 {
		dot = result.Graph.DOTFiltered(kinds...)
	} else {
		dot = result.Graph.DOT()
	}

	if !flags.Quiet {
		OutputRunHeader(corpusPath, result)
		Writef(os.Stderr, "\n")
	}

	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, []byte(dot), 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}

	if _, err := os.Stdout.WriteString(dot); err != nil {
		return fmt.Errorf("writing graph to stdout: %w", err)
	}
	return nil
}
