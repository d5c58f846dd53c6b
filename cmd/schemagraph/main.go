package main

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/schemagraph"
	"github.com/erraggy/schemagraph/cmd/schemagraph/commands"
	"github.com/erraggy/schemagraph/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(schemagraph.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "analyze":
		if err := commands.HandleAnalyze(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "graph":
		if err := commands.HandleGraph(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "cycles":
		if err := commands.HandleCycles(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "classify":
		if err := commands.HandleClassify(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "names":
		if err := commands.HandleNames(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "dot":
		if err := commands.HandleDot(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{
	"analyze", "graph", "cycles", "classify", "names", "dot", "mcp", "version", "help",
}

// suggestCommand returns the closest known command within edit distance 2,
// or the empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`schemagraph - schema corpus dependency analyzer

Usage:
  schemagraph <command> [options]

Commands:
  analyze     Run the full analysis pipeline over a schema corpus
  graph       Query the dependency graph (deps, dependents, orphans, edges)
  cycles      Inspect strongly connected groups and cycle-break decisions
  classify    List type classifications for every schema
  names       List resolved identifiers and collisions
  dot         Export the dependency graph as Graphviz DOT
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schemagraph analyze ./schemas
  schemagraph analyze --severity error --format json corpus.txtar
  schemagraph graph deps --id entities/pet.json ./schemas
  schemagraph graph orphans --isolated-only ./schemas
  schemagraph cycles --all ./schemas
  schemagraph classify --kind discriminated_union ./schemas
  schemagraph dot -o graph.dot ./schemas

Run 'schemagraph <command> --help' for more information on a command.`)
}
