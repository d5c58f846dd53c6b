package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/schemagraph/pipeline"
)

// HandleGraph routes the graph command to the appropriate subcommand handler.
func HandleGraph(args []string) error {
	if len(args) == 0 {
		printGraphUsage()
		return fmt.Errorf("graph command requires a subcommand")
	}

	subcommand := args[0]

	// Handle --help at graph level
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printGraphUsage()
		return nil
	}

	subArgs := args[1:]

	switch subcommand {
	case "deps":
		return handleGraphNeighbors("deps", subArgs)
	case "dependents":
		return handleGraphNeighbors("dependents", subArgs)
	case "orphans":
		return handleGraphOrphans(subArgs)
	case "edges":
		return handleGraphEdges(subArgs)
	default:
		printGraphUsage()
		return fmt.Errorf("unknown graph subcommand: %s", subcommand)
	}
}

// GraphFlags contains common flags shared by all graph subcommands.
type GraphFlags struct {
	Format string // Output format: text, table, json, yaml.
	Quiet  bool   // Suppress headers and decoration for piping.
	Corpus CorpusFlags
}

func addGraphFlags(fs *flag.FlagSet, flags *GraphFlags) {
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, table, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows, no headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows, no headers")
	AddCorpusFlags(fs, &flags.Corpus)
}

// handleGraphNeighbors implements "graph deps" and "graph dependents": the
// schemas one schema references, or the schemas that reference it.
func handleGraphNeighbors(direction string, args []string) error {
	fs := flag.NewFlagSet("graph "+direction, flag.ContinueOnError)

	id := fs.String("id", "", "schema id to query (e.g. entities/pet.json or shapes.json#Circle)")
	transitive := fs.Bool("transitive", false, "follow edges transitively instead of one hop")
	kindCSV := fs.String("kinds", "", "comma-separated edge kinds to follow (default all)")

	var flags GraphFlags
	addGraphFlags(fs, &flags)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kinds, err := ParseEdgeKinds(*kindCSV)
	if err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("graph %s requires --id", direction)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("graph %s requires exactly one corpus directory or archive", direction)
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}
	if _, ok := result.Graph.Node(*id); !ok {
		return fmt.Errorf("schema %q not found in corpus", *id)
	}

	var ids []string
	if *transitive {
		var closure []string
		if direction == "deps" {
			closure = result.Graph.TransitiveDepsFiltered([]string{*id}, kinds...)
		} else {
			closure = result.Graph.BlastRadius(*id, kinds...)
		}
		// The closure includes the queried schema itself; strip it so the
		// listing answers the caller's question and nothing more.
		for _, cid := range closure {
			if cid != *id {
				ids = append(ids, cid)
			}
		}
	} else {
		if direction == "deps" {
			ids = result.Graph.Dependencies(*id)
		} else {
			ids = result.Graph.Dependents(*id)
		}
	}

	if !flags.Quiet {
		noun := "dependencies"
		if direction == "dependents" {
			noun = "dependents"
		}
		scope := "direct"
		if *transitive {
			scope = "transitive"
		}
		Writef(os.Stderr, "%s: %d %s %s\n\n", *id, len(ids), scope, noun)
	}

	if len(ids) == 0 {
		return nil
	}

	headers := []string{"SCHEMA", "IDENTIFIER", "KIND"}
	rows := make([][]string, 0, len(ids))
	for _, cid := range ids {
		rows = append(rows, []string{cid, result.Identifier(cid), result.Graph.Kind(cid)})
	}
	return RenderTable(os.Stdout, "Schemas", headers, rows, flags.Format, flags.Quiet)
}

// handleGraphOrphans implements "graph orphans": root documents nothing
// references, split into expected roots, consumer-only tops, and isolated
// schemas.
func handleGraphOrphans(args []string) error {
	fs := flag.NewFlagSet("graph orphans", flag.ContinueOnError)

	category := fs.String("category", "", "only show orphans in this top-level corpus directory")
	isolatedOnly := fs.Bool("isolated-only", false, "only show schemas with no edges at all (dead schema candidates)")

	var flags GraphFlags
	addGraphFlags(fs, &flags)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("graph orphans requires exactly one corpus directory or archive")
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}

	all := result.Graph.Orphans()
	isolated, consumerOnly := 0, 0
	rows := make([][]string, 0, len(all))
	for _, o := range all {
		if o.HasOutgoing {
			consumerOnly++
		} else {
			isolated++
		}
		if *isolatedOnly && o.HasOutgoing {
			continue
		}
		if *category != "" && !strings.EqualFold(o.Category, *category) {
			continue
		}
		role := "isolated"
		switch {
		case o.ExpectedRoot:
			role = "expected root"
		case o.HasOutgoing:
			role = "consumer only"
		}
		rows = append(rows, []string{o.SchemaID, o.Category, o.Kind, role})
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Orphans: %d (%d isolated, %d consumer-only)\n\n",
			len(all), isolated, consumerOnly)
	}

	if len(rows) == 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "No orphans matched the given filters.\n")
		}
		return nil
	}

	headers := []string{"SCHEMA", "CATEGORY", "KIND", "ROLE"}
	return RenderTable(os.Stdout, "Orphan Schemas", headers, rows, flags.Format, flags.Quiet)
}

// handleGraphEdges implements "graph edges": the typed reference edges of
// the corpus, optionally restricted by kind.
func handleGraphEdges(args []string) error {
	fs := flag.NewFlagSet("graph edges", flag.ContinueOnError)

	kindCSV := fs.String("kinds", "", "comma-separated edge kinds to include (default all)")
	counts := fs.Bool("counts", false, "show per-kind edge counts instead of individual edges")

	var flags GraphFlags
	addGraphFlags(fs, &flags)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kinds, err := ParseEdgeKinds(*kindCSV)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("graph edges requires exactly one corpus directory or archive")
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}

	if *counts {
		return renderEdgeCounts(result, flags)
	}

	edges := result.Graph.Edges()
	if len(kinds) > 0 {
		edges = result.Graph.EdgesOfKind(kinds...)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Edges: %d of %d\n\n", len(edges), result.Graph.EdgeCount())
	}

	if len(edges) == 0 {
		return nil
	}

	headers := []string{"FROM", "TO", "KIND", "FIELD"}
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.From, e.To, e.Kind.String(), e.Field})
	}
	return RenderTable(os.Stdout, "Edges", headers, rows, flags.Format, flags.Quiet)
}

// renderEdgeCounts prints the per-kind edge distribution, largest first.
func renderEdgeCounts(result *pipeline.Result, flags GraphFlags) error {
	byKind := result.Graph.EdgeKindCounts()
	kinds := make([]string, 0, len(byKind))
	counts := make(map[string]int, len(byKind))
	for kind, n := range byKind {
		kinds = append(kinds, kind.String())
		counts[kind.String()] = n
	}
	// Largest family first, ties by name.
	for i := 1; i < len(kinds); i++ {
		for j := i; j > 0; j-- {
			a, b := kinds[j-1], kinds[j]
			if counts[b] > counts[a] || (counts[b] == counts[a] && b < a) {
				kinds[j-1], kinds[j] = b, a
			} else {
				break
			}
		}
	}

	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, []string{kind, fmt.Sprintf("%d", counts[kind])})
	}
	return RenderTable(os.Stdout, "Edge Kinds", []string{"KIND", "COUNT"}, rows, flags.Format, flags.Quiet)
}

func printGraphUsage() {
	Writef(os.Stderr, `Usage: schemagraph graph <subcommand> [flags] <dir|archive.txtar>

Query the schema dependency graph.

Subcommands:
  deps          List the schemas one schema references
  dependents    List the schemas that reference one schema (blast radius)
  orphans       List root documents nothing references
  edges         List the typed reference edges of the corpus

Common Flags:
  --format      Output format: text (default), table, json, yaml
  -q, --quiet   Suppress headers and decoration for piping

Examples:
  schemagraph graph deps --id entities/pet.json ./schemas
  schemagraph graph deps --id entities/pet.json --transitive --kinds field,extends ./schemas
  schemagraph graph dependents --id shared/uuid.json --transitive ./schemas
  schemagraph graph orphans --isolated-only ./schemas
  schemagraph graph edges --counts ./schemas

Run 'schemagraph graph <subcommand> --help' for subcommand-specific flags.
`)
}
