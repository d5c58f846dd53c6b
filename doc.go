// Package schemagraph provides comprehensive tools for analyzing corpora of
// interlinked schema documents: dependency graphs, cycle analysis, shape
// classification, and deterministic type naming.
//
// schemagraph reads a directory (or archive, or in-memory set) of JSON/YAML
// schema documents, resolves every cross-document reference into a typed edge,
// condenses the resulting graph into strongly connected groups, classifies
// each schema into a type kind, and assigns each one a collision-free
// identifier.
//
// # Overview
//
// The library consists of eight primary packages, one per pipeline stage:
//
//   - loader: Discover and decode schema documents into a corpus
//   - resolver: Extract typed reference edges from each document
//   - graph: Build and query the immutable schema dependency graph
//   - cycles: Condense the graph into strongly connected groups and break cycles
//   - shapes: Detect the structural shape of each schema
//   - classifier: Map shapes to type kinds (struct, enum, union, newtype, ...)
//   - namer: Allocate deterministic, collision-free identifiers
//   - pipeline: Orchestrate all stages into a single Analyze call
//
// A ninth package, walker, provides callback-driven traversal of a completed
// analysis result.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/schemagraph
//
// # Quick Start
//
// Analyze a directory of schema documents:
//
//	import "github.com/erraggy/schemagraph/pipeline"
//
//	result, err := pipeline.Analyze(pipeline.WithDir("schemas/"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Nodes: %d, Edges: %d, Cyclic groups: %d\n",
//		result.Stats.Nodes, result.Stats.Edges, result.Stats.CyclicGroups)
//
// Inspect the classification and identifier of each schema in emission order:
//
//	for _, cl := range result.Classifications {
//		fmt.Printf("%s: %s -> %s\n", cl.ID, cl.Kind, result.Identifier(cl.ID))
//	}
//
// Query the dependency graph:
//
//	import "github.com/erraggy/schemagraph/graph"
//
//	deps := result.Graph.TransitiveDeps("entities/pet.json")
//	radius := result.Graph.BlastRadius("entities/owner.json")
//
// # Loader Package
//
// The loader package discovers and decodes schema documents from a directory
// tree, an explicit file list, a txtar archive, or in-memory content. Every
// document gets a BLAKE3 content fingerprint, and documents holding $defs or
// definitions yield one additional corpus entry per local definition.
//
// Key features:
//   - Multi-format support (JSON via goccy/go-json, YAML via yaml/v4)
//   - Doublestar glob patterns for corpus discovery
//   - Optional validation against the JSON Schema 2020-12 meta-schema
//   - Duplicate detection through content fingerprints
//   - Resource limits (maximum file size, maximum document count)
//
// Example:
//
//	corpus, err := loader.LoadWithOptions(
//		loader.WithDir("schemas/"),
//		loader.WithGlob("**/*.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d documents\n", len(corpus.Documents))
//
// # Graph Package
//
// The graph package holds the immutable schema dependency graph: one node per
// schema, one typed edge per reference. It answers dependency, dependent,
// orphan, and impact queries, and exports Graphviz DOT.
//
// Key features:
//   - O(1) node lookup by schema ID, plus path and name indexes
//   - Typed edges (ref, extends, variant, item, value, field, ...)
//   - Transitive dependency and blast-radius traversal
//   - Orphan categorization (isolated vs consumer-only)
//   - DOT export with per-kind edge styling and filtering
//
// # Cycles Package
//
// The cycles package runs Tarjan's strongly connected components algorithm
// over the graph, orders the condensation topologically, and decides how each
// cyclic group is handled. The break rule that picks which edge to sever is
// pluggable.
//
// Example:
//
//	analysis, err := cycles.Analyze(g)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, group := range analysis.CyclicGroups() {
//		fmt.Printf("cycle: %v (%s)\n", group.Members, group.Handling)
//	}
//
// # Classifier and Namer Packages
//
// The classifier package maps each schema's detected shape to a type kind:
// struct, enum, discriminated union, newtype, collection, map, or alias.
// Discriminated unions synthesize helper classifications for inline variants.
// The namer package then assigns every classification a deterministic
// PascalCase identifier, resolving collisions with path-derived suffixes and
// reporting every contested name as a diagnostic.
//
// # Walker Package
//
// The walker package traverses a completed analysis result in emission order,
// invoking registered handlers for groups, nodes, edges, classifications, and
// diagnostics. Handlers steer traversal by returning Continue, SkipChildren,
// or Stop.
//
// Example:
//
//	err := walker.WalkWithOptions(
//		walker.WithDir("schemas/"),
//		walker.WithNodeHandler(func(wc *walker.WalkContext, node *graph.Node) walker.Action {
//			fmt.Printf("%s -> %s\n", node.ID, wc.Identifier)
//			return walker.Continue
//		}),
//	)
//
// # Common Workflows
//
// Analyze once, query many times:
//
//	result, err := pipeline.Analyze(pipeline.WithDir("schemas/"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Check diagnostics before trusting the graph.
//	if result.HasErrors() {
//		for _, iss := range result.IssuesBySeverity(pipeline.SeverityError) {
//			fmt.Printf("%s: %s\n", iss.SchemaID, iss.Message)
//		}
//		log.Fatal("corpus has errors")
//	}
//
//	// Impact analysis for a planned change.
//	for _, id := range result.Graph.BlastRadius("entities/pet.json") {
//		fmt.Println("affected:", id)
//	}
//
// Audit a corpus for dead schemas:
//
//	for _, orphan := range result.Graph.IsolatedSchemas() {
//		fmt.Printf("unreferenced: %s\n", orphan.SchemaID)
//	}
//
// # Security Considerations
//
// All packages implement defensive input handling:
//
//   - Path traversal protection: corpus discovery stays inside the configured
//     root directory
//   - Resource limits: maximum file size (default 10 MiB) and maximum document
//     count (default 10000) guard against resource exhaustion
//   - No remote references: http(s) URLs in $ref are treated as dangling,
//     never fetched
//
// # Limitations
//
//   - Remote $ref targets are not resolved; only corpus-relative references
//     produce edges
//   - Meta-validation targets JSON Schema draft 2020-12; earlier drafts decode
//     but are not meta-checked
//   - Extension fields (x-*) are preserved and surfaced but not interpreted
//     beyond the documented infrastructure keys
//
// # Performance Tips
//
// For best performance:
//
//   - Tune pipeline.WithWorkers for large corpora (defaults to GOMAXPROCS)
//   - Leave meta-validation off unless you need schema-spec conformance checks
//   - Reuse one Result for all queries; every graph query is read-only and
//     safe for concurrent use
//
// # Error Handling
//
// Fatal problems return errors wrapping the sgerrors sentinels (ErrLoad,
// ErrReference, ErrGraphConstruction, ErrCycle, ...), so callers can branch
// with errors.Is. Non-fatal problems never abort a run: they are collected as
// issues on the result with a severity and a stable code, and
// Result.Success reports whether any reached error severity.
//
// # Command-Line Interface
//
// In addition to the library packages, schemagraph provides a command-line
// interface:
//
//	# Analyze a corpus
//	schemagraph analyze schemas/
//
//	# Inspect cycles
//	schemagraph cycles schemas/
//
//	# Export the dependency graph
//	schemagraph dot -o graph.dot schemas/
//
//	# Serve analysis tools over the Model Context Protocol
//	schemagraph mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/schemagraph/cmd/schemagraph@latest
//
// # Additional Resources
//
//   - JSON Schema Specification: https://json-schema.org
//   - Go Package Documentation: https://pkg.go.dev/github.com/erraggy/schemagraph
package schemagraph
