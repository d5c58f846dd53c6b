// Package graph builds the dependency graph of a schema corpus from the
// edges the resolver extracted.
//
// Each corpus document, promoted definitions included, becomes a [Node];
// each distinct (from, to, kind) triple becomes one edge. The graph is
// read-only after construction and safe for concurrent reads, which lets the
// downstream analysis stages fan out over it without locking.
//
// # Quick Start
//
//	corpus, _ := loader.LoadWithOptions(loader.WithDir("schemas"))
//	res, _ := resolver.Resolve(corpus)
//	g, err := graph.Build(corpus, res)
//	if err != nil {
//		log.Fatal(err) // too many dangling documents
//	}
//	fmt.Println(g.NodeCount(), "schemas,", g.EdgeCount(), "edges")
//	for _, dep := range g.TransitiveDeps("entities/Moment.schema.json") {
//		fmt.Println(dep)
//	}
//
// # Dangling Budget
//
// A corpus where most references point nowhere produces a graph that is
// mostly disconnected and analysis over it would be misleading. Build fails
// with *sgerrors.GraphConstructionError when the fraction of documents
// carrying dangling references exceeds the configured budget (default 0.25).
// Below the budget, the dangling edges are simply absent; the resolver
// already reported each one as a warning.
//
// # Traversal
//
// Traversal helpers cover the common corpus questions: [SchemaGraph.TransitiveDeps]
// (what does this schema pull in), [SchemaGraph.BlastRadius] (what breaks if
// this schema changes), [SchemaGraph.Orphans] (what does nothing reference),
// and [SchemaGraph.TopologicalOrder] (dependency-first emission order for
// acyclic corpora). All results are sorted, so output is stable across runs.
//
// # Visualization
//
// [SchemaGraph.DOT] renders the graph for Graphviz, nodes colored by schema
// kind and edges by edge kind. [SchemaGraph.DOTFiltered] narrows the render
// to chosen edge kinds, which keeps large corpora readable.
package graph
