// Package cycles partitions a schema graph into strongly connected groups
// and decides how each cyclic group becomes emittable.
//
// Mutually recursive schemas cannot all be declared before their
// dependencies, so emission needs two answers per group: which edge to defer
// behind an indirection, and where the group sits in the order of all
// groups. Analysis computes strongly connected components over the ownership
// subgraph (infrastructure edges never force declaration order), severs one
// edge per cyclic group, and arranges the groups so that every group only
// references groups emitted before it.
//
// # Quick Start
//
//	g, err := graph.Build(corpus, res)
//	if err != nil {
//		log.Fatal(err)
//	}
//	analysis, err := cycles.Analyze(g)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, group := range analysis.CyclicGroups() {
//		fmt.Println(group.Handling)
//	}
//
// # Break Decisions
//
// Each cyclic group carries one [CycleHandling]: break at a field edge whose
// field is already optional (optionality alone defers the reference), break
// any other eligible edge behind a heap indirection, or report the group
// unresolvable when no single cut frees it. The preference among candidate
// edges is pluggable through [BreakRule]; [LexicographicRule] is the
// default and prefers field and value edges, then the edge whose target
// sorts last.
//
// # Emission Order
//
// Groups come back in a topological order of the condensation graph,
// dependencies first. [Analysis.EmissionOrder] flattens that order into the
// schema sequence downstream classification follows.
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/graph] - Build the graph this package analyzes
//   - [github.com/erraggy/schemagraph/classifier] - Consume break decisions when mapping schemas to type shapes
package cycles
