// Package pipeline runs the complete schema analysis in one call: load,
// resolve references, build the graph, detect shapes, analyze cycles,
// classify, and resolve names.
//
// The individual stage packages stay usable on their own; this package is
// the assembly. It threads one configuration through every stage, merges
// every stage's diagnostics into a single list, and returns one [Result]
// carrying the graph, the emission order, the classifications, and the
// name table.
//
// # Quick Start
//
//	result, err := pipeline.Analyze(pipeline.WithDir("schemas"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, id := range result.Order {
//		fmt.Println(result.Identifier(id))
//	}
//
// # Concurrency
//
// Per-document reference extraction and shape detection are pure, so they
// fan out across a bounded worker pool. Every merge runs on the calling
// goroutine against the corpus's fixed document order, which makes the
// result identical at any worker count, including one.
//
// # Error Model
//
// The only fatal condition is graph construction exceeding its dangling
// budget. Everything else degrades the offending node and is reported: a
// run either succeeds with zero diagnostics, succeeds with warnings, or
// fails outright. Success means no error-severity diagnostics; see
// [Result].
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/loader] - Load corpora from directories, archives, or memory
//   - [github.com/erraggy/schemagraph/walker] - Traverse an analysis result
package pipeline
