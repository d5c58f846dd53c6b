// Package walker provides a callback traversal API for completed analysis
// results.
//
// The walker enables single-pass traversal of a [pipeline.Result] in
// emission order, the order a code generator would declare types in. This is
// useful for rendering, reporting, and export tasks that need to inspect
// groups, nodes, edges, classifications, and diagnostics in a consistent
// way.
//
// # Quick Start
//
// Walk a schema directory and collect all resolved identifiers:
//
//	var identifiers []string
//	err := walker.WalkWithOptions(
//	    walker.WithDir("schemas"),
//	    walker.WithNodeHandler(func(wc *walker.WalkContext, node *graph.Node) walker.Action {
//	        identifiers = append(identifiers, wc.Identifier)
//	        return walker.Continue
//	    }),
//	)
//
// With a result in hand, walk it directly:
//
//	result, _ := pipeline.Analyze(pipeline.WithDir("schemas"))
//	err := walker.Walk(result,
//	    walker.WithClassificationHandler(func(wc *walker.WalkContext, cl *classifier.Classification) walker.Action {
//	        fmt.Println(wc.Identifier, cl.Kind)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// A group's children are its member nodes; a node's children are its
// outgoing edges and its classification; a classification's children are
// the synthetic helpers it introduced. Example using SkipChildren to pass
// over cyclic groups:
//
//	walker.Walk(result,
//	    walker.WithGroupHandler(func(wc *walker.WalkContext, group cycles.SccGroup) walker.Action {
//	        if group.Cyclic() {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	    walker.WithNodeHandler(handleAcyclicNode),
//	)
//
// # Visit Order
//
// The walk follows the emission order end to end:
//
//   - Groups visit in condensation topological order, dependencies first.
//   - Member nodes visit in sorted order within their group, so the node
//     sequence equals [pipeline.Result.Order].
//   - Each node's outgoing edges visit in sorted order, then its
//     classification, then the classification's synthetic helpers. The
//     classification sequence equals [pipeline.Result.Classifications].
//   - Diagnostics visit last, in stage order.
//
// # WalkContext
//
// Every handler receives a [WalkContext] as its first parameter, providing
// contextual information about the current node:
//
//   - SchemaID: Canonical ID of the schema in scope
//   - Identifier: Resolved identifier from the name table
//   - Group: The strongly connected group in scope
//
// Use helper methods like [WalkContext.InGroupScope] and
// [WalkContext.InCycle] for scope checks.
//
// # Context Propagation
//
// Pass a [context.Context] for cancellation and timeout support:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	walker.Walk(result,
//	    walker.WithUserContext(ctx),
//	    walker.WithNodeHandler(func(wc *walker.WalkContext, node *graph.Node) walker.Action {
//	        if wc.Context().Err() != nil {
//	            return walker.Stop
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Built-in Collectors
//
// For common collection patterns, pre-built helpers gather nodes and
// classifications in one pass: [CollectNodes] returns a [NodeCollector]
// with emission-order, cyclic-only, by-ID, and by-identifier views;
// [CollectClassifications] returns a [ClassificationCollector] with
// emission-order, synthetic-only, by-ID, and by-kind views.
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/pipeline] - Produce the results this package walks
//   - [github.com/erraggy/schemagraph/classifier] - Classification details handlers receive
//   - [github.com/erraggy/schemagraph/cycles] - Group and ordering details handlers receive
package walker
