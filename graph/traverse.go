package graph

import (
	"sort"

	"github.com/erraggy/schemagraph/internal/maputil"
)

// Dependencies returns the distinct schemas the given one references
// directly, sorted. Unknown IDs yield nil.
func (g *SchemaGraph) Dependencies(id string) []string {
	return distinctTargets(g.out[id], func(e Edge) string { return e.To })
}

// Dependents returns the distinct schemas that reference the given one
// directly, sorted.
func (g *SchemaGraph) Dependents(id string) []string {
	return distinctTargets(g.in[id], func(e Edge) string { return e.From })
}

func distinctTargets(edges []Edge, pick func(Edge) string) []string {
	if len(edges) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		seen[pick(e)] = struct{}{}
	}
	return maputil.SortedKeys(seen)
}

// TransitiveDeps returns every schema transitively required by the given
// roots, the roots themselves included, sorted. Unknown roots are ignored.
//
// The walk is an iterative depth-first search, so deeply nested corpora
// cannot overflow the stack, and revisits are skipped, so cyclic references
// terminate.
func (g *SchemaGraph) TransitiveDeps(roots ...string) []string {
	return g.walk(roots, g.out, func(e Edge) string { return e.To }, nil)
}

// TransitiveDepsFiltered is TransitiveDeps following only edges of the given
// kinds. With no kinds it follows every edge.
func (g *SchemaGraph) TransitiveDepsFiltered(roots []string, kinds ...EdgeKind) []string {
	return g.walk(roots, g.out, func(e Edge) string { return e.To }, kinds)
}

// BlastRadius returns every schema that transitively depends on the given
// one, itself included, sorted: the set of schemas affected when it changes.
// Only edges of the given kinds are followed; with none, every edge.
func (g *SchemaGraph) BlastRadius(id string, kinds ...EdgeKind) []string {
	return g.walk([]string{id}, g.in, func(e Edge) string { return e.From }, kinds)
}

func (g *SchemaGraph) walk(roots []string, adj map[string][]Edge, pick func(Edge) string, kinds []EdgeKind) []string {
	var filter map[EdgeKind]struct{}
	if len(kinds) > 0 {
		filter = make(map[EdgeKind]struct{}, len(kinds))
		for _, k := range kinds {
			filter[k] = struct{}{}
		}
	}

	visited := make(map[string]struct{})
	var stack []string
	for _, root := range roots {
		if _, ok := g.byID[root]; ok {
			stack = append(stack, root)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		for _, e := range adj[id] {
			if filter != nil {
				if _, ok := filter[e.Kind]; !ok {
					continue
				}
			}
			stack = append(stack, pick(e))
		}
	}

	if len(visited) == 0 {
		return nil
	}
	return maputil.SortedKeys(visited)
}

// TopologicalOrder returns the schemas in dependency-first order: every edge
// target appears before its source. The order is deterministic: among ready
// nodes the smallest ID is emitted first. Returns false when the graph has a
// cycle; cycle analysis produces an order over condensed groups instead.
func (g *SchemaGraph) TopologicalOrder() ([]string, bool) {
	// Kahn's algorithm over reversed edges, so dependencies come out first.
	outdeg := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		outdeg[n.ID] = len(g.out[n.ID])
	}

	var ready []string
	for _, n := range g.nodes {
		if outdeg[n.ID] == 0 {
			ready = append(ready, n.ID)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var released []string
		for _, e := range g.in[id] {
			outdeg[e.From]--
			if outdeg[e.From] == 0 {
				released = append(released, e.From)
			}
		}
		if len(released) > 0 {
			sort.Strings(released)
			ready = mergeSorted(ready, released)
		}
	}

	if len(order) != len(g.nodes) {
		return nil, false
	}
	return order, true
}

// mergeSorted merges two ascending string slices into one.
func mergeSorted(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// RankedNode pairs a schema with an edge count for popularity listings.
type RankedNode struct {
	// ID is the schema identifier
	ID string
	// Count is the number of edges counted for the ranking
	Count int
}

// ByDependencyCount returns every schema with its direct dependency count,
// most dependencies first. Ties break by ID.
func (g *SchemaGraph) ByDependencyCount() []RankedNode {
	return g.rank(g.out)
}

// ByReferenceCount returns every schema with its direct dependent count,
// most referenced first. Ties break by ID.
func (g *SchemaGraph) ByReferenceCount() []RankedNode {
	return g.rank(g.in)
}

func (g *SchemaGraph) rank(adj map[string][]Edge) []RankedNode {
	ranked := make([]RankedNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		ranked = append(ranked, RankedNode{ID: n.ID, Count: len(adj[n.ID])})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
