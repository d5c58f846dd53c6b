package graph

import (
	"github.com/erraggy/schemagraph/resolver"
)

// Edge is a directed, typed relationship between two schemas.
type Edge = resolver.Edge

// EdgeKind classifies the relationship an edge represents.
type EdgeKind = resolver.EdgeKind

// SchemaGraph is the dependency graph of a schema corpus.
//
// Nodes are schema identifiers (corpus-relative paths, or "path#Name" for
// promoted definitions); edges are the typed relationships the resolver
// extracted. A SchemaGraph is read-only after [Build]: every accessor is safe
// for concurrent use.
type SchemaGraph struct {
	nodes  []*Node
	byID   map[string]*Node
	byPath map[string][]*Node
	byName map[string][]*Node

	edges []Edge
	out   map[string][]Edge
	in    map[string][]Edge
}

// Nodes returns every node sorted by ID.
func (g *SchemaGraph) Nodes() []*Node {
	return g.nodes
}

// Node returns the node with the given SchemaID.
func (g *SchemaGraph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// NodesByPath returns the nodes backed by the given source file: the root
// document plus its promoted definitions, sorted by ID.
func (g *SchemaGraph) NodesByPath(path string) []*Node {
	return g.byPath[path]
}

// NodesByName returns the nodes whose display name matches, sorted by ID.
// Several schemas may share a short name; callers disambiguate by ID.
func (g *SchemaGraph) NodesByName(name string) []*Node {
	return g.byName[name]
}

// Edges returns every edge, deduplicated and sorted by source, target, kind.
func (g *SchemaGraph) Edges() []Edge {
	return g.edges
}

// EdgesFrom returns the outgoing edges of a node in sorted order.
func (g *SchemaGraph) EdgesFrom(id string) []Edge {
	return g.out[id]
}

// EdgesTo returns the incoming edges of a node in sorted order.
func (g *SchemaGraph) EdgesTo(id string) []Edge {
	return g.in[id]
}

// EdgesOfKind returns the edges matching any of the given kinds, in sorted
// order. With no kinds it returns every edge.
func (g *SchemaGraph) EdgesOfKind(kinds ...EdgeKind) []Edge {
	if len(kinds) == 0 {
		return g.edges
	}
	match := make(map[EdgeKind]struct{}, len(kinds))
	for _, k := range kinds {
		match[k] = struct{}{}
	}
	var edges []Edge
	for _, e := range g.edges {
		if _, ok := match[e.Kind]; ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgeKindCounts returns the number of edges of each kind present.
func (g *SchemaGraph) EdgeKindCounts() map[EdgeKind]int {
	counts := make(map[EdgeKind]int)
	for _, e := range g.edges {
		counts[e.Kind]++
	}
	return counts
}

// HasEdge reports whether any edge connects from to to, regardless of kind.
func (g *SchemaGraph) HasEdge(from, to string) bool {
	for _, e := range g.out[from] {
		if e.To == to {
			return true
		}
	}
	return false
}

// Kind returns the x-familiar-kind of a schema, or "" if the schema is
// unknown or unkinded.
func (g *SchemaGraph) Kind(id string) string {
	if n, ok := g.byID[id]; ok {
		return n.Kind
	}
	return ""
}

// NodeCount returns the number of nodes.
func (g *SchemaGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *SchemaGraph) EdgeCount() int {
	return len(g.edges)
}
