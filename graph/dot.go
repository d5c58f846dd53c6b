package graph

import (
	"fmt"
	"sort"
	"strings"
)

// nodeKindColor returns the fill color for a node in DOT output based on its
// x-familiar-kind.
func nodeKindColor(kind string) string {
	switch kind {
	case "node":
		return "#2196F3"
	case "system":
		return "#4CAF50"
	case "resource":
		return "#FF9800"
	case "queue":
		return "#9C27B0"
	case "entity":
		return "#00BCD4"
	case "primitive":
		return "#607D8B"
	default:
		return "#9E9E9E"
	}
}

func dotQuote(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// DOT renders the graph in Graphviz DOT format. Nodes are filled by schema
// kind, edges are colored and labeled by edge kind. The output is stable:
// nodes appear in ID order and edges in sorted order.
func (g *SchemaGraph) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	for _, n := range g.nodes {
		fmt.Fprintf(&sb, "  %q [label=\"%s\", fillcolor=\"%s\", style=filled];\n",
			n.ID, dotQuote(n.Label()), nodeKindColor(n.Kind))
	}

	for _, e := range g.edges {
		fmt.Fprintf(&sb, "  %q -> %q [color=\"%s\", label=\"%s\"];\n",
			e.From, e.To, e.Kind.Color(), e.Kind)
	}

	sb.WriteString("}\n")
	return sb.String()
}

// DOTFiltered renders only the edges of the given kinds and the nodes they
// touch. With no kinds it includes every edge.
func (g *SchemaGraph) DOTFiltered(kinds ...EdgeKind) string {
	match := make(map[EdgeKind]struct{}, len(kinds))
	for _, k := range kinds {
		match[k] = struct{}{}
	}
	included := func(e Edge) bool {
		if len(match) == 0 {
			return true
		}
		_, ok := match[e.Kind]
		return ok
	}

	relevant := make(map[string]struct{})
	for _, e := range g.edges {
		if included(e) {
			relevant[e.From] = struct{}{}
			relevant[e.To] = struct{}{}
		}
	}
	ids := make([]string, 0, len(relevant))
	for id := range relevant {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	for _, id := range ids {
		label := id
		if n, ok := g.byID[id]; ok {
			label = n.Label()
		}
		fmt.Fprintf(&sb, "  %q [label=\"%s\"];\n", id, dotQuote(label))
	}

	for _, e := range g.edges {
		if included(e) {
			fmt.Fprintf(&sb, "  %q -> %q [color=\"%s\"];\n", e.From, e.To, e.Kind.Color())
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
