package resolver

import (
	"fmt"
	"sort"
)

// Edge is a directed, typed relationship between two schemas.
type Edge struct {
	// From is the SchemaID of the referencing schema
	From string
	// To is the SchemaID of the referenced schema
	To string
	// Kind is the relationship the edge represents
	Kind EdgeKind
	// Field is the property name that introduced a field-type edge, empty
	// for other kinds. Cycle analysis uses it to decide whether the broken
	// property is optional in the source document.
	Field string
}

// String returns the edge in "from -[kind]-> to" form.
func (e Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.From, e.Kind, e.To)
}

// SortEdges orders edges by source, target, kind, then field. Graph
// construction relies on this order when collapsing duplicates.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Field < b.Field
	})
}
