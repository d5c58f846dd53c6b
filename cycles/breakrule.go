package cycles

import (
	"sort"

	"github.com/erraggy/schemagraph/resolver"
)

// BreakRule orders a cyclic group's internal edges by break preference.
//
// The analyzer severs the first ranked edge whose removal actually leaves
// the group cycle-free, so a rule only decides eligibility and preference,
// never whether a cut works.
type BreakRule interface {
	// Rank returns the candidate break edges in descending preference
	// order. Edges that must never be severed are omitted. An empty result
	// marks the group unresolvable.
	Rank(members []string, edges []Edge) []Edge
}

// LexicographicRule is the default break preference.
//
// Only field, value, item, and variant edges are eligible: struct fields and
// map values admit indirection naturally, collection elements and variant
// payloads less so, and composition edges not at all. Field and value edges
// outrank item and variant edges. Within a preference class the edge whose
// target sorts lexicographically last wins, with remaining ties settled by
// source and kind so the ranking is a total order.
type LexicographicRule struct{}

// Rank implements [BreakRule].
func (LexicographicRule) Rank(_ []string, edges []Edge) []Edge {
	var eligible []Edge
	for _, e := range edges {
		if breakClass(e.Kind) >= 0 {
			eligible = append(eligible, e)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if ca, cb := breakClass(a.Kind), breakClass(b.Kind); ca != cb {
			return ca < cb
		}
		if a.To != b.To {
			return a.To > b.To
		}
		if a.From != b.From {
			return a.From > b.From
		}
		if a.Kind != b.Kind {
			return a.Kind > b.Kind
		}
		return a.Field < b.Field
	})
	return eligible
}

// breakClass buckets edge kinds by how naturally they admit indirection:
// 0 for field and value edges, 1 for item and variant edges, -1 for
// everything else (ineligible).
func breakClass(k resolver.EdgeKind) int {
	switch k {
	case resolver.KindFieldType, resolver.KindValueType:
		return 0
	case resolver.KindItemType, resolver.KindVariant:
		return 1
	default:
		return -1
	}
}
