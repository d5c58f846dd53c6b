//go:build integration

package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/internal/corpusutil"
	"github.com/erraggy/schemagraph/pipeline"
)

// analyzeProfile generates the profile's corpus and runs the full analysis
// over it, skipping large profiles in short mode.
func analyzeProfile(t *testing.T, p corpusutil.Profile, opts ...pipeline.Option) *pipeline.Result {
	t.Helper()
	corpusutil.SkipLargeInShortMode(t, p)

	docs := p.Generate()
	opts = append([]pipeline.Option{pipeline.WithDocuments(docs)}, opts...)
	res, err := pipeline.Analyze(opts...)
	require.NoError(t, err, "Failed to analyze %s corpus", p.Name)
	return res
}

// assertUniqueIdentifiers asserts that no two classifications share an
// identifier.
func assertUniqueIdentifiers(t *testing.T, res *pipeline.Result) {
	t.Helper()
	seen := make(map[string]string, len(res.Names.Names))
	for _, name := range res.Names.Names {
		if holder, dup := seen[name.Identifier]; dup {
			t.Errorf("Identifier %q assigned to both %s and %s",
				name.Identifier, holder, name.LogicalID)
		}
		seen[name.Identifier] = name.LogicalID
	}
}

// assertOrderComplete asserts that the emission order contains every graph
// node exactly once.
func assertOrderComplete(t *testing.T, res *pipeline.Result) {
	t.Helper()
	seen := make(map[string]int, len(res.Order))
	for _, id := range res.Order {
		seen[id]++
	}
	for _, node := range res.Graph.Nodes() {
		if count := seen[node.ID]; count != 1 {
			t.Errorf("Node %s appears %d times in emission order, want 1", node.ID, count)
		}
	}
	if len(res.Order) != len(res.Graph.Nodes()) {
		t.Errorf("Emission order has %d entries for %d nodes",
			len(res.Order), len(res.Graph.Nodes()))
	}
}

// assertBrokenEdgesWithinCycles asserts that every severed edge connects two
// members of the same cyclic group.
func assertBrokenEdgesWithinCycles(t *testing.T, res *pipeline.Result) {
	t.Helper()
	for _, edge := range res.BrokenEdges() {
		group, ok := res.GroupOf(edge.From)
		if !ok {
			t.Errorf("Broken edge %s -> %s: source not in any group", edge.From, edge.To)
			continue
		}
		if !group.Cyclic() {
			t.Errorf("Broken edge %s -> %s: group is not cyclic", edge.From, edge.To)
		}
		if !group.Contains(edge.To) {
			t.Errorf("Broken edge %s -> %s: target outside the group", edge.From, edge.To)
		}
	}
}

// countSyntheticClassifications counts classifications introduced as variant
// payload helpers.
func countSyntheticClassifications(res *pipeline.Result) int {
	count := 0
	for _, cl := range res.Classifications {
		if cl.Synthetic {
			count++
		}
	}
	return count
}
