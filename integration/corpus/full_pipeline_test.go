//go:build integration

package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/internal/corpusutil"
	"github.com/erraggy/schemagraph/internal/testutil"
	"github.com/erraggy/schemagraph/namer"
	"github.com/erraggy/schemagraph/pipeline"
)

// TestCorpus_FullPipeline_ProfileCounts runs every corpus profile through
// the pipeline and checks the stats against the counts the profile
// guarantees by construction.
func TestCorpus_FullPipeline_ProfileCounts(t *testing.T) {
	for _, p := range corpusutil.Profiles {
		t.Run(p.Name, func(t *testing.T) {
			res := analyzeProfile(t, p)

			assert.True(t, res.Success, "Analysis should succeed")
			assert.Empty(t, res.Issues, "Generated corpus should analyze without issues")

			assert.Equal(t, p.DocumentCount(), res.Stats.Documents, "document count")
			assert.Equal(t, p.DefinitionCount(), res.Stats.Definitions, "definition count")
			assert.Equal(t, p.DocumentCount()+p.DefinitionCount(), res.Stats.Nodes, "node count")
			assert.Equal(t, p.CyclicGroupCount(), res.Stats.CyclicGroups, "cyclic group count")
			assert.Equal(t, len(p.Rings), res.Stats.BrokenEdges, "broken edge count")
			assert.Equal(t, p.SyntheticCount(), res.Stats.Synthetics, "synthetic count")
			assert.Equal(t, res.Stats.Nodes+res.Stats.Synthetics, res.Stats.Classifications,
				"classifications should cover every node plus every synthetic")
			assert.Zero(t, res.Stats.Collisions, "generated names should not collide")

			assert.Equal(t, p.SyntheticCount(), countSyntheticClassifications(res))

			assertUniqueIdentifiers(t, res)
			assertOrderComplete(t, res)
			assertBrokenEdgesWithinCycles(t, res)

			t.Logf("  %s: %d nodes, %d edges, %d groups (%d cyclic), load %v, analyze %v",
				p.Name, res.Stats.Nodes, res.Stats.Edges,
				res.Stats.Groups, res.Stats.CyclicGroups,
				res.LoadTime, res.AnalyzeTime)
		})
	}
}

// TestCorpus_FullPipeline_RingHandling verifies that every generated
// reference ring becomes one cyclic group broken at its optional edge.
func TestCorpus_FullPipeline_RingHandling(t *testing.T) {
	for _, p := range corpusutil.Profiles {
		t.Run(p.Name, func(t *testing.T) {
			res := analyzeProfile(t, p)

			for ringIdx := range p.Rings {
				members := p.RingMembers(ringIdx)
				require.NotEmpty(t, members)

				group, ok := res.GroupOf(members[0])
				require.Truef(t, ok, "Ring %d member %s not in any group", ringIdx, members[0])
				assert.ElementsMatch(t, members, group.Members,
					"Ring %d should form one group", ringIdx)

				assert.True(t, group.Cyclic())
				assert.Equal(t, "break_via_optional", group.Handling.Kind.String(),
					"Ring %d breaks at its optional next field", ringIdx)
				require.NotNil(t, group.Handling.Edge)
				assert.Equal(t, "next", group.Handling.Edge.Field)
			}
		})
	}
}

// TestCorpus_FullPipeline_Synthetics verifies that each generated union
// yields a discriminated union classification with exactly one helper for
// its multi-field variant.
func TestCorpus_FullPipeline_Synthetics(t *testing.T) {
	p := *corpusutil.ByName("Medium")
	res := analyzeProfile(t, p)

	synthetics := 0
	for _, cl := range res.Classifications {
		if !cl.Synthetic {
			continue
		}
		synthetics++

		assert.Contains(t, cl.ID, "::", "Synthetic ID should carry the variant suffix")
		require.NotEmpty(t, cl.Parent)

		parent, ok := res.Classification(cl.Parent)
		require.Truef(t, ok, "Parent %s of synthetic %s missing", cl.Parent, cl.ID)
		assert.Equal(t, "discriminated_union", parent.Kind.String())
		assert.Equal(t, "event", parent.Discriminator)

		// The multi-field variant is always "created" in generated unions.
		ident := res.Identifier(cl.ID)
		assert.True(t, strings.HasSuffix(ident, "Created"),
			"Synthetic identifier %q should end with the variant name", ident)

		name, ok := res.Names.Name(cl.ID)
		require.True(t, ok)
		assert.Equal(t, namer.OriginSyntheticHelper, name.Origin)
	}

	assert.Equal(t, p.SyntheticCount(), synthetics)
}

// TestCorpus_FullPipeline_InputModes analyzes the same corpus through the
// in-memory, directory, and archive inputs and requires identical results.
func TestCorpus_FullPipeline_InputModes(t *testing.T) {
	p := *corpusutil.ByName("Small")
	docs := p.Generate()

	fromDocs, err := pipeline.Analyze(pipeline.WithDocuments(docs))
	require.NoError(t, err)

	dir := testutil.WriteCorpusDir(t, docs)
	fromDir, err := pipeline.Analyze(pipeline.WithDir(dir))
	require.NoError(t, err)

	archive := testutil.WriteCorpusArchive(t, docs)
	fromArchive, err := pipeline.Analyze(pipeline.WithArchive(archive))
	require.NoError(t, err)

	assert.Equal(t, fromDocs.Order, fromDir.Order, "directory input changed the order")
	assert.Equal(t, fromDocs.Order, fromArchive.Order, "archive input changed the order")
	assert.Equal(t, fromDocs.Names.Names, fromDir.Names.Names)
	assert.Equal(t, fromDocs.Names.Names, fromArchive.Names.Names)
	assert.Equal(t, fromDocs.Stats.TotalBytes, fromDir.Stats.TotalBytes)
	assert.Equal(t, fromDocs.Stats.TotalBytes, fromArchive.Stats.TotalBytes)
}
