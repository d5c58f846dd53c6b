package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/sgerrors"
)

// buildTestGraph loads a small mixed corpus: an entity with a promoted
// definition, a primitive, and a node running on a service.
func buildTestGraph(t *testing.T) *SchemaGraph {
	t.Helper()
	return buildGraphFrom(t, map[string]string{
		"primitives/UUID.json": `{"type": "string", "format": "uuid"}`,
		"entities/Moment.json": `{
			"x-familiar-kind": "entity",
			"type": "object",
			"properties": {
				"id": {"$ref": "../primitives/UUID.json"},
				"att": {"$ref": "#/$defs/Attachment"}
			},
			"$defs": {
				"Attachment": {
					"type": "object",
					"properties": {"id": {"$ref": "../primitives/UUID.json"}}
				}
			}
		}`,
		"nodes/daemon.node.json": `{
			"x-familiar-kind": "node",
			"x-familiar-service": {"$ref": "services/api.service.json"},
			"x-familiar-reads": [{"$ref": "entities/Moment.json"}]
		}`,
		"services/api.service.json": `{"x-familiar-kind": "service"}`,
	})
}

func buildGraphFrom(t *testing.T, docs map[string]string, opts ...Option) *SchemaGraph {
	t.Helper()
	byID := make(map[string][]byte, len(docs))
	for id, src := range docs {
		byID[id] = []byte(src)
	}
	corpus, err := loader.New().LoadDocuments(byID)
	require.NoError(t, err)
	res, err := resolver.Resolve(corpus)
	require.NoError(t, err)
	g, err := Build(corpus, res, opts...)
	require.NoError(t, err)
	return g
}

func TestBuildGraph(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 5, g.EdgeCount())

	moment, ok := g.Node("entities/Moment.json")
	require.True(t, ok)
	assert.Equal(t, "entity", moment.Kind)
	assert.False(t, moment.IsDefinition())
	require.NotNil(t, moment.Doc)

	att, ok := g.Node("entities/Moment.json#Attachment")
	require.True(t, ok)
	assert.True(t, att.IsDefinition())
	assert.Equal(t, "definition", att.Kind, "unkinded definitions are labeled")
	assert.Equal(t, "entities/Moment.json", att.Path)

	// Edges are sorted by source, target, kind.
	assert.Equal(t, []Edge{
		{From: "entities/Moment.json", To: "entities/Moment.json#Attachment", Kind: resolver.KindFieldType, Field: "att"},
		{From: "entities/Moment.json", To: "primitives/UUID.json", Kind: resolver.KindFieldType, Field: "id"},
		{From: "entities/Moment.json#Attachment", To: "primitives/UUID.json", Kind: resolver.KindFieldType, Field: "id"},
		{From: "nodes/daemon.node.json", To: "entities/Moment.json", Kind: resolver.KindReads},
		{From: "nodes/daemon.node.json", To: "services/api.service.json", Kind: resolver.KindRunsOn},
	}, g.Edges())
}

func TestBuildIndexes(t *testing.T) {
	g := buildTestGraph(t)

	byPath := g.NodesByPath("entities/Moment.json")
	require.Len(t, byPath, 2)
	assert.Equal(t, "entities/Moment.json", byPath[0].ID)
	assert.Equal(t, "entities/Moment.json#Attachment", byPath[1].ID)

	moment := g.NodesByName("Moment")
	require.Len(t, moment, 1)
	assert.Equal(t, "entities/Moment.json", moment[0].ID)

	att := g.NodesByName("Attachment")
	require.Len(t, att, 1)
	assert.Equal(t, "entities/Moment.json#Attachment", att[0].ID)

	assert.Empty(t, g.NodesByName("Nope"))
}

func TestBuildEdgeAccessors(t *testing.T) {
	g := buildTestGraph(t)

	assert.Len(t, g.EdgesFrom("entities/Moment.json"), 2)
	assert.Len(t, g.EdgesTo("primitives/UUID.json"), 2)
	assert.True(t, g.HasEdge("nodes/daemon.node.json", "entities/Moment.json"))
	assert.False(t, g.HasEdge("entities/Moment.json", "nodes/daemon.node.json"))

	fields := g.EdgesOfKind(resolver.KindFieldType)
	assert.Len(t, fields, 3)

	counts := g.EdgeKindCounts()
	assert.Equal(t, 3, counts[resolver.KindFieldType])
	assert.Equal(t, 1, counts[resolver.KindReads])
	assert.Equal(t, 1, counts[resolver.KindRunsOn])

	assert.Equal(t, "entity", g.Kind("entities/Moment.json"))
	assert.Equal(t, "", g.Kind("unknown.json"))
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	// Two properties referencing the same target produce one edge per
	// (from, to, kind) triple, keeping the lexicographically first field.
	g := buildGraphFrom(t, map[string]string{
		"a.json": `{
			"type": "object",
			"properties": {
				"zebra": {"$ref": "b.json"},
				"apple": {"$ref": "b.json"}
			}
		}`,
		"b.json": `{"type": "string"}`,
	})

	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, Edge{From: "a.json", To: "b.json", Kind: resolver.KindFieldType, Field: "apple"}, g.Edges()[0])
}

func TestBuildDanglingBudget(t *testing.T) {
	docs := map[string]string{
		"a.json": `{"type": "object", "properties": {"x": {"$ref": "missing.json"}}}`,
		"b.json": `{"type": "object"}`,
	}
	byID := make(map[string][]byte, len(docs))
	for id, src := range docs {
		byID[id] = []byte(src)
	}
	corpus, err := loader.New().LoadDocuments(byID)
	require.NoError(t, err)
	res, err := resolver.Resolve(corpus)
	require.NoError(t, err)

	t.Run("default budget exceeded", func(t *testing.T) {
		_, err := Build(corpus, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, sgerrors.ErrGraphConstruction)

		var gce *sgerrors.GraphConstructionError
		require.ErrorAs(t, err, &gce)
		assert.Equal(t, 2, gce.TotalDocs)
		assert.Equal(t, 1, gce.DanglingDocs)
		assert.InDelta(t, 0.25, gce.Limit, 1e-9)
	})

	t.Run("raised budget passes", func(t *testing.T) {
		g, err := Build(corpus, res, WithMaxDanglingFraction(0.5))
		require.NoError(t, err)
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 0, g.EdgeCount(), "the dangling edge stays dropped")
	})
}

func TestBuildNilInputs(t *testing.T) {
	g, err := Build(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())

	corpus, err := loader.New().LoadDocuments(map[string][]byte{
		"a.json": []byte(`{"type": "object"}`),
	})
	require.NoError(t, err)

	g, err = Build(corpus, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuildOptionValidation(t *testing.T) {
	_, err := Build(nil, nil, WithMaxDanglingFraction(1.5))
	require.Error(t, err)
	assert.ErrorIs(t, err, sgerrors.ErrConfig)

	_, err = Build(nil, nil, WithMaxDanglingFraction(-0.1))
	require.Error(t, err)
	assert.ErrorIs(t, err, sgerrors.ErrConfig)
}
