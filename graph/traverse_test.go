package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/resolver"
)

func TestDependenciesAndDependents(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, []string{
		"entities/Moment.json#Attachment",
		"primitives/UUID.json",
	}, g.Dependencies("entities/Moment.json"))

	assert.Equal(t, []string{
		"entities/Moment.json",
		"entities/Moment.json#Attachment",
	}, g.Dependents("primitives/UUID.json"))

	assert.Nil(t, g.Dependencies("primitives/UUID.json"))
	assert.Nil(t, g.Dependencies("unknown.json"))
}

func TestTransitiveDeps(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, []string{
		"entities/Moment.json",
		"entities/Moment.json#Attachment",
		"primitives/UUID.json",
	}, g.TransitiveDeps("entities/Moment.json"))

	// The node pulls in everything through its reads edge.
	assert.Equal(t, []string{
		"entities/Moment.json",
		"entities/Moment.json#Attachment",
		"nodes/daemon.node.json",
		"primitives/UUID.json",
		"services/api.service.json",
	}, g.TransitiveDeps("nodes/daemon.node.json"))

	assert.Nil(t, g.TransitiveDeps("unknown.json"))
}

func TestTransitiveDepsFiltered(t *testing.T) {
	g := buildTestGraph(t)

	// Following only reads edges stops at the entity.
	assert.Equal(t, []string{
		"entities/Moment.json",
		"nodes/daemon.node.json",
	}, g.TransitiveDepsFiltered([]string{"nodes/daemon.node.json"}, resolver.KindReads))

	// No kinds means every edge.
	all := g.TransitiveDepsFiltered([]string{"nodes/daemon.node.json"})
	assert.Len(t, all, 5)
}

func TestTransitiveDepsCycleTerminates(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"a.json": `{"properties": {"b": {"$ref": "b.json"}}}`,
		"b.json": `{"properties": {"a": {"$ref": "a.json"}}}`,
	})

	assert.Equal(t, []string{"a.json", "b.json"}, g.TransitiveDeps("a.json"))
}

func TestBlastRadius(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, []string{
		"entities/Moment.json",
		"entities/Moment.json#Attachment",
		"nodes/daemon.node.json",
		"primitives/UUID.json",
	}, g.BlastRadius("primitives/UUID.json"))

	// Restricted to field edges, the node's reads edge is not followed.
	assert.Equal(t, []string{
		"entities/Moment.json",
		"entities/Moment.json#Attachment",
		"primitives/UUID.json",
	}, g.BlastRadius("primitives/UUID.json", resolver.KindFieldType))
}

func TestTopologicalOrder(t *testing.T) {
	g := buildTestGraph(t)

	order, ok := g.TopologicalOrder()
	require.True(t, ok)
	assert.Equal(t, []string{
		"primitives/UUID.json",
		"entities/Moment.json#Attachment",
		"entities/Moment.json",
		"services/api.service.json",
		"nodes/daemon.node.json",
	}, order)

	// Dependencies always precede their dependents.
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		assert.Less(t, pos[e.To], pos[e.From], "%s must precede %s", e.To, e.From)
	}
}

func TestTopologicalOrderCyclic(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"a.json": `{"properties": {"b": {"$ref": "b.json"}}}`,
		"b.json": `{"properties": {"a": {"$ref": "a.json"}}}`,
	})

	order, ok := g.TopologicalOrder()
	assert.False(t, ok)
	assert.Nil(t, order)
}

func TestRankedCounts(t *testing.T) {
	g := buildTestGraph(t)

	byRefs := g.ByReferenceCount()
	require.NotEmpty(t, byRefs)
	assert.Equal(t, RankedNode{ID: "primitives/UUID.json", Count: 2}, byRefs[0])

	byDeps := g.ByDependencyCount()
	require.NotEmpty(t, byDeps)
	assert.Equal(t, RankedNode{ID: "entities/Moment.json", Count: 2}, byDeps[0])
	last := byDeps[len(byDeps)-1]
	assert.Equal(t, 0, last.Count)
}
