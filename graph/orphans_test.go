package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphans(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"primitives/UUID.json": `{"type": "string"}`,
		"entities/Moment.json": `{
			"x-familiar-kind": "entity",
			"properties": {"id": {"$ref": "../primitives/UUID.json"}},
			"$defs": {"Unused": {"type": "object"}}
		}`,
		"nodes/daemon.node.json": `{
			"x-familiar-kind": "node",
			"x-familiar-reads": [{"$ref": "entities/Moment.json"}]
		}`,
		"misc/Leftover.json": `{"type": "object"}`,
	})

	orphans := g.Orphans()
	require.Len(t, orphans, 2, "the unreferenced definition is not an orphan")

	assert.Equal(t, OrphanInfo{
		SchemaID:     "misc/Leftover.json",
		Path:         "misc/Leftover.json",
		Category:     "misc",
		Kind:         "",
		ExpectedRoot: false,
		HasOutgoing:  false,
	}, orphans[0])

	assert.Equal(t, OrphanInfo{
		SchemaID:     "nodes/daemon.node.json",
		Path:         "nodes/daemon.node.json",
		Category:     "nodes",
		Kind:         "node",
		ExpectedRoot: true,
		HasOutgoing:  true,
	}, orphans[1])
}

func TestOrphanPartitions(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"nodes/daemon.node.json": `{
			"x-familiar-kind": "node",
			"x-familiar-reads": [{"$ref": "entities/Moment.json"}]
		}`,
		"entities/Moment.json": `{"x-familiar-kind": "entity"}`,
		"misc/Leftover.json":   `{"type": "object"}`,
	})

	isolated := g.IsolatedSchemas()
	require.Len(t, isolated, 1)
	assert.Equal(t, "misc/Leftover.json", isolated[0].SchemaID)

	consumers := g.ConsumerOnlySchemas()
	require.Len(t, consumers, 1)
	assert.Equal(t, "nodes/daemon.node.json", consumers[0].SchemaID)

	byCategory := g.OrphansByCategory()
	assert.Len(t, byCategory, 2)
	assert.Len(t, byCategory["misc"], 1)
	assert.Len(t, byCategory["nodes"], 1)
}

func TestOrphansNoneWhenFullyConnected(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"a.json": `{"properties": {"b": {"$ref": "b.json"}}}`,
		"b.json": `{"properties": {"a": {"$ref": "a.json"}}}`,
	})

	assert.Empty(t, g.Orphans())
}
