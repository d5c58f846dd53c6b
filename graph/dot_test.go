package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/resolver"
)

func TestDOT(t *testing.T) {
	g := buildTestGraph(t)
	dot := g.DOT()

	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, "rankdir=LR;")
	assert.Contains(t, dot, "node [shape=box];")

	// Nodes are filled by schema kind.
	assert.Contains(t, dot, `"entities/Moment.json" [label="entities/Moment.json", fillcolor="#00BCD4", style=filled];`)
	assert.Contains(t, dot, `"nodes/daemon.node.json" [label="nodes/daemon.node.json", fillcolor="#2196F3", style=filled];`)
	// Definitions fall back to the default fill.
	assert.Contains(t, dot, `"entities/Moment.json#Attachment" [label="entities/Moment.json#Attachment", fillcolor="#9E9E9E", style=filled];`)

	// Edges carry the kind's color and label.
	assert.Contains(t, dot, `"nodes/daemon.node.json" -> "services/api.service.json" [color="#2196F3", label="runs_on"];`)
	assert.Contains(t, dot, `"entities/Moment.json" -> "primitives/UUID.json" [color="#9E9E9E", label="field"];`)

	assert.Equal(t, dot, g.DOT(), "output is stable")
}

func TestDOTUsesTitleAsLabel(t *testing.T) {
	g := buildGraphFrom(t, map[string]string{
		"entities/Moment.json": `{"title": "A Captured Moment", "type": "object"}`,
	})

	assert.Contains(t, g.DOT(), `"entities/Moment.json" [label="A Captured Moment"`)
}

func TestDOTFiltered(t *testing.T) {
	g := buildTestGraph(t)
	dot := g.DOTFiltered(resolver.KindRunsOn)

	assert.Contains(t, dot, `"nodes/daemon.node.json"`)
	assert.Contains(t, dot, `"services/api.service.json"`)
	assert.NotContains(t, dot, "primitives/UUID.json")
	assert.NotContains(t, dot, "label=\"runs_on\"", "filtered output drops edge labels")
	assert.Contains(t, dot, `"nodes/daemon.node.json" -> "services/api.service.json" [color="#2196F3"];`)

	// One edge line expected.
	require.Equal(t, 1, strings.Count(dot, "->"))
}

func TestDOTFilteredNoKindsIncludesAll(t *testing.T) {
	g := buildTestGraph(t)
	dot := g.DOTFiltered()
	assert.Equal(t, g.EdgeCount(), strings.Count(dot, "->"))
}
