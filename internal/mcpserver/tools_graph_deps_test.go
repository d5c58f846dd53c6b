package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainFiles builds gateway -> service -> store so transitive queries have
// something beyond direct neighbors.
func chainFiles() map[string]string {
	return map[string]string{
		"gateway.json": `{"type": "object", "properties": {"service": {"$ref": "service.json"}}}`,
		"service.json": `{"type": "object", "properties": {"store": {"$ref": "store.json"}}}`,
		"store.json":   `{"type": "object", "properties": {"dsn": {"type": "string"}}}`,
	}
}

func TestGraphDepsTool(t *testing.T) {
	input := graphDepsInput{
		Corpus: corpusInput{Files: testFiles()},
		ID:     "entities/pet.json",
	}
	_, output, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "deps", output.Direction)
	assert.Equal(t, 1, output.Total)
	require.Len(t, output.Edges, 1)
	assert.Equal(t, "entities/pet.json", output.Edges[0].From)
	assert.Equal(t, "entities/owner.json", output.Edges[0].To)
	assert.Equal(t, "field", output.Edges[0].Kind)
	assert.Equal(t, "owner", output.Edges[0].Field)
}

func TestGraphDepsToolDependents(t *testing.T) {
	input := graphDepsInput{
		Corpus:    corpusInput{Files: testFiles()},
		ID:        "entities/owner.json",
		Direction: "dependents",
	}
	_, output, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Len(t, output.Edges, 1)
	assert.Equal(t, "entities/pet.json", output.Edges[0].From)
}

func TestGraphDepsToolTransitive(t *testing.T) {
	input := graphDepsInput{
		Corpus:     corpusInput{Files: chainFiles()},
		ID:         "gateway.json",
		Transitive: true,
	}
	_, output, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 2, output.Total)
	ids := make([]string, 0, len(output.Schemas))
	for _, s := range output.Schemas {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.Identifier)
	}
	assert.ElementsMatch(t, []string{"service.json", "store.json"}, ids)
}

func TestGraphDepsToolBlastRadius(t *testing.T) {
	input := graphDepsInput{
		Corpus:     corpusInput{Files: chainFiles()},
		ID:         "store.json",
		Direction:  "dependents",
		Transitive: true,
	}
	_, output, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	ids := make([]string, 0, len(output.Schemas))
	for _, s := range output.Schemas {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"gateway.json", "service.json"}, ids)
}

func TestGraphDepsToolKindsFilter(t *testing.T) {
	input := graphDepsInput{
		Corpus: corpusInput{Files: testFiles()},
		ID:     "entities/pet.json",
		Kinds:  []string{"extends"},
	}
	_, output, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Zero(t, output.Total)
	assert.Empty(t, output.Edges)
}

func TestGraphDepsToolInvalidKind(t *testing.T) {
	input := graphDepsInput{
		Corpus: corpusInput{Files: testFiles()},
		ID:     "entities/pet.json",
		Kinds:  []string{"teleports"},
	}
	result, _, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "invalid edge kind")
}

func TestGraphDepsToolUnknownSchema(t *testing.T) {
	input := graphDepsInput{
		Corpus: corpusInput{Files: testFiles()},
		ID:     "entities/dragon.json",
	}
	result, _, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestGraphDepsToolMissingID(t *testing.T) {
	input := graphDepsInput{
		Corpus: corpusInput{Files: testFiles()},
	}
	result, _, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestGraphDepsToolInvalidDirection(t *testing.T) {
	input := graphDepsInput{
		Corpus:    corpusInput{Files: testFiles()},
		ID:        "entities/pet.json",
		Direction: "sideways",
	}
	result, _, err := handleGraphDeps(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
