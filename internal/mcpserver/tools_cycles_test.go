package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCyclesTool(t *testing.T) {
	input := cyclesInput{
		Corpus: corpusInput{Files: testFiles()},
	}
	_, output, err := handleCycles(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total)
	assert.Equal(t, 1, output.Cyclic)
	assert.Equal(t, 1, output.BrokenEdges)
	assert.Equal(t, 1, output.Matched)
	require.Len(t, output.Groups, 1)

	group := output.Groups[0]
	assert.Equal(t, []string{"a/node.json", "b/node.json"}, group.Members)
	assert.Equal(t, "break_via_optional", group.Handling)
	require.NotNil(t, group.BrokenEdge)
	assert.Equal(t, "field", group.BrokenEdge.Kind)
	assert.Equal(t, "next", group.BrokenEdge.Field)
}

func TestCyclesToolAll(t *testing.T) {
	input := cyclesInput{
		Corpus: corpusInput{Files: testFiles()},
		All:    true,
	}
	_, output, err := handleCycles(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Matched)
	require.Len(t, output.Groups, 3)

	// Groups arrive in condensation order.
	for i, group := range output.Groups {
		assert.Equal(t, i, group.Order)
	}
	// Acyclic singletons carry no broken edge.
	assert.Equal(t, "acyclic", output.Groups[0].Handling)
	assert.Nil(t, output.Groups[0].BrokenEdge)
}

func TestCyclesToolAcyclicCorpus(t *testing.T) {
	input := cyclesInput{
		Corpus: corpusInput{Files: map[string]string{
			"pet.json": `{"type": "object", "properties": {"name": {"type": "string"}}}`,
		}},
	}
	_, output, err := handleCycles(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.Total)
	assert.Zero(t, output.Cyclic)
	assert.Zero(t, output.Matched)
	assert.Empty(t, output.Groups)
}

func TestCyclesToolNoInput(t *testing.T) {
	result, _, err := handleCycles(context.Background(), &mcp.CallToolRequest{}, cyclesInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
