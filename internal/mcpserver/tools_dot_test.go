package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotTool(t *testing.T) {
	input := dotInput{Corpus: corpusInput{Files: testFiles()}}
	_, output, err := handleDot(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 4, output.Nodes)
	assert.Equal(t, 3, output.Edges)
	assert.Contains(t, output.DOT, "digraph G {")
	assert.Contains(t, output.DOT, `"entities/pet.json"`)
	assert.Contains(t, output.DOT, `"entities/pet.json" -> "entities/owner.json"`)
	assert.Contains(t, output.DOT, `"a/node.json" -> "b/node.json"`)
}

func TestDotToolKindsFilter(t *testing.T) {
	input := dotInput{
		Corpus: corpusInput{Files: testFiles()},
		Kinds:  []string{"field"},
	}
	_, output, err := handleDot(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Edges)
	assert.Contains(t, output.DOT, "digraph G {")
}

func TestDotToolKindsFilterExcludesAll(t *testing.T) {
	input := dotInput{
		Corpus: corpusInput{Files: testFiles()},
		Kinds:  []string{"extends"},
	}
	_, output, err := handleDot(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	// Nothing inherits in this corpus, so the filtered export is an empty
	// graph but still well-formed DOT.
	assert.Zero(t, output.Edges)
	assert.Contains(t, output.DOT, "digraph G {")
	assert.NotContains(t, output.DOT, "->")
}

func TestDotToolInvalidKind(t *testing.T) {
	input := dotInput{
		Corpus: corpusInput{Files: testFiles()},
		Kinds:  []string{"wormhole"},
	}
	result, _, err := handleDot(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "invalid edge kind")
}
