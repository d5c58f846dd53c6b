package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type dotInput struct {
	Corpus corpusInput `json:"corpus"          jsonschema:"The schema corpus to export"`
	Kinds  []string    `json:"kinds,omitempty" jsonschema:"Restrict the export to these edge kinds (e.g. ref, extends, variant, field)"`
}

type dotOutput struct {
	DOT   string `json:"dot"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

func handleDot(_ context.Context, _ *mcp.CallToolRequest, input dotInput) (*mcp.CallToolResult, dotOutput, error) {
	kinds, err := parseEdgeKinds(input.Kinds)
	if err != nil {
		return errResult(err), dotOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), dotOutput{}, nil
	}

	output := dotOutput{Nodes: result.Graph.NodeCount()}
	if len(kinds) > 0 {
		output.DOT = result.Graph.DOTFiltered(kinds...)
		output.Edges = len(result.Graph.EdgesOfKind(kinds...))
	} else {
		output.DOT = result.Graph.DOT()
		output.Edges = result.Graph.EdgeCount()
	}
	return nil, output, nil
}
