package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
)

type cyclesInput struct {
	Corpus corpusInput `json:"corpus"          jsonschema:"The schema corpus to analyze"`
	All    bool        `json:"all,omitempty"   jsonschema:"Include acyclic singleton groups (default: cyclic groups only)"`
	Limit  int         `json:"limit,omitempty" jsonschema:"Maximum number of groups to return (default 100)"`
	Offset int         `json:"offset,omitempty" jsonschema:"Skip the first N groups (for pagination)"`
}

// edgeSummary is the JSON form of a typed reference edge, shared by the
// cycles and graph tools.
type edgeSummary struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

func summarizeEdge(e graph.Edge) edgeSummary {
	return edgeSummary{
		From:  e.From,
		To:    e.To,
		Kind:  e.Kind.String(),
		Field: e.Field,
	}
}

type groupSummary struct {
	Order      int          `json:"order"`
	Members    []string     `json:"members"`
	Handling   string       `json:"handling"`
	BrokenEdge *edgeSummary `json:"broken_edge,omitempty"`
}

type cyclesOutput struct {
	Total       int            `json:"total"`
	Cyclic      int            `json:"cyclic"`
	BrokenEdges int            `json:"broken_edges"`
	Matched     int            `json:"matched"`
	Returned    int            `json:"returned"`
	Groups      []groupSummary `json:"groups,omitempty"`
}

func handleCycles(_ context.Context, _ *mcp.CallToolRequest, input cyclesInput) (*mcp.CallToolResult, cyclesOutput, error) {
	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), cyclesOutput{}, nil
	}

	cyclic := 0
	filtered := make([]cycles.SccGroup, 0, len(result.Groups))
	for _, group := range result.Groups {
		if group.Cyclic() {
			cyclic++
		}
		if input.All || group.Cyclic() {
			filtered = append(filtered, group)
		}
	}

	paged := paginate(filtered, input.Offset, input.Limit)
	output := cyclesOutput{
		Total:       len(result.Groups),
		Cyclic:      cyclic,
		BrokenEdges: len(result.BrokenEdges()),
		Matched:     len(filtered),
		Returned:    len(paged),
		Groups:      makeSlice[groupSummary](len(paged)),
	}
	for _, group := range paged {
		gs := groupSummary{
			Order:    group.Order,
			Members:  group.Members,
			Handling: group.Handling.Kind.String(),
		}
		if group.Handling.Edge != nil {
			es := summarizeEdge(*group.Handling.Edge)
			gs.BrokenEdge = &es
		}
		output.Groups = append(output.Groups, gs)
	}
	return nil, output, nil
}
