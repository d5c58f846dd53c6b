package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/resolver"
)

type graphDepsInput struct {
	Corpus     corpusInput `json:"corpus"               jsonschema:"The schema corpus to analyze"`
	ID         string      `json:"id"                   jsonschema:"Schema id to query (e.g. entities/pet.json or shapes.json#Circle)"`
	Direction  string      `json:"direction,omitempty"  jsonschema:"Which neighbors to return: deps (what this schema references, default) or dependents (what references it)"`
	Transitive bool        `json:"transitive,omitempty" jsonschema:"Return the full transitive closure instead of direct neighbors"`
	Kinds      []string    `json:"kinds,omitempty"      jsonschema:"Restrict traversal to these edge kinds (e.g. ref, extends, field, runs_on)"`
	Limit      int         `json:"limit,omitempty"      jsonschema:"Maximum number of results to return (default 100)"`
	Offset     int         `json:"offset,omitempty"     jsonschema:"Skip the first N results (for pagination)"`
}

type schemaRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier,omitempty"`
}

type graphDepsOutput struct {
	ID         string        `json:"id"`
	Direction  string        `json:"direction"`
	Transitive bool          `json:"transitive,omitempty"`
	Total      int           `json:"total"`
	Returned   int           `json:"returned"`
	Edges      []edgeSummary `json:"edges,omitempty"`
	Schemas    []schemaRef   `json:"schemas,omitempty"`
}

func handleGraphDeps(_ context.Context, _ *mcp.CallToolRequest, input graphDepsInput) (*mcp.CallToolResult, graphDepsOutput, error) {
	if input.ID == "" {
		return errResult(fmt.Errorf("id is required")), graphDepsOutput{}, nil
	}
	direction := strings.ToLower(input.Direction)
	if direction == "" {
		direction = "deps"
	}
	if direction != "deps" && direction != "dependents" {
		return errResult(fmt.Errorf("invalid direction %q; valid values: deps, dependents", input.Direction)), graphDepsOutput{}, nil
	}
	kinds, err := parseEdgeKinds(input.Kinds)
	if err != nil {
		return errResult(err), graphDepsOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), graphDepsOutput{}, nil
	}
	if _, ok := result.Graph.Node(input.ID); !ok {
		return errResult(fmt.Errorf("schema %q not found in corpus", input.ID)), graphDepsOutput{}, nil
	}

	output := graphDepsOutput{
		ID:         input.ID,
		Direction:  direction,
		Transitive: input.Transitive,
	}

	if input.Transitive {
		var closure []string
		if direction == "deps" {
			closure = result.Graph.TransitiveDepsFiltered([]string{input.ID}, kinds...)
		} else {
			closure = result.Graph.BlastRadius(input.ID, kinds...)
		}
		// The closure includes the queried schema itself; a schema is not
		// its own dependency from the caller's point of view.
		ids := closure[:0:0]
		for _, id := range closure {
			if id != input.ID {
				ids = append(ids, id)
			}
		}
		paged := paginate(ids, input.Offset, input.Limit)
		output.Total = len(ids)
		output.Returned = len(paged)
		output.Schemas = makeSlice[schemaRef](len(paged))
		for _, id := range paged {
			output.Schemas = append(output.Schemas, schemaRef{
				ID:         id,
				Identifier: result.Identifier(id),
			})
		}
		return nil, output, nil
	}

	edges := result.Graph.EdgesFrom(input.ID)
	if direction == "dependents" {
		edges = result.Graph.EdgesTo(input.ID)
	}
	if len(kinds) > 0 {
		wanted := make(map[resolver.EdgeKind]bool, len(kinds))
		for _, k := range kinds {
			wanted[k] = true
		}
		filtered := edges[:0:0]
		for _, e := range edges {
			if wanted[e.Kind] {
				filtered = append(filtered, e)
			}
		}
		edges = filtered
	}

	paged := paginate(edges, input.Offset, input.Limit)
	output.Total = len(edges)
	output.Returned = len(paged)
	output.Edges = makeSlice[edgeSummary](len(paged))
	for _, e := range paged {
		output.Edges = append(output.Edges, summarizeEdge(e))
	}
	return nil, output, nil
}

// parseEdgeKinds maps edge kind labels to their EdgeKind values.
func parseEdgeKinds(labels []string) ([]resolver.EdgeKind, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	kinds := make([]resolver.EdgeKind, 0, len(labels))
	for _, label := range labels {
		kind, ok := resolver.ParseEdgeKind(strings.ToLower(label))
		if !ok {
			return nil, fmt.Errorf("invalid edge kind %q; valid values: %s", label, strings.Join(edgeKindLabels(), ", "))
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func edgeKindLabels() []string {
	all := resolver.EdgeKinds()
	labels := make([]string, len(all))
	for i, k := range all {
		labels[i] = k.String()
	}
	return labels
}
