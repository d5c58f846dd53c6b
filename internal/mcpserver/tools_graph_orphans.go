package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/graph"
)

type graphOrphansInput struct {
	Corpus       corpusInput `json:"corpus"                  jsonschema:"The schema corpus to analyze"`
	Category     string      `json:"category,omitempty"      jsonschema:"Filter by top-level corpus directory (e.g. entities, systems)"`
	IsolatedOnly bool        `json:"isolated_only,omitempty" jsonschema:"Return only schemas with no edges at all (dead schema candidates)"`
	GroupBy      string      `json:"group_by,omitempty"      jsonschema:"Group results and return counts instead of individual items. Values: category"`
	Limit        int         `json:"limit,omitempty"         jsonschema:"Maximum number of results to return (default 100)"`
	Offset       int         `json:"offset,omitempty"        jsonschema:"Skip the first N results (for pagination)"`
}

type orphanSummary struct {
	SchemaID     string `json:"schema_id"`
	Path         string `json:"path"`
	Category     string `json:"category"`
	Kind         string `json:"kind,omitempty"`
	ExpectedRoot bool   `json:"expected_root,omitempty"`
	HasOutgoing  bool   `json:"has_outgoing,omitempty"`
}

type graphOrphansOutput struct {
	Total         int             `json:"total"`
	Isolated      int             `json:"isolated"`
	ConsumerOnly  int             `json:"consumer_only"`
	ExpectedRoots int             `json:"expected_roots"`
	Matched       int             `json:"matched"`
	Returned      int             `json:"returned"`
	Orphans       []orphanSummary `json:"orphans,omitempty"`
	Groups        []groupCount    `json:"groups,omitempty"`
}

func handleGraphOrphans(_ context.Context, _ *mcp.CallToolRequest, input graphOrphansInput) (*mcp.CallToolResult, graphOrphansOutput, error) {
	if err := validateGroupBy(input.GroupBy, false, []string{"category"}); err != nil {
		return errResult(err), graphOrphansOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), graphOrphansOutput{}, nil
	}

	all := result.Graph.Orphans()
	output := graphOrphansOutput{Total: len(all)}
	filtered := make([]graph.OrphanInfo, 0, len(all))
	for _, o := range all {
		if !o.HasOutgoing {
			output.Isolated++
		} else {
			output.ConsumerOnly++
		}
		if o.ExpectedRoot {
			output.ExpectedRoots++
		}
		if input.IsolatedOnly && o.HasOutgoing {
			continue
		}
		if input.Category != "" && !strings.EqualFold(o.Category, input.Category) {
			continue
		}
		filtered = append(filtered, o)
	}
	output.Matched = len(filtered)

	// group_by: aggregate by category and return counts.
	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(o graph.OrphanInfo) []string {
			return []string{o.Category}
		})
		paged := paginate(groups, input.Offset, input.Limit)
		output.Returned = len(paged)
		output.Groups = paged
		return nil, output, nil
	}

	paged := paginate(filtered, input.Offset, input.Limit)
	output.Returned = len(paged)
	output.Orphans = makeSlice[orphanSummary](len(paged))
	for _, o := range paged {
		output.Orphans = append(output.Orphans, orphanSummary{
			SchemaID:     o.SchemaID,
			Path:         o.Path,
			Category:     o.Category,
			Kind:         o.Kind,
			ExpectedRoot: o.ExpectedRoot,
			HasOutgoing:  o.HasOutgoing,
		})
	}
	return nil, output, nil
}
