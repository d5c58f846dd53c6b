package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/namer"
)

type namesInput struct {
	Corpus         corpusInput `json:"corpus"                    jsonschema:"The schema corpus to analyze"`
	Match          string      `json:"match,omitempty"           jsonschema:"Filter by identifier (supports * and ? glob, e.g. Pet* or *Rect)"`
	CollisionsOnly bool        `json:"collisions_only,omitempty" jsonschema:"Return only names that were contested and had to be qualified"`
	GroupBy        string      `json:"group_by,omitempty"        jsonschema:"Group results and return counts instead of individual items. Values: origin"`
	Limit          int         `json:"limit,omitempty"           jsonschema:"Maximum number of results to return (default 100)"`
	Offset         int         `json:"offset,omitempty"          jsonschema:"Skip the first N results (for pagination)"`
}

type nameSummary struct {
	SchemaID   string `json:"schema_id"`
	Identifier string `json:"identifier"`
	Origin     string `json:"origin"`
}

type namesOutput struct {
	Total      int           `json:"total"`
	Collisions int           `json:"collisions"`
	Matched    int           `json:"matched"`
	Returned   int           `json:"returned"`
	Names      []nameSummary `json:"names,omitempty"`
	Groups     []groupCount  `json:"groups,omitempty"`
}

func handleNames(_ context.Context, _ *mcp.CallToolRequest, input namesInput) (*mcp.CallToolResult, namesOutput, error) {
	if err := validateGlobPattern(input.Match); err != nil {
		return errResult(err), namesOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, false, []string{"origin"}); err != nil {
		return errResult(err), namesOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), namesOutput{}, nil
	}

	table := result.Names
	filtered := make([]namer.ResolvedName, 0, len(table.Names))
	for _, rn := range table.Names {
		if input.CollisionsOnly && rn.Origin != namer.OriginDisambiguated {
			continue
		}
		if input.Match != "" && !matchGlobName(rn.Identifier, input.Match) {
			continue
		}
		filtered = append(filtered, rn)
	}

	// group_by: aggregate by origin and return counts.
	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(rn namer.ResolvedName) []string {
			return []string{rn.Origin.String()}
		})
		paged := paginate(groups, input.Offset, input.Limit)
		output := namesOutput{
			Total:      len(table.Names),
			Collisions: table.CollisionCount,
			Matched:    len(filtered),
			Returned:   len(paged),
			Groups:     paged,
		}
		return nil, output, nil
	}

	paged := paginate(filtered, input.Offset, input.Limit)
	output := namesOutput{
		Total:      len(table.Names),
		Collisions: table.CollisionCount,
		Matched:    len(filtered),
		Returned:   len(paged),
		Names:      makeSlice[nameSummary](len(paged)),
	}
	for _, rn := range paged {
		output.Names = append(output.Names, nameSummary{
			SchemaID:   rn.LogicalID,
			Identifier: rn.Identifier,
			Origin:     rn.Origin.String(),
		})
	}
	return nil, output, nil
}
