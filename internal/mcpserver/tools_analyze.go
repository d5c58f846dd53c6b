package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/pipeline"
)

type analyzeInput struct {
	Corpus   corpusInput `json:"corpus"             jsonschema:"The schema corpus to analyze"`
	Severity string      `json:"severity,omitempty" jsonschema:"Filter diagnostics by severity: error, warning, info, critical"`
	Limit    int         `json:"limit,omitempty"    jsonschema:"Maximum number of diagnostics to return (default 100)"`
	Offset   int         `json:"offset,omitempty"   jsonschema:"Skip the first N diagnostics (for pagination)"`
}

type analyzeStats struct {
	Documents       int   `json:"documents"`
	Definitions     int   `json:"definitions"`
	TotalBytes      int64 `json:"total_bytes"`
	Nodes           int   `json:"nodes"`
	Edges           int   `json:"edges"`
	DanglingEdges   int   `json:"dangling_edges"`
	Groups          int   `json:"groups"`
	CyclicGroups    int   `json:"cyclic_groups"`
	BrokenEdges     int   `json:"broken_edges"`
	Classifications int   `json:"classifications"`
	Synthetics      int   `json:"synthetics"`
	Collisions      int   `json:"collisions"`
}

type diagnosticSummary struct {
	Code     string   `json:"code"`
	Severity string   `json:"severity"`
	SchemaID string   `json:"schema_id,omitempty"`
	Path     string   `json:"path,omitempty"`
	Related  []string `json:"related,omitempty"`
	Message  string   `json:"message"`
}

type analyzeOutput struct {
	Success      bool                `json:"success"`
	Stats        analyzeStats        `json:"stats"`
	ErrorCount   int                 `json:"error_count"`
	WarningCount int                 `json:"warning_count"`
	InfoCount    int                 `json:"info_count"`
	LoadTime     string              `json:"load_time"`
	AnalyzeTime  string              `json:"analyze_time"`
	Total        int                 `json:"total"`
	Matched      int                 `json:"matched"`
	Returned     int                 `json:"returned"`
	Diagnostics  []diagnosticSummary `json:"diagnostics,omitempty"`
}

func handleAnalyze(_ context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	sevFilter, filterSet, err := parseSeverity(input.Severity)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	filtered := result.Issues
	if filterSet {
		filtered = result.IssuesBySeverity(sevFilter)
	}
	paged := paginate(filtered, input.Offset, input.Limit)

	output := analyzeOutput{
		Success: result.Success,
		Stats: analyzeStats{
			Documents:       result.Stats.Documents,
			Definitions:     result.Stats.Definitions,
			TotalBytes:      result.Stats.TotalBytes,
			Nodes:           result.Stats.Nodes,
			Edges:           result.Stats.Edges,
			DanglingEdges:   result.Stats.DanglingEdges,
			Groups:          result.Stats.Groups,
			CyclicGroups:    result.Stats.CyclicGroups,
			BrokenEdges:     result.Stats.BrokenEdges,
			Classifications: result.Stats.Classifications,
			Synthetics:      result.Stats.Synthetics,
			Collisions:      result.Stats.Collisions,
		},
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		InfoCount:    result.InfoCount,
		LoadTime:     result.LoadTime.String(),
		AnalyzeTime:  result.AnalyzeTime.String(),
		Total:        len(result.Issues),
		Matched:      len(filtered),
		Returned:     len(paged),
		Diagnostics:  makeSlice[diagnosticSummary](len(paged)),
	}
	for _, iss := range paged {
		output.Diagnostics = append(output.Diagnostics, diagnosticSummary{
			Code:     string(iss.Code),
			Severity: iss.Severity.String(),
			SchemaID: iss.SchemaID,
			Path:     iss.Path,
			Related:  iss.Related,
			Message:  iss.Message,
		})
	}
	return nil, output, nil
}

// parseSeverity maps a severity label to its level. The boolean reports
// whether a filter was requested at all.
func parseSeverity(label string) (pipeline.Severity, bool, error) {
	switch strings.ToLower(label) {
	case "":
		return 0, false, nil
	case "error":
		return pipeline.SeverityError, true, nil
	case "warning":
		return pipeline.SeverityWarning, true, nil
	case "info":
		return pipeline.SeverityInfo, true, nil
	case "critical":
		return pipeline.SeverityCritical, true, nil
	default:
		return 0, false, fmt.Errorf("invalid severity %q; valid values: error, warning, info, critical", label)
	}
}
