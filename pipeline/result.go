package pipeline

import (
	"time"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/namer"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/shapes"
)

// Issue describes a single non-fatal problem found during an analysis run.
type Issue = issues.Issue

// Severity indicates the severity level of an issue
type Severity = severity.Severity

const (
	// SeverityError indicates an issue that invalidates a document
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a degraded node that is still reported
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// The diagnostic codes every stage can contribute to a run.
const (
	CodeDecodeFailure       = issues.CodeDecodeFailure
	CodeDuplicateDocument   = issues.CodeDuplicateDocument
	CodeMetaSchemaViolation = issues.CodeMetaSchemaViolation
	CodeDanglingReference   = issues.CodeDanglingReference
	CodeUnrecognizedShape   = issues.CodeUnrecognizedShape
	CodeUnresolvedCycle     = issues.CodeUnresolvedCycle
	CodeNameCollision       = issues.CodeNameCollision
)

// Result is the complete output of one analysis run.
type Result struct {
	// Graph is the constructed schema graph.
	Graph *graph.SchemaGraph
	// Groups lists every strongly connected group in condensation order.
	Groups []cycles.SccGroup
	// Order is the flat emission order: groups in condensation order,
	// members sorted within each group.
	Order []string
	// Classifications lists one entry per schema in emission order,
	// synthetic helpers included.
	Classifications []*classifier.Classification
	// Names is the final identifier table.
	Names *namer.Table
	// Issues aggregates every stage's diagnostics in stage order: load,
	// resolve, shapes, cycles, names.
	Issues []Issue
	// ErrorCount is the number of error or critical severity issues.
	ErrorCount int
	// WarningCount is the number of warning severity issues.
	WarningCount int
	// InfoCount is the number of info severity issues.
	InfoCount int
	// Success reports whether the run completed with no error-severity
	// diagnostics. Warnings (degraded nodes, auto-resolved collisions)
	// still count as success.
	Success bool
	// LoadTime is the time the loader spent reading and decoding.
	LoadTime time.Duration
	// AnalyzeTime is the time the pipeline stages spent.
	AnalyzeTime time.Duration
	// Stats summarizes the run.
	Stats Stats

	analysis *cycles.Analysis
	byID     map[string]*classifier.Classification
}

// Stats summarizes one analysis run.
type Stats struct {
	// Documents is the number of root corpus documents.
	Documents int
	// Definitions is the number of promoted local definitions.
	Definitions int
	// TotalBytes is the combined source size.
	TotalBytes int64
	// Nodes is the number of graph nodes.
	Nodes int
	// Edges is the number of distinct typed edges.
	Edges int
	// DanglingEdges is the number of references to unknown schemas.
	DanglingEdges int
	// Groups is the number of strongly connected groups.
	Groups int
	// CyclicGroups is the number of groups containing a cycle.
	CyclicGroups int
	// BrokenEdges is the number of edges severed to break cycles.
	BrokenEdges int
	// Classifications is the number of classifications, synthetics included.
	Classifications int
	// Synthetics is the number of helper classifications introduced.
	Synthetics int
	// Collisions is the number of contested identifiers.
	Collisions int
}

// HasErrors reports whether any issue has error severity or worse.
func (res *Result) HasErrors() bool {
	return res.ErrorCount > 0
}

// Classification returns the classification with the given ID.
func (res *Result) Classification(id string) (*classifier.Classification, bool) {
	cl, ok := res.byID[id]
	return cl, ok
}

// Identifier returns the resolved identifier for the given ID, or the
// empty string when the ID is not in the table.
func (res *Result) Identifier(id string) string {
	if res.Names == nil {
		return ""
	}
	return res.Names.Identifier(id)
}

// GroupOf returns the group containing the given schema.
func (res *Result) GroupOf(id string) (cycles.SccGroup, bool) {
	if res.analysis == nil {
		return cycles.SccGroup{}, false
	}
	return res.analysis.GroupOf(id)
}

// BrokenEdges returns every edge severed across all groups, sorted.
func (res *Result) BrokenEdges() []graph.Edge {
	if res.analysis == nil {
		return nil
	}
	return res.analysis.BrokenEdges()
}

// IssuesBySeverity returns the issues of the given severity, in stage
// order.
func (res *Result) IssuesBySeverity(sev Severity) []Issue {
	var out []Issue
	for _, iss := range res.Issues {
		if iss.Severity == sev {
			out = append(out, iss)
		}
	}
	return out
}

// assemble folds every stage's output into one Result.
func assemble(corpus *loader.LoadResult, rres *resolver.Resolution, g *graph.SchemaGraph, det *shapes.Detection, an *cycles.Analysis, cls *classifier.Result, table *namer.Table) *Result {
	res := &Result{
		Graph:           g,
		Groups:          an.Groups,
		Order:           an.EmissionOrder(),
		Classifications: cls.Classifications,
		Names:           table,
		LoadTime:        corpus.LoadTime,
		analysis:        an,
		byID:            make(map[string]*classifier.Classification, len(cls.Classifications)),
	}
	for _, cl := range cls.Classifications {
		res.byID[cl.ID] = cl
	}

	res.Issues = append(res.Issues, corpus.Issues...)
	res.Issues = append(res.Issues, rres.Issues...)
	res.Issues = append(res.Issues, det.Issues...)
	res.Issues = append(res.Issues, an.Issues...)
	res.Issues = append(res.Issues, table.Issues...)
	for _, iss := range res.Issues {
		switch iss.Severity {
		case SeverityError, SeverityCritical:
			res.ErrorCount++
		case SeverityWarning:
			res.WarningCount++
		case SeverityInfo:
			res.InfoCount++
		}
	}
	res.Success = res.ErrorCount == 0

	res.Stats = Stats{
		Documents:       corpus.DocumentCount,
		Definitions:     corpus.DefinitionCount,
		TotalBytes:      corpus.TotalSize,
		Nodes:           g.NodeCount(),
		Edges:           g.EdgeCount(),
		DanglingEdges:   len(rres.Dangling),
		Groups:          len(an.Groups),
		CyclicGroups:    len(an.CyclicGroups()),
		BrokenEdges:     len(an.BrokenEdges()),
		Classifications: len(cls.Classifications),
		Synthetics:      cls.SyntheticCount,
		Collisions:      table.CollisionCount,
	}
	return res
}
