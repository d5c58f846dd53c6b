package cycles

import (
	"fmt"
	"time"

	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Edge is a directed, typed relationship between two schemas.
type Edge = graph.Edge

// Issue describes a single non-fatal problem found during cycle analysis.
type Issue = issues.Issue

// Severity indicates the severity level of an analysis issue
type Severity = severity.Severity

const (
	// SeverityError indicates an issue that invalidates a group
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a degraded group that is still reported
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// CodeUnresolvedCycle marks a strongly connected group with no safe break edge
const CodeUnresolvedCycle = issues.CodeUnresolvedCycle

// Analyzer partitions a schema graph into strongly connected groups and
// decides a cycle-breaking strategy for each.
//
// Only ownership edges participate: infrastructure edges never force
// emission ordering, and local back-references are weak by definition.
// Analysis is deterministic: the same graph always produces the same groups,
// order, and break edges.
type Analyzer struct {
	// Rule orders the candidate break edges of each cyclic group.
	// Default: LexicographicRule
	Rule BreakRule
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Analyzer instance with default settings
func New() *Analyzer {
	return &Analyzer{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (a *Analyzer) log() loader.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return loader.NopLogger{}
}

func (a *Analyzer) rule() BreakRule {
	if a.Rule != nil {
		return a.Rule
	}
	return LexicographicRule{}
}

// SccGroup is a maximal set of schemas mutually reachable through ownership
// edges, together with the decision that makes the set emittable.
type SccGroup struct {
	// Members are the SchemaIDs in the group, sorted.
	Members []string
	// Handling is the cycle-breaking decision for the group.
	Handling CycleHandling
	// Order is the group's position in the condensation topological order.
	// Ignoring broken edges, a group only references groups with a smaller
	// Order, so emitting groups in Order never needs a forward declaration.
	Order int
}

// Cyclic reports whether the group contains a cycle, broken or not.
func (s SccGroup) Cyclic() bool {
	return s.Handling.Kind != HandlingAcyclic
}

// Contains reports whether the given schema belongs to the group.
func (s SccGroup) Contains(id string) bool {
	for _, m := range s.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Analysis holds the grouping and cycle-breaking decisions for one graph.
type Analysis struct {
	// Groups lists every strongly connected group in condensation
	// topological order: dependencies first. Every schema in the graph
	// belongs to exactly one group.
	Groups []SccGroup
	// Issues contains one UnresolvedCycle warning per group no cut could
	// break.
	Issues []Issue
	// AnalyzeTime is the time taken to group and decide.
	AnalyzeTime time.Duration

	byMember map[string]int
	internal map[int][]Edge
}

// GroupOf returns the group containing the given schema.
func (an *Analysis) GroupOf(id string) (SccGroup, bool) {
	i, ok := an.byMember[id]
	if !ok {
		return SccGroup{}, false
	}
	return an.Groups[i], true
}

// BrokenEdges returns every edge severed across all groups, sorted.
func (an *Analysis) BrokenEdges() []Edge {
	var edges []Edge
	for _, g := range an.Groups {
		if g.Handling.Edge != nil {
			edges = append(edges, *g.Handling.Edge)
		}
	}
	resolver.SortEdges(edges)
	return edges
}

// CyclicGroups returns the groups that contain a cycle, in order.
func (an *Analysis) CyclicGroups() []SccGroup {
	var groups []SccGroup
	for _, g := range an.Groups {
		if g.Cyclic() {
			groups = append(groups, g)
		}
	}
	return groups
}

// EmissionOrder flattens the groups into one schema sequence: groups in
// condensation order, members sorted within each group.
func (an *Analysis) EmissionOrder() []string {
	var order []string
	for _, g := range an.Groups {
		order = append(order, g.Members...)
	}
	return order
}

// Verify re-runs component detection with every broken edge removed and
// reports the first group whose cycle survived its cut. Groups marked
// unresolvable keep their cycle and are skipped; they were already reported
// as issues.
func (an *Analysis) Verify() error {
	for _, g := range an.Groups {
		if !g.Handling.Broken() {
			continue
		}
		if !cutBreaks(g.Members, an.internal[g.Order], *g.Handling.Edge) {
			return &sgerrors.CycleError{
				Members: g.Members,
				Message: fmt.Sprintf("removing %s left the group cyclic", g.Handling.Edge),
			}
		}
	}
	return nil
}

// Analyze partitions the graph into strongly connected groups using an
// Analyzer configured by the given options.
func Analyze(g *graph.SchemaGraph, opts ...Option) (*Analysis, error) {
	a := New()
	if err := applyOptions(a, opts); err != nil {
		return nil, err
	}
	return a.Analyze(g), nil
}

// Analyze partitions the graph into strongly connected groups over the
// ownership subgraph and decides how each cyclic group breaks.
//
// Break decision per cyclic group: the configured rule ranks the group's
// internal edges by preference, and the first candidate whose removal leaves
// the group cycle-free is severed. A field edge whose field is optional in
// the source schema breaks via optionality, any other cut breaks via
// indirection. When no candidate cut works the group is marked unresolvable
// and reported.
func (a *Analyzer) Analyze(g *graph.SchemaGraph) *Analysis {
	start := time.Now()
	an := &Analysis{
		byMember: make(map[string]int),
		internal: make(map[int][]Edge),
	}
	if g == nil || g.NodeCount() == 0 {
		an.AnalyzeTime = time.Since(start)
		return an
	}

	ids := make([]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	adj := ownershipAdjacency(g)

	rule := a.rule()
	ordered := orderComponents(stronglyConnected(ids, adj), adj)
	an.Groups = make([]SccGroup, 0, len(ordered))
	for order, members := range ordered {
		internal := internalEdges(g, members)
		group := SccGroup{
			Members:  members,
			Handling: a.decide(g, members, internal, rule),
			Order:    order,
		}
		an.Groups = append(an.Groups, group)
		for _, id := range members {
			an.byMember[id] = order
		}
		if len(internal) > 0 {
			an.internal[order] = internal
		}

		switch group.Handling.Kind {
		case HandlingUnresolvable:
			an.Issues = append(an.Issues, a.unresolvedIssue(g, members))
		case HandlingBreakViaIndirection, HandlingBreakViaOptional:
			a.log().Debug("cycle broken",
				"members", len(members),
				"handling", group.Handling.String(),
			)
		}
	}

	an.AnalyzeTime = time.Since(start)
	a.log().Info("cycles analyzed",
		"groups", len(an.Groups),
		"cyclic", len(an.CyclicGroups()),
		"unresolved", len(an.Issues),
	)
	return an
}

// decide picks the handling for one group given its internal ownership
// edges.
func (a *Analyzer) decide(g *graph.SchemaGraph, members []string, internal []Edge, rule BreakRule) CycleHandling {
	if len(members) == 1 && len(internal) == 0 {
		return CycleHandling{Kind: HandlingAcyclic}
	}
	for _, candidate := range rule.Rank(members, internal) {
		if !cutBreaks(members, internal, candidate) {
			continue
		}
		kind := HandlingBreakViaIndirection
		if candidate.Kind == resolver.KindFieldType && fieldOptional(g, candidate) {
			kind = HandlingBreakViaOptional
		}
		edge := candidate
		return CycleHandling{Kind: kind, Edge: &edge}
	}
	return CycleHandling{Kind: HandlingUnresolvable}
}

// unresolvedIssue builds the diagnostic for a group no cut could break.
func (a *Analyzer) unresolvedIssue(g *graph.SchemaGraph, members []string) Issue {
	var path string
	if n, ok := g.Node(members[0]); ok {
		path = n.Path
	}
	msg := fmt.Sprintf("%d mutually recursive schemas with no breakable ownership edge", len(members))
	if len(members) == 1 {
		msg = "self-referential schema with no breakable ownership edge"
	}
	return Issue{
		Code:     CodeUnresolvedCycle,
		SchemaID: members[0],
		Path:     path,
		Related:  members,
		Severity: SeverityWarning,
		Message:  msg,
	}
}

// ownershipAdjacency projects the graph onto its ownership edges. Targets
// come out sorted and deduplicated per source because graph edges are.
func ownershipAdjacency(g *graph.SchemaGraph) map[string][]string {
	adj := make(map[string][]string, g.NodeCount())
	for _, e := range g.Edges() {
		if !e.Kind.IsOwnership() {
			continue
		}
		targets := adj[e.From]
		if n := len(targets); n > 0 && targets[n-1] == e.To {
			continue
		}
		adj[e.From] = append(targets, e.To)
	}
	return adj
}

// internalEdges returns the ownership edges with both endpoints inside the
// group, sorted. These are the only edges a break can sever.
func internalEdges(g *graph.SchemaGraph, members []string) []Edge {
	in := make(map[string]struct{}, len(members))
	for _, id := range members {
		in[id] = struct{}{}
	}
	var edges []Edge
	for _, id := range members {
		for _, e := range g.EdgesFrom(id) {
			if !e.Kind.IsOwnership() {
				continue
			}
			if _, ok := in[e.To]; ok {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// cutBreaks reports whether removing the one cut edge leaves the group free
// of cycles among its members.
func cutBreaks(members []string, internal []Edge, cut Edge) bool {
	adj := make(map[string][]string, len(members))
	for _, e := range internal {
		if e == cut {
			continue
		}
		if e.From == e.To {
			return false
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	for _, comp := range stronglyConnected(members, adj) {
		if len(comp) > 1 {
			return false
		}
	}
	return true
}

// fieldOptional reports whether the field carried by a field edge is absent
// from the source schema's required list. Only the root-level required list
// is consulted; a field that cannot be located is treated as required so a
// break never weakens it.
func fieldOptional(g *graph.SchemaGraph, e Edge) bool {
	if e.Field == "" {
		return false
	}
	n, ok := g.Node(e.From)
	if !ok || n.Doc == nil || n.Doc.Root == nil {
		return false
	}
	return !n.Doc.Root.IsRequired(e.Field)
}
