//go:build integration

package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/erraggy/schemagraph/pipeline"
)

// Expect defines the expected outcome of a scenario run. Nil pointer
// fields and empty maps are not checked.
type Expect struct {
	// Success is the expected overall outcome
	Success *bool `yaml:"success,omitempty"`
	// FatalError expects the run itself to fail with an error containing
	// this substring. All other expectations are skipped when set.
	FatalError string `yaml:"fatal-error,omitempty"`

	// ErrorCount is the expected number of error-severity issues
	ErrorCount *int `yaml:"error-count,omitempty"`
	// WarningCount is the expected number of warning-severity issues
	WarningCount *int `yaml:"warning-count,omitempty"`
	// InfoCount is the expected number of info-severity issues
	InfoCount *int `yaml:"info-count,omitempty"`
	// Codes lists diagnostic codes that must each appear in the issues
	Codes []string `yaml:"codes,omitempty"`

	// Documents is the expected number of root documents
	Documents *int `yaml:"documents,omitempty"`
	// Definitions is the expected number of promoted local definitions
	Definitions *int `yaml:"definitions,omitempty"`
	// Nodes is the expected number of graph nodes
	Nodes *int `yaml:"nodes,omitempty"`
	// Edges is the expected number of distinct typed edges
	Edges *int `yaml:"edges,omitempty"`
	// DanglingEdges is the expected number of unresolved references
	DanglingEdges *int `yaml:"dangling-edges,omitempty"`
	// Groups is the expected number of strongly connected groups
	Groups *int `yaml:"groups,omitempty"`
	// CyclicGroups is the expected number of groups containing a cycle
	CyclicGroups *int `yaml:"cyclic-groups,omitempty"`
	// BrokenEdges is the expected number of severed edges
	BrokenEdges *int `yaml:"broken-edges,omitempty"`
	// Synthetics is the expected number of helper classifications
	Synthetics *int `yaml:"synthetics,omitempty"`
	// Collisions is the expected number of contested identifiers
	Collisions *int `yaml:"collisions,omitempty"`
	// Orphans is the expected number of schemas with no incoming edges
	Orphans *int `yaml:"orphans,omitempty"`
	// Isolated lists schema IDs expected to have no edges at all
	Isolated []string `yaml:"isolated,omitempty"`

	// Handling maps schema IDs to their group's expected handling label
	Handling map[string]string `yaml:"handling,omitempty"`
	// Kinds maps schema IDs to their expected type kind label
	Kinds map[string]string `yaml:"kinds,omitempty"`
	// Emit maps schema IDs to their expected emit strategy label
	Emit map[string]string `yaml:"emit,omitempty"`
	// Identifiers maps schema IDs to their expected resolved identifier
	Identifiers map[string]string `yaml:"identifiers,omitempty"`
	// Discriminators maps schema IDs to their expected discriminator property
	Discriminators map[string]string `yaml:"discriminators,omitempty"`

	// Broken lists edges expected among the severed break edges
	Broken []BrokenEdgeExpect `yaml:"broken,omitempty"`
	// Indirected lists fields expected to carry the cycle-break marker
	Indirected []FieldRef `yaml:"indirected,omitempty"`
	// OrderBefore lists pairs that must appear in this relative emission order
	OrderBefore []OrderConstraint `yaml:"order-before,omitempty"`
}

// BrokenEdgeExpect identifies one expected break edge.
type BrokenEdgeExpect struct {
	// From is the referencing schema ID
	From string `yaml:"from"`
	// To is the referenced schema ID
	To string `yaml:"to"`
	// Kind is the expected edge kind label (field, item, variant, ...)
	Kind string `yaml:"kind,omitempty"`
	// Field is the property that introduced the edge, for field edges
	Field string `yaml:"field,omitempty"`
}

// FieldRef identifies one field of one schema.
type FieldRef struct {
	// Schema is the owning schema ID
	Schema string `yaml:"schema"`
	// Field is the property name
	Field string `yaml:"field"`
}

// OrderConstraint expects First to appear before Then in emission order.
type OrderConstraint struct {
	// First is the schema ID expected earlier
	First string `yaml:"first"`
	// Then is the schema ID expected later
	Then string `yaml:"then"`
}

// CheckExpect compares an analysis outcome against the expectations and
// returns one failure message per expectation that did not hold.
func CheckExpect(res *pipeline.Result, runErr error, e *Expect) []string {
	var failures []string

	if e.FatalError != "" {
		if runErr == nil {
			return append(failures, fmt.Sprintf("expected fatal error containing %q, but the run succeeded", e.FatalError))
		}
		if !strings.Contains(runErr.Error(), e.FatalError) {
			failures = append(failures, fmt.Sprintf("fatal error %q does not contain %q", runErr.Error(), e.FatalError))
		}
		return failures
	}
	if runErr != nil {
		return append(failures, fmt.Sprintf("unexpected fatal error: %v", runErr))
	}

	if e.Success != nil && res.Success != *e.Success {
		failures = append(failures, fmt.Sprintf("success: expected %v, got %v (errors %d, warnings %d)",
			*e.Success, res.Success, res.ErrorCount, res.WarningCount))
	}

	failures = checkCount(failures, "error count", e.ErrorCount, res.ErrorCount)
	failures = checkCount(failures, "warning count", e.WarningCount, res.WarningCount)
	failures = checkCount(failures, "info count", e.InfoCount, res.InfoCount)
	failures = checkCount(failures, "documents", e.Documents, res.Stats.Documents)
	failures = checkCount(failures, "definitions", e.Definitions, res.Stats.Definitions)
	failures = checkCount(failures, "nodes", e.Nodes, res.Stats.Nodes)
	failures = checkCount(failures, "edges", e.Edges, res.Stats.Edges)
	failures = checkCount(failures, "dangling edges", e.DanglingEdges, res.Stats.DanglingEdges)
	failures = checkCount(failures, "groups", e.Groups, res.Stats.Groups)
	failures = checkCount(failures, "cyclic groups", e.CyclicGroups, res.Stats.CyclicGroups)
	failures = checkCount(failures, "broken edges", e.BrokenEdges, res.Stats.BrokenEdges)
	failures = checkCount(failures, "synthetics", e.Synthetics, res.Stats.Synthetics)
	failures = checkCount(failures, "collisions", e.Collisions, res.Stats.Collisions)

	if e.Orphans != nil {
		failures = checkCount(failures, "orphans", e.Orphans, len(res.Graph.Orphans()))
	}
	for _, id := range e.Isolated {
		found := false
		for _, info := range res.Graph.IsolatedSchemas() {
			if info.SchemaID == id {
				found = true
				break
			}
		}
		if !found {
			failures = append(failures, fmt.Sprintf("expected %s to be isolated", id))
		}
	}

	for _, code := range e.Codes {
		found := false
		for _, iss := range res.Issues {
			if string(iss.Code) == code {
				found = true
				break
			}
		}
		if !found {
			failures = append(failures, fmt.Sprintf("expected an issue with code %q, have %s", code, issueCodes(res)))
		}
	}

	for id, want := range e.Handling {
		group, ok := res.GroupOf(id)
		if !ok {
			failures = append(failures, fmt.Sprintf("handling: schema %s not in any group", id))
			continue
		}
		if got := group.Handling.Kind.String(); got != want {
			failures = append(failures, fmt.Sprintf("handling for %s: expected %s, got %s", id, want, got))
		}
	}

	for id, want := range e.Kinds {
		cl, ok := res.Classification(id)
		if !ok {
			failures = append(failures, fmt.Sprintf("kind: schema %s not classified", id))
			continue
		}
		if got := cl.Kind.String(); got != want {
			failures = append(failures, fmt.Sprintf("kind for %s: expected %s, got %s", id, want, got))
		}
	}

	for id, want := range e.Emit {
		cl, ok := res.Classification(id)
		if !ok {
			failures = append(failures, fmt.Sprintf("emit: schema %s not classified", id))
			continue
		}
		if got := cl.Emit.String(); got != want {
			failures = append(failures, fmt.Sprintf("emit for %s: expected %s, got %s", id, want, got))
		}
	}

	for id, want := range e.Identifiers {
		if got := res.Identifier(id); got != want {
			failures = append(failures, fmt.Sprintf("identifier for %s: expected %q, got %q", id, want, got))
		}
	}

	for id, want := range e.Discriminators {
		cl, ok := res.Classification(id)
		if !ok {
			failures = append(failures, fmt.Sprintf("discriminator: schema %s not classified", id))
			continue
		}
		if cl.Discriminator != want {
			failures = append(failures, fmt.Sprintf("discriminator for %s: expected %q, got %q", id, want, cl.Discriminator))
		}
	}

	for _, want := range e.Broken {
		found := false
		for _, edge := range res.BrokenEdges() {
			if edge.From != want.From || edge.To != want.To {
				continue
			}
			if want.Kind != "" && edge.Kind.String() != want.Kind {
				continue
			}
			if want.Field != "" && edge.Field != want.Field {
				continue
			}
			found = true
			break
		}
		if !found {
			failures = append(failures, fmt.Sprintf("expected broken edge %s -> %s, have %v", want.From, want.To, res.BrokenEdges()))
		}
	}

	for _, ref := range e.Indirected {
		cl, ok := res.Classification(ref.Schema)
		if !ok {
			failures = append(failures, fmt.Sprintf("indirected: schema %s not classified", ref.Schema))
			continue
		}
		found := false
		for _, f := range cl.Fields {
			if f.Name == ref.Field {
				found = f.Indirected
				break
			}
		}
		if !found {
			failures = append(failures, fmt.Sprintf("expected field %s.%s to be indirected", ref.Schema, ref.Field))
		}
	}

	for _, oc := range e.OrderBefore {
		first, then := orderIndex(res, oc.First), orderIndex(res, oc.Then)
		switch {
		case first < 0:
			failures = append(failures, fmt.Sprintf("order: %s not in emission order", oc.First))
		case then < 0:
			failures = append(failures, fmt.Sprintf("order: %s not in emission order", oc.Then))
		case first >= then:
			failures = append(failures, fmt.Sprintf("order: expected %s before %s, got positions %d and %d", oc.First, oc.Then, first, then))
		}
	}

	return failures
}

func checkCount(failures []string, label string, want *int, got int) []string {
	if want != nil && got != *want {
		failures = append(failures, fmt.Sprintf("%s: expected %d, got %d", label, *want, got))
	}
	return failures
}

func orderIndex(res *pipeline.Result, id string) int {
	for i, oid := range res.Order {
		if oid == id {
			return i
		}
	}
	return -1
}

func issueCodes(res *pipeline.Result) string {
	if len(res.Issues) == 0 {
		return "no issues"
	}
	codes := make([]string, len(res.Issues))
	for i, iss := range res.Issues {
		codes[i] = string(iss.Code)
	}
	return strings.Join(codes, ", ")
}

// AssertSuccess asserts that an analysis completed without error-severity
// issues.
func AssertSuccess(t *testing.T, res *pipeline.Result) {
	t.Helper()
	if !res.Success {
		t.Errorf("expected successful analysis, got %d errors:", res.ErrorCount)
		for _, iss := range res.IssuesBySeverity(pipeline.SeverityError) {
			t.Errorf("  - %s", iss.String())
		}
	}
}

// AssertNoIssues asserts that an analysis produced no diagnostics at all.
func AssertNoIssues(t *testing.T, res *pipeline.Result) {
	t.Helper()
	if len(res.Issues) > 0 {
		t.Errorf("expected no issues, got %d:", len(res.Issues))
		for _, iss := range res.Issues {
			t.Errorf("  - %s", iss.String())
		}
	}
}

// AssertHandling asserts the handling label of the group containing the
// given schema.
func AssertHandling(t *testing.T, res *pipeline.Result, id, expected string) {
	t.Helper()
	group, ok := res.GroupOf(id)
	if !ok {
		t.Errorf("schema %s not in any group", id)
		return
	}
	if got := group.Handling.Kind.String(); got != expected {
		t.Errorf("handling for %s: expected %s, got %s", id, expected, got)
	}
}

// AssertIdentifier asserts the resolved identifier of the given schema.
func AssertIdentifier(t *testing.T, res *pipeline.Result, id, expected string) {
	t.Helper()
	if got := res.Identifier(id); got != expected {
		t.Errorf("identifier for %s: expected %q, got %q", id, expected, got)
	}
}

// AssertOrderBefore asserts that first appears before then in the
// emission order.
func AssertOrderBefore(t *testing.T, res *pipeline.Result, first, then string) {
	t.Helper()
	fi, ti := orderIndex(res, first), orderIndex(res, then)
	if fi < 0 {
		t.Errorf("%s not in emission order", first)
		return
	}
	if ti < 0 {
		t.Errorf("%s not in emission order", then)
		return
	}
	if fi >= ti {
		t.Errorf("expected %s before %s in emission order, got positions %d and %d", first, then, fi, ti)
	}
}
