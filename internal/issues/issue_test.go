package issues

import (
	"testing"

	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name: "warning with schema id",
			issue: Issue{
				Code:     CodeDanglingReference,
				SchemaID: "entities/Moment.schema.json",
				Message:  "reference to unknown schema \"entities/Gone.schema.json\"",
				Severity: severity.SeverityWarning,
			},
			contains: []string{
				"⚠",
				"[dangling-reference]",
				"entities/Moment.schema.json",
				"unknown schema",
			},
			notContains: []string{"Involves:"},
		},
		{
			name: "error symbol for decode failure",
			issue: Issue{
				Code:     CodeDecodeFailure,
				Path:     "broken.yaml",
				Message:  "yaml: control characters are not allowed",
				Severity: severity.SeverityError,
			},
			contains:    []string{"✗", "[decode-failure]"},
			notContains: []string{"⚠"},
		},
		{
			name: "critical uses error symbol",
			issue: Issue{
				Code:     CodeDanglingReference,
				Message:  "too many documents with dangling references",
				Severity: severity.SeverityCritical,
			},
			contains: []string{"✗"},
		},
		{
			name: "info symbol for duplicates",
			issue: Issue{
				Code:     CodeDuplicateDocument,
				SchemaID: "a.schema.json",
				Related:  []string{"b.schema.json"},
				Message:  "content identical to b.schema.json",
				Severity: severity.SeverityInfo,
			},
			contains: []string{"ℹ", "Involves: b.schema.json"},
		},
		{
			name: "related schemas listed",
			issue: Issue{
				Code:     CodeNameCollision,
				SchemaID: "workflows/Status.schema.json",
				Related:  []string{"entities/Status.schema.json", "workflows/Status.schema.json"},
				Message:  "identifier \"Status\" contested",
				Severity: severity.SeverityWarning,
			},
			contains: []string{
				"[name-collision]",
				"Involves: entities/Status.schema.json, workflows/Status.schema.json",
			},
		},
		{
			name: "unknown severity renders question mark",
			issue: Issue{
				Code:     CodeUnrecognizedShape,
				Message:  "no structural pattern matched",
				Severity: severity.Severity(99),
			},
			contains: []string{"?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.issue.String()
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, not := range tt.notContains {
				assert.NotContains(t, got, not)
			}
		})
	}
}

func TestIssueLocation(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "path and distinct id",
			issue: Issue{Path: "entities/Moment.schema.json", SchemaID: "entities/Moment.schema.json#LoginStatus"},
			want:  "entities/Moment.schema.json (entities/Moment.schema.json#LoginStatus)",
		},
		{
			name:  "path equals id",
			issue: Issue{Path: "entities/Moment.schema.json", SchemaID: "entities/Moment.schema.json"},
			want:  "entities/Moment.schema.json",
		},
		{
			name:  "id only",
			issue: Issue{SchemaID: "entities/Moment.schema.json"},
			want:  "entities/Moment.schema.json",
		},
		{
			name:  "neither set",
			issue: Issue{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.Location())
		})
	}
}
