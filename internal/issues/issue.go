// Package issues provides the diagnostic record type shared by every
// analysis stage: loading, reference resolution, graph construction,
// cycle analysis, shape detection, classification, and name resolution.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/internal/severity"
)

// Code identifies the category of a diagnostic.
type Code string

const (
	// CodeDanglingReference reports an edge whose target is not a known schema.
	CodeDanglingReference Code = "dangling-reference"
	// CodeUnresolvedCycle reports a strongly connected group with no safe break edge.
	CodeUnresolvedCycle Code = "unresolved-cycle"
	// CodeUnrecognizedShape reports a document matching no structural pattern.
	CodeUnrecognizedShape Code = "unrecognized-shape"
	// CodeNameCollision reports two or more schemas competing for one identifier.
	CodeNameCollision Code = "name-collision"
	// CodeDuplicateDocument reports two documents with identical content fingerprints.
	CodeDuplicateDocument Code = "duplicate-document"
	// CodeMetaSchemaViolation reports a document that fails meta-schema validation.
	CodeMetaSchemaViolation Code = "meta-schema-violation"
	// CodeDecodeFailure reports a document that could not be decoded.
	CodeDecodeFailure Code = "decode-failure"
)

// Issue represents a single diagnostic raised during an analysis run.
type Issue struct {
	// Code is the diagnostic category
	Code Code
	// SchemaID is the offending schema, empty when the issue is corpus-level
	SchemaID string
	// Related lists the other schemas involved: collision partners, cycle members
	Related []string
	// Path is the source path of the offending document (for display only)
	Path string
	// Message is a human-readable explanation
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
}

// String returns a formatted one-or-two-line representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	sb := getStringBuilder()
	defer putStringBuilder(sb)

	sb.WriteString(symbol)
	sb.WriteString(" [")
	sb.WriteString(string(i.Code))
	sb.WriteString("]")
	if i.SchemaID != "" {
		sb.WriteString(" ")
		sb.WriteString(i.SchemaID)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)

	if len(i.Related) > 0 {
		sb.WriteString("\n    Involves: ")
		sb.WriteString(strings.Join(i.Related, ", "))
	}

	return sb.String()
}

// Location returns the source position of the issue in display form:
// "path (id)" when both are known, otherwise whichever is set.
func (i Issue) Location() string {
	switch {
	case i.Path != "" && i.SchemaID != "" && i.Path != i.SchemaID:
		return fmt.Sprintf("%s (%s)", i.Path, i.SchemaID)
	case i.Path != "":
		return i.Path
	default:
		return i.SchemaID
	}
}
