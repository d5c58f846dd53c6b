// Package severity provides severity level constants and utilities
// for diagnostics reported by the loader, resolver, graph, cycles,
// shapes, classifier, and namer packages.
//
// All four severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational notices about choices made
//   - SeverityWarning: Degraded nodes and auto-resolved conditions
//   - SeverityError: Conditions that invalidate a node's analysis
//   - SeverityCritical: Conditions that abort the whole run
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a diagnostic raised during
// corpus loading, reference resolution, graph construction, cycle
// analysis, shape detection, classification, or name resolution.
type Severity int

const (
	// SeverityError indicates a condition that invalidates the analysis of
	// the node it is attached to. The rest of the corpus still proceeds.
	SeverityError Severity = iota

	// SeverityWarning indicates a degraded outcome: a dangling reference,
	// an unrecognized shape, or an auto-resolved name collision. The node
	// is still analyzed, possibly as an opaque alias.
	SeverityWarning

	// SeverityInfo indicates informational notices about processing choices,
	// such as duplicate document content sharing a fingerprint.
	SeverityInfo

	// SeverityCritical indicates a condition that makes the whole corpus
	// unusable, such as exceeding the dangling-document budget.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
