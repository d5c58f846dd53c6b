// Package sgerrors provides structured error types for schemagraph.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
package sgerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a document loading or decoding failure.
	ErrLoad = errors.New("load error")

	// ErrReference indicates a reference extraction failure.
	ErrReference = errors.New("reference error")

	// ErrDanglingReference indicates a reference to an unknown schema.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrGraphConstruction indicates the corpus cannot produce a usable graph.
	ErrGraphConstruction = errors.New("graph construction failed")

	// ErrCycle indicates a cyclic dependency condition.
	ErrCycle = errors.New("cycle error")

	// ErrUnresolvableCycle indicates a cycle with no safe break edge.
	ErrUnresolvableCycle = errors.New("unresolvable cycle")

	// ErrState indicates an out-of-order classification state transition.
	ErrState = errors.New("state error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// LoadError represents a failure to discover or decode a schema document.
type LoadError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the detected input format ("json", "yaml", "txtar"), if known
	Format string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// ReferenceError represents a failure to resolve a schema reference.
// This includes references to unknown schemas and malformed ref strings.
type ReferenceError struct {
	// From is the SchemaID of the referencing document (empty if unknown)
	From string
	// Target is the SchemaID the reference resolved to, known or not
	Target string
	// Ref is the raw reference string as written in the document
	Ref string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.From != "" {
		msg = "dangling reference from " + e.From
	}
	if e.Target != "" {
		msg += " to " + e.Target
	} else if e.Ref != "" {
		msg += " to " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference always, and ErrDanglingReference when the
// referencing document is known.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrDanglingReference && e.From != "" {
		return true
	}
	return false
}

// GraphConstructionError represents the fatal condition where more than the
// configured fraction of documents have dangling references, so no usable
// graph can be produced. This aborts the whole run and is never retried.
type GraphConstructionError struct {
	// TotalDocs is the number of documents in the corpus
	TotalDocs int
	// DanglingDocs is the number of documents with at least one dangling reference
	DanglingDocs int
	// Limit is the configured maximum dangling fraction
	Limit float64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *GraphConstructionError) Error() string {
	msg := "graph construction failed"
	if e.TotalDocs > 0 {
		msg += fmt.Sprintf(": %d of %d documents have dangling references (budget %.2f)",
			e.DanglingDocs, e.TotalDocs, e.Limit)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as GraphConstructionError has no underlying cause.
func (e *GraphConstructionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *GraphConstructionError) Is(target error) bool {
	return target == ErrGraphConstruction
}

// CycleError represents a cyclic dependency among schemas. When Unresolvable
// is true, no edge in the cycle admitted indirection and the member nodes are
// degraded rather than emitted.
type CycleError struct {
	// Members are the SchemaIDs participating in the cycle, sorted
	Members []string
	// Unresolvable is true when no safe break edge exists
	Unresolvable bool
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	msg := "cycle"
	if e.Unresolvable {
		msg = "unresolvable cycle"
	}
	if len(e.Members) > 0 {
		msg += " through " + strings.Join(e.Members, " -> ")
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as CycleError has no underlying cause.
func (e *CycleError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrCycle always, and ErrUnresolvableCycle when no break edge exists.
func (e *CycleError) Is(target error) bool {
	if target == ErrCycle {
		return true
	}
	if target == ErrUnresolvableCycle && e.Unresolvable {
		return true
	}
	return false
}

// StateError represents an out-of-order transition in the per-node
// classification state machine. Every node must move through the states in
// sequence; a skipped or repeated transition is a defect in the calling
// code, never recoverable at runtime.
type StateError struct {
	// SchemaID identifies the node whose transition was rejected
	SchemaID string
	// From is the state the node was in
	From string
	// To is the state the transition requested
	To string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *StateError) Error() string {
	msg := "state error"
	if e.SchemaID != "" {
		msg += " for " + e.SchemaID
	}
	if e.From != "" || e.To != "" {
		msg += fmt.Sprintf(": cannot move from %s to %s", e.From, e.To)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as StateError has no underlying cause.
func (e *StateError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *StateError) Is(target error) bool {
	return target == ErrState
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when resolution or detection exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "nesting_depth", "corpus_size", "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
