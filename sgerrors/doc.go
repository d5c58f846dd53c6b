// Package sgerrors provides structured error types for the schemagraph library.
//
// Import path: github.com/erraggy/schemagraph/sgerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [LoadError]: document discovery and decoding failures
//   - [ReferenceError]: reference extraction failures and dangling targets
//   - [GraphConstructionError]: the fatal condition where too many documents dangle
//   - [CycleError]: strongly connected groups with no safe break edge
//   - [ResourceLimitError]: resource exhaustion (nesting depth, corpus size)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrLoad]: matches any [LoadError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrDanglingReference]: matches [ReferenceError] with a known source
//   - [ErrGraphConstruction]: matches any [GraphConstructionError]
//   - [ErrCycle]: matches any [CycleError]
//   - [ErrUnresolvableCycle]: matches [CycleError] with Unresolvable=true
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := pipeline.Analyze(pipeline.WithLoadResult(lr))
//	if errors.Is(err, sgerrors.ErrGraphConstruction) {
//	    // The corpus is too broken to produce a usable graph
//	}
//
// Extract error details with errors.As():
//
//	var gcErr *sgerrors.GraphConstructionError
//	if errors.As(err, &gcErr) {
//	    fmt.Printf("%d of %d documents dangling (budget %.2f)\n",
//	        gcErr.DanglingDocs, gcErr.TotalDocs, gcErr.Limit)
//	}
//
// # Error Chaining
//
// Error types with a Cause field support chaining via Unwrap(), so root
// causes remain reachable through the standard error chain:
//
//	var loadErr *sgerrors.LoadError
//	if errors.As(err, &loadErr) {
//	    if errors.Is(loadErr.Cause, os.ErrNotExist) {
//	        // The corpus directory doesn't exist
//	    }
//	}
package sgerrors
