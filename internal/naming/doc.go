// Package naming provides shared identifier conversion utilities for
// schemagraph packages.
//
// This internal package contains the string transformation functions used
// by name resolution and reporting. Functions include ToPascalCase,
// ToSnakeCase, ToIdentifier, and EscapeReserved.
//
// These functions are used for:
//   - Namer package: deriving exported identifiers from stems, definition
//     names, and variant names
//   - Test fixtures: generating deterministic document titles
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
