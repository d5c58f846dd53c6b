// Package namer assigns a unique exported identifier to every
// classification, synthetic helpers included.
//
// Identifiers come from the schema's own name: the definition name for a
// promoted definition, the file stem for a root document, PascalCased
// either way. The interesting work is what happens when two schemas want
// the same name.
//
// # Collision Policy
//
// Contested identifiers are qualified with source path segments, nearest
// parent first, until all parties are distinct: entities/status.json and
// legacy/status.json become EntitiesStatus and LegacyStatus, never Status2.
// Counter suffixes would shift whenever an unrelated schema appeared;
// path qualification only changes when the colliding schemas themselves
// move. Every contested identifier is reported as a NameCollision warning
// listing the competing schema IDs.
//
// # Stability
//
// The same corpus always produces the same table, byte for byte.
// Regeneration must not rename types that did not change: downstream code
// references generated names, and a rename is a breaking change. This is
// also why a synthetic helper yields when its composed name is already
// taken; introducing a union variant never renames an established type.
//
// # Quick Start
//
//	table, err := namer.Resolve(result)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rn := range table.Names {
//		fmt.Println(rn.LogicalID, "->", rn.Identifier)
//	}
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/classifier] - Produce the classifications this package names
//   - [github.com/erraggy/schemagraph/pipeline] - Run the full analysis in one call
package namer
