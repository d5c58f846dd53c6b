// Package shapes maps each schema document onto exactly one structural
// shape, the normalized description downstream classification consumes.
//
// A schema language offers many spellings for the same handful of
// structures: an object with named properties, a discriminated set of
// variants, a list, a map, a constrained scalar. Detection collapses those
// spellings into a closed [Kind] so later stages can switch over shapes
// exhaustively instead of re-reading raw documents.
//
// # Quick Start
//
//	detection, err := shapes.Detect(corpus)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, desc := range detection.Shapes {
//		fmt.Println(desc.SchemaID, desc.Kind)
//	}
//
// # Detection Precedence
//
// Patterns overlap, so the first match wins: tagged variants, untagged
// union, fixed fields, single-value wrapper, homogeneous collection, keyed
// map. A document matching nothing is [KindUnrecognized] and raises an
// UnrecognizedShape warning; pure references and infrastructure descriptors
// are excused because an unrecognized result is the expected one for them.
//
// Detection is per-document: a shape never depends on another document's
// content, only on the references the document spells out. Referenced types
// appear in descriptors as SchemaIDs, resolved the same way the resolver
// resolves edges.
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/loader] - Load the corpus this package examines
//   - [github.com/erraggy/schemagraph/classifier] - Map shapes onto target type kinds
package shapes
