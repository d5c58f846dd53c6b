// Package resolver extracts typed reference edges from a loaded schema
// corpus.
//
// Every reference a document makes, through schema keywords or through
// x-familiar-* extension keys, becomes an [Edge] tagged with an [EdgeKind]
// describing the relationship: a property reference is a field-type edge, an
// allOf member is an extends edge, an x-familiar-service entry is a runs-on
// edge, and so on. Ownership kinds feed cycle analysis; infrastructure kinds
// describe deployment and data-flow and are excluded from it.
//
// # Quick Start
//
//	corpus, err := loader.LoadWithOptions(loader.WithDir("schemas"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := resolver.Resolve(corpus)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, edge := range res.Edges {
//		fmt.Println(edge)
//	}
//
// # Reference Forms
//
// Plain refs come in three forms. A fragment ref ("#/$defs/Name") resolves
// to a promoted definition of the same document. A parent-relative ref
// ("../primitives/UUID.json") is resolved against the referencing document's
// directory. Every other ref is treated as corpus-root-relative and passed
// through unchanged. A fragment on a cross-document ref
// ("entities/Moment.json#/$defs/Attachment") resolves to that definition's
// SchemaID.
//
// # Dangling References
//
// Resolution never fails on a bad reference. An edge whose target is not a
// known SchemaID is segregated into [Resolution.Dangling] and reported as a
// warning-severity DanglingReference issue; graph construction decides
// whether the corpus as a whole stays usable.
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/loader] - Load the corpus this package consumes
//   - [github.com/erraggy/schemagraph/graph] - Build the dependency graph from resolved edges
//   - [github.com/erraggy/schemagraph/cycles] - Detect and break ownership cycles
package resolver
