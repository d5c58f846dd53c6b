// Package classifier assigns each schema its final target type family:
// struct, enum, discriminated union, newtype, collection, map, or alias.
//
// Classification is the convergence point of the pipeline. Shape detection
// says what a schema is structurally, cycle analysis says which reference
// must be deferred for the corpus to stay declarable, and the group order
// fixes the order types must be emitted in. The classifier folds the three
// together and produces one [Classification] per schema, plus synthetic
// helper structs where a union variant's inline payload needs a name.
//
// # Quick Start
//
//	result, err := classifier.Classify(g, detection, analysis)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, cl := range result.Classifications {
//		fmt.Println(cl.ID, cl.Kind, cl.Emit)
//	}
//
// # Classification States
//
// Every node moves through a fixed sequence: unclassified, shape resolved,
// cycle checked, classified. The sequence is enforced, so a classification
// can never reflect a shape that skipped its cycle check.
//
// # Indirection
//
// When a node's group broke its cycle at a field edge, the matching
// [FieldDef] is marked indirected and the type still emits eagerly. A break
// no field can absorb (a collection element, a map value, a variant
// payload) defers the whole classification instead: [EmitDeferred] tells
// the backend to wrap the severed reference at declaration time.
//
// # Related Packages
//
//   - [github.com/erraggy/schemagraph/shapes] - Detect the shapes this package maps
//   - [github.com/erraggy/schemagraph/cycles] - Decide the break points this package honors
//   - [github.com/erraggy/schemagraph/namer] - Name every classification, synthetics included
package classifier
