// Package loader reads a corpus of schema documents from a directory, an
// explicit file list, a txtar archive, or memory.
//
// The loader supports JSON Schema draft-07 through Draft 2020-12 in YAML and
// JSON formats. Each file becomes a document identified by its corpus-relative
// path, and every top-level $defs / definitions entry is promoted to its own
// document with an ID of the form "path#Name", so that local definitions can
// participate in cross-document analysis as first-class nodes.
//
// # Quick Start
//
// Load a corpus directory using functional options:
//
//	result, err := loader.LoadWithOptions(
//		loader.WithDir("schemas"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, doc := range result.Documents {
//		fmt.Println(doc.ID, doc.Kind)
//	}
//
// Or create a reusable Loader instance:
//
//	l := loader.New()
//	l.ValidateMeta = true
//	result1, _ := l.Load("schemas")
//	result2, _ := l.LoadArchive("corpus.txtar")
//
// # Error Handling
//
// I/O failures (an unreadable directory or file) are fatal and returned as
// *sgerrors.LoadError. Problems confined to a single document, such as
// malformed YAML or an oversized file, are node-local: the document is
// skipped, an Issue is recorded on the result, and the rest of the corpus
// loads normally.
//
// # Fingerprints
//
// Every document carries a BLAKE3 fingerprint of its source bytes. Documents
// with byte-identical content loaded under two IDs are flagged with an
// informational issue; downstream caching keys off the fingerprint.
//
// # Meta-Schema Validation
//
// With WithMetaValidation enabled, each root document is validated against
// the JSON Schema Draft 2020-12 meta-schema. Violations are reported as
// warnings rather than errors because many real corpora carry harmless
// deviations that do not affect graph analysis.
//
// # Resource Limits
//
// The loader enforces configurable resource limits:
//
//   - MaxFileSize: Maximum size of a single schema file (default: 10MB)
//   - MaxDocuments: Maximum corpus size including promoted definitions
//     (default: 10000)
//
// # Related Packages
//
// After loading, use these packages for analysis:
//   - [github.com/erraggy/schemagraph/resolver] - Extract typed reference edges
//   - [github.com/erraggy/schemagraph/graph] - Build the dependency graph
//   - [github.com/erraggy/schemagraph/pipeline] - Run the full analysis pipeline
package loader
