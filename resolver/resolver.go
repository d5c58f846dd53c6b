package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/maputil"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/loader"
)

// Issue describes a single non-fatal problem found while resolving.
type Issue = issues.Issue

// Severity indicates the severity level of a resolution issue
type Severity = severity.Severity

const (
	// SeverityError indicates a reference that invalidates its document
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a reference that was dropped but left the
	// document analyzable
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// CodeDanglingReference marks an edge whose target is not a known schema
const CodeDanglingReference = issues.CodeDanglingReference

// defaultMaxDepth bounds property-nesting traversal. Composition keywords
// recurse without limit; only inline property objects count against it.
const defaultMaxDepth = 100

// Resolver extracts typed edges from a loaded corpus.
//
// Resolution is a pure function of the corpus: the same documents always
// produce the same edges in the same order, independent of map iteration
// order or the platform the corpus was loaded on.
type Resolver struct {
	// MaxDepth is the number of inline property-nesting levels walked when
	// collecting field-type edges. Deeper inline objects contribute no
	// edges. Composition keywords (allOf, oneOf, anyOf, items,
	// additionalProperties) are never depth-limited.
	// Default: 100
	MaxDepth int
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Resolver instance with default settings
func New() *Resolver {
	return &Resolver{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *Resolver) log() loader.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return loader.NopLogger{}
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return defaultMaxDepth
}

// Resolution holds every edge extracted from a corpus plus the diagnostics
// raised along the way.
type Resolution struct {
	// Edges contains the resolved edges in deterministic order: documents in
	// ID order, extraction order within a document. Duplicates are possible;
	// graph construction collapses them.
	Edges []Edge
	// Dangling contains the edges whose target is not a known SchemaID.
	// They are excluded from Edges. Graph construction decides whether the
	// corpus as a whole is still usable.
	Dangling []Edge
	// Issues contains one DanglingReference warning per dangling edge.
	Issues []Issue
	// DocumentCount is the number of documents examined.
	DocumentCount int
	// ResolveTime is the time taken to extract every edge.
	ResolveTime time.Duration

	byFrom map[string][]Edge
}

// EdgesFrom returns the resolved edges originating at the given SchemaID.
func (res *Resolution) EdgesFrom(id string) []Edge {
	return res.byFrom[id]
}

// DanglingDocuments returns the sorted SchemaIDs of every document with at
// least one dangling reference. Graph construction compares the count
// against its dangling budget.
func (res *Resolution) DanglingDocuments() []string {
	seen := make(map[string]struct{}, len(res.Dangling))
	for _, e := range res.Dangling {
		seen[e.From] = struct{}{}
	}
	return maputil.SortedKeys(seen)
}

// Resolve extracts typed edges from every document in the corpus using a
// Resolver configured by the given options.
func Resolve(corpus *loader.LoadResult, opts ...Option) (*Resolution, error) {
	r := New()
	if err := applyOptions(r, opts); err != nil {
		return nil, err
	}
	return r.Resolve(corpus), nil
}

// Resolve extracts typed edges from every document in the corpus.
//
// Two extraction passes run per document. Root documents first yield
// infrastructure edges from their x-familiar-* extension keys, then every
// document (roots and promoted definitions alike) yields ownership edges
// from its schema keywords. Edges whose target is not a known SchemaID are
// reported as DanglingReference warnings and segregated into Dangling.
func (r *Resolver) Resolve(corpus *loader.LoadResult) *Resolution {
	start := time.Now()
	if corpus == nil {
		return &Resolution{byFrom: make(map[string][]Edge)}
	}

	perDoc := make([][]Edge, len(corpus.Documents))
	for i, doc := range corpus.Documents {
		perDoc[i] = r.ExtractDocument(doc)
	}
	res := r.MergeExtractions(corpus, perDoc)
	res.ResolveTime = time.Since(start)
	return res
}

// ExtractDocument returns the provisional edges of one document in
// extraction order, before the corpus-wide dangling check. Extraction
// reads only the document itself, so documents can be extracted in any
// order or in parallel; MergeExtractions admits the yields against the
// full corpus.
func (r *Resolver) ExtractDocument(doc *loader.Document) []Edge {
	if doc == nil || doc.Raw == nil {
		return nil // undecodable documents were already reported by the loader
	}
	var hits []rawRef
	if !doc.IsDefinition() {
		hits = extractExtensionRefs(doc.Raw, doc.Path)
	}
	hits = append(hits, extractSchemaRefs(doc.Raw, doc.Path, "", r.maxDepth(), 0)...)
	edges := make([]Edge, 0, len(hits))
	for _, h := range hits {
		edges = append(edges, Edge{From: doc.ID, To: h.target, Kind: h.kind, Field: h.field})
	}
	r.log().Debug("extracted edges", "schema", doc.ID, "count", len(edges))
	return edges
}

// MergeExtractions assembles a Resolution from per-document extractions,
// one slice per corpus document in corpus order. Merging runs on a single
// goroutine and preserves the order the extractions were handed in, so
// the result is identical to a serial Resolve.
func (r *Resolver) MergeExtractions(corpus *loader.LoadResult, perDoc [][]Edge) *Resolution {
	start := time.Now()
	res := &Resolution{byFrom: make(map[string][]Edge)}
	if corpus == nil {
		return res
	}

	for _, edges := range perDoc {
		r.admit(corpus, res, edges)
	}

	res.DocumentCount = len(corpus.Documents)
	res.ResolveTime = time.Since(start)
	r.log().Info("references resolved",
		"documents", res.DocumentCount,
		"edges", len(res.Edges),
		"dangling", len(res.Dangling),
	)
	return res
}

// admit merges provisional edges into the resolution, separating those
// whose target is unknown.
func (r *Resolver) admit(corpus *loader.LoadResult, res *Resolution, edges []Edge) {
	for _, edge := range edges {
		if _, known := corpus.Document(edge.To); !known {
			path := edge.From
			if doc, ok := corpus.Document(edge.From); ok {
				path = doc.Path
			}
			res.Dangling = append(res.Dangling, edge)
			res.Issues = append(res.Issues, Issue{
				Code:     CodeDanglingReference,
				SchemaID: edge.From,
				Path:     path,
				Related:  []string{edge.To},
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s reference to unknown schema %q", edge.Kind, edge.To),
			})
			continue
		}
		res.Edges = append(res.Edges, edge)
		res.byFrom[edge.From] = append(res.byFrom[edge.From], edge)
	}
}

// rawRef is an extracted reference before the dangling check.
type rawRef struct {
	target string
	kind   EdgeKind
	field  string
}

// extensionEdges maps each x-familiar-* key carrying references onto the
// edge kind those references produce. The order is fixed so extraction order
// is stable.
var extensionEdges = []struct {
	key  string
	kind EdgeKind
}{
	{"x-familiar-service", KindRunsOn},
	{"x-familiar-queue", KindUsesQueue},
	{"x-familiar-depends", KindRequires},
	{"x-familiar-resources", KindConnectsTo},
	{"x-familiar-reads", KindReads},
	{"x-familiar-writes", KindWrites},
	{"x-familiar-input", KindInput},
	{"x-familiar-output", KindOutput},
	{"x-familiar-systems", KindDirectRef},
	{"x-familiar-components", KindRequires},
	{"x-familiar-consumers", KindUsesQueue},
	{"x-familiar-producers", KindUsesQueue},
	{"x-familiar-config", KindDirectRef},
}

// extractExtensionRefs collects infrastructure references declared through
// x-familiar-* extension keys on a root document. Each key accepts either a
// single {"$ref": ...} object or an array of them; anything else under the
// key is ignored.
func extractExtensionRefs(raw map[string]interface{}, basePath string) []rawRef {
	var hits []rawRef
	for _, ext := range extensionEdges {
		val, ok := raw[ext.key]
		if !ok {
			continue
		}
		for _, entry := range refEntries(val) {
			ref, ok := refString(entry)
			if !ok {
				continue
			}
			target := normalizeRef(basePath, ref)
			if target == "" {
				continue
			}
			hits = append(hits, rawRef{target: target, kind: ext.kind})
		}
	}
	return hits
}

// refEntries flattens a single ref object or an array of them into a slice.
func refEntries(val interface{}) []interface{} {
	if arr, ok := val.([]interface{}); ok {
		return arr
	}
	return []interface{}{val}
}

// refString pulls the $ref value out of a {"$ref": "..."} object.
func refString(val interface{}) (string, bool) {
	obj, ok := val.(map[string]interface{})
	if !ok {
		return "", false
	}
	ref, ok := obj["$ref"].(string)
	return ref, ok && ref != ""
}

// extractSchemaRefs walks a decoded schema and collects every reference it
// declares, tagged with the edge kind implied by the keyword that introduced
// it:
//
//	allOf                -> extends
//	oneOf, anyOf         -> variant
//	items                -> item
//	additionalProperties -> value (schema form only)
//	properties.<name>    -> field
//	bare $ref            -> ref (cross-document) or local (#/$defs, #/definitions)
//
// References nested beneath a keyword keep the kind assigned at the
// innermost keyword; only plain refs are promoted by the enclosing keyword.
// A $ref shadows its sibling keywords, matching how JSON Schema treats $ref
// objects. Property traversal stops after maxDepth levels of inline nesting;
// other keywords recurse at the same depth.
func extractSchemaRefs(raw interface{}, basePath, field string, maxDepth, depth int) []rawRef {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	atLimit := maxDepth > 0 && depth >= maxDepth
	var hits []rawRef

	if ref, ok := obj["$ref"].(string); ok {
		switch {
		case strings.HasPrefix(ref, "#/definitions/") || strings.HasPrefix(ref, "#/$defs/"):
			parts := strings.Split(ref, "/")
			name := parts[len(parts)-1]
			hits = append(hits, rawRef{target: issues.FormatID(basePath, name), kind: KindLocalRef, field: field})
		case !strings.HasPrefix(ref, "#"):
			if target := normalizeRef(basePath, ref); target != "" {
				hits = append(hits, rawRef{target: target, kind: KindDirectRef, field: field})
			}
		}
		return hits
	}

	if members, ok := obj["allOf"].([]interface{}); ok {
		for _, member := range members {
			hits = append(hits, promote(extractSchemaRefs(member, basePath, "", maxDepth, depth), KindExtends)...)
		}
	}
	for _, key := range []string{"oneOf", "anyOf"} {
		members, ok := obj[key].([]interface{})
		if !ok {
			continue
		}
		for _, member := range members {
			hits = append(hits, promote(extractSchemaRefs(member, basePath, "", maxDepth, depth), KindVariant)...)
		}
	}
	if items, ok := obj["items"]; ok {
		hits = append(hits, promote(extractSchemaRefs(items, basePath, "", maxDepth, depth), KindItemType)...)
	}
	if extra, ok := obj["additionalProperties"].(map[string]interface{}); ok {
		hits = append(hits, promote(extractSchemaRefs(extra, basePath, "", maxDepth, depth), KindValueType)...)
	}

	if !atLimit {
		if props, ok := obj["properties"].(map[string]interface{}); ok {
			for _, name := range maputil.SortedKeys(props) {
				hits = append(hits, promote(extractSchemaRefs(props[name], basePath, name, maxDepth, depth+1), KindFieldType)...)
			}
		}
	}

	if atLimit {
		return hits
	}
	for _, key := range maputil.SortedKeys(obj) {
		if skipGenericKey(key) {
			continue
		}
		child, ok := obj[key].(map[string]interface{})
		if !ok {
			continue
		}
		hits = append(hits, extractSchemaRefs(child, basePath, "", maxDepth, depth)...)
	}

	return hits
}

// promote rewrites plain ref hits to the kind implied by the enclosing
// keyword. Hits already promoted by an inner keyword pass through unchanged.
func promote(hits []rawRef, kind EdgeKind) []rawRef {
	for i, h := range hits {
		if h.kind == KindDirectRef || h.kind == KindLocalRef {
			hits[i].kind = kind
		}
	}
	return hits
}

// skipGenericKey reports which keys the generic recursion must not descend
// into: extension keys feed extractExtensionRefs, definitions become their
// own nodes, and the composition keywords were already handled.
func skipGenericKey(key string) bool {
	if strings.HasPrefix(key, "x-familiar") {
		return true
	}
	switch key {
	case "definitions", "$defs", "properties", "items", "allOf", "oneOf", "anyOf", "additionalProperties":
		return true
	}
	return false
}

// TargetID resolves a raw reference string to the SchemaID it denotes: a
// local definition ref maps onto the promoted definition node, everything
// else resolves against the referencing document's directory. Returns ""
// for forms that denote no schema, such as fragment refs into arbitrary
// subschemas.
func TargetID(basePath, ref string) string {
	if strings.HasPrefix(ref, "#/definitions/") || strings.HasPrefix(ref, "#/$defs/") {
		parts := strings.Split(ref, "/")
		return issues.FormatID(basePath, parts[len(parts)-1])
	}
	return normalizeRef(basePath, ref)
}

// normalizeRef resolves a reference string against the directory of the
// document that contains it.
//
// Fragment-only refs resolve within the document and return "". Refs
// starting with "../" are joined to the current document's directory and
// collapsed; every other path is already corpus-root-relative and passes
// through. A fragment naming a definition ("dir/file.json#/$defs/Name")
// resolves to that definition's SchemaID ("dir/file.json#Name").
func normalizeRef(currentPath, ref string) string {
	if strings.HasPrefix(ref, "#") {
		return ""
	}

	base, frag, hasFrag := strings.Cut(ref, "#")
	if strings.HasPrefix(base, "../") {
		joined := base
		if dir := parentDir(currentPath); dir != "" {
			joined = dir + "/" + base
		}
		var parts []string
		for _, part := range strings.Split(joined, "/") {
			switch part {
			case "..":
				if len(parts) > 0 {
					parts = parts[:len(parts)-1]
				}
			case ".", "":
			default:
				parts = append(parts, part)
			}
		}
		base = strings.Join(parts, "/")
	}

	if !hasFrag || frag == "" {
		return base
	}
	if name, ok := definitionFragment(frag); ok {
		return issues.FormatID(base, name)
	}
	return base + "#" + frag
}

// parentDir returns the directory part of a slash path, "" at the root.
func parentDir(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// definitionFragment recognizes fragments that point at a whole top-level
// definition, the only fragment form that maps onto a promoted node.
func definitionFragment(frag string) (string, bool) {
	for _, prefix := range []string{"/definitions/", "/$defs/"} {
		name, found := strings.CutPrefix(frag, prefix)
		if found && name != "" && !strings.Contains(name, "/") {
			return name, true
		}
	}
	return "", false
}
