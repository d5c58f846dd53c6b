package shapes

import (
	"fmt"
	"sort"
	"time"

	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
)

// Issue describes a single non-fatal problem found during shape detection.
type Issue = issues.Issue

// Severity indicates the severity level of a detection issue
type Severity = severity.Severity

const (
	// SeverityError indicates an issue that invalidates a document
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a document that degraded to an opaque alias
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// CodeUnrecognizedShape marks a document matching no structural pattern
const CodeUnrecognizedShape = issues.CodeUnrecognizedShape

// Detector maps each schema document onto exactly one structural shape.
//
// Detection is per-document and pure: a document's shape depends only on its
// own content, never on the rest of the corpus, so documents can be detected
// in any order or in parallel with identical results.
type Detector struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Detector instance with default settings
func New() *Detector {
	return &Detector{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (d *Detector) log() loader.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return loader.NopLogger{}
}

// Detection holds the shape of every document in a corpus plus the
// diagnostics raised along the way.
type Detection struct {
	// Shapes contains one descriptor per decodable document, sorted by
	// SchemaID.
	Shapes []Descriptor
	// Issues contains one UnrecognizedShape warning per document that
	// matched no pattern and is not a reference alias or an infrastructure
	// descriptor.
	Issues []Issue
	// DocumentCount is the number of documents examined.
	DocumentCount int
	// DetectTime is the time taken to detect every shape.
	DetectTime time.Duration

	byID map[string]int
}

// Shape returns the descriptor for the given SchemaID.
func (det *Detection) Shape(id string) (Descriptor, bool) {
	i, ok := det.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return det.Shapes[i], true
}

// Detect maps every document in the corpus onto a shape using a Detector
// configured by the given options.
func Detect(corpus *loader.LoadResult, opts ...Option) (*Detection, error) {
	d := New()
	if err := applyOptions(d, opts); err != nil {
		return nil, err
	}
	return d.Detect(corpus), nil
}

// Detect maps every document in the corpus onto exactly one shape.
//
// Documents the loader could not decode are skipped; they were already
// reported. Documents matching no pattern come out as KindUnrecognized and
// raise an UnrecognizedShape warning unless UnrecognizedIssue excuses them.
func (d *Detector) Detect(corpus *loader.LoadResult) *Detection {
	start := time.Now()
	if corpus == nil {
		return &Detection{byID: make(map[string]int)}
	}

	descs := make([]Descriptor, len(corpus.Documents))
	for i, doc := range corpus.Documents {
		if doc.Root == nil {
			continue // undecodable documents were already reported by the loader
		}
		descs[i] = d.DetectDocument(doc)
		d.log().Debug("shape detected", "schema", doc.ID, "kind", descs[i].Kind.String())
	}
	det := d.MergeDescriptors(corpus, descs)
	det.DetectTime = time.Since(start)
	return det
}

// MergeDescriptors assembles a Detection from per-document descriptors,
// one per corpus document in corpus order. Workers produce descriptors
// with DetectDocument; merging runs on a single goroutine, so the result
// is identical to a serial Detect. Slots left zero (undecodable
// documents) are skipped.
func (d *Detector) MergeDescriptors(corpus *loader.LoadResult, descs []Descriptor) *Detection {
	start := time.Now()
	det := &Detection{byID: make(map[string]int)}
	if corpus == nil {
		return det
	}

	for i, doc := range corpus.Documents {
		if i >= len(descs) || descs[i].SchemaID == "" {
			continue
		}
		desc := descs[i]
		det.byID[desc.SchemaID] = len(det.Shapes)
		det.Shapes = append(det.Shapes, desc)
		if issue, ok := UnrecognizedIssue(doc, desc); ok {
			det.Issues = append(det.Issues, issue)
		}
	}

	det.DocumentCount = len(corpus.Documents)
	det.DetectTime = time.Since(start)
	d.log().Info("shapes detected",
		"documents", det.DocumentCount,
		"unrecognized", len(det.Issues),
	)
	return det
}

// DetectDocument maps one document onto its shape. Precedence, first match
// wins:
//
//  1. alternatives sharing a constant-valued discriminator property -> TaggedVariants
//  2. alternatives mutually exclusive by structure -> UntaggedUnion
//  3. a fixed, named property set -> FixedFields
//  4. a constrained scalar or constrained reference -> SingleValueWrapper
//  5. a list of one element type -> HomogeneousCollection
//  6. a string-keyed map of one value type -> KeyedMap
//
// A document matching none of these is KindUnrecognized; when it is a pure
// reference the descriptor records the aliased target.
func (d *Detector) DetectDocument(doc *loader.Document) Descriptor {
	desc := Descriptor{SchemaID: doc.ID, Kind: KindUnrecognized}
	root := doc.Root
	if root == nil {
		return desc
	}

	if tagged, ok := detectTagged(doc, root); ok {
		return tagged
	}
	if union, ok := detectUntagged(doc, root); ok {
		return union
	}
	if fixed, ok := detectFixed(doc, root); ok {
		return fixed
	}
	if wrapper, ok := detectWrapper(doc, root); ok {
		return wrapper
	}
	if coll, ok := detectCollection(doc, root); ok {
		return coll
	}
	if keyed, ok := detectKeyedMap(doc, root); ok {
		return keyed
	}

	if root.HasRef() {
		desc.AliasOf = resolver.TargetID(doc.Path, root.Ref)
	}
	return desc
}

// UnrecognizedIssue builds the diagnostic for a document whose shape matched
// no pattern. Three cases are excused because an unrecognized result is the
// expected one, not a defect: reference aliases, definition container files,
// and infrastructure descriptors. None of them carries a data shape of its
// own.
func UnrecognizedIssue(doc *loader.Document, desc Descriptor) (Issue, bool) {
	if desc.Kind != KindUnrecognized || desc.AliasOf != "" {
		return Issue{}, false
	}
	if doc.Root != nil && len(doc.Root.LocalDefinitions()) > 0 {
		return Issue{}, false
	}
	if _, infra := infrastructureKinds[doc.Kind]; infra {
		return Issue{}, false
	}
	return Issue{
		Code:     CodeUnrecognizedShape,
		SchemaID: doc.ID,
		Path:     doc.Path,
		Severity: SeverityWarning,
		Message:  "document matches no structural pattern; classifying as an opaque alias",
	}, true
}

// infrastructureKinds lists the x-familiar-kind values that describe
// deployment topology or meta-schemas rather than data. Their documents
// legitimately match no data shape.
var infrastructureKinds = map[string]struct{}{
	"system":       {},
	"node":         {},
	"queue":        {},
	"resource":     {},
	"meta":         {},
	"windmill":     {},
	"entities_api": {},
}

// alternatives returns the document's union membership list: oneOf when
// declared, anyOf otherwise. A single alternative is not a union.
func alternatives(root *loader.RawSchema) []*loader.RawSchema {
	alts := root.OneOf
	if len(alts) == 0 {
		alts = root.AnyOf
	}
	if len(alts) < 2 {
		return nil
	}
	for _, alt := range alts {
		if alt == nil {
			return nil
		}
	}
	return alts
}

// detectTagged matches a set of alternatives selected by a shared
// discriminator: a property present in every alternative with a constant
// value, distinct across alternatives. Candidate properties are tried in
// name order so detection never depends on map iteration.
func detectTagged(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	alts := alternatives(root)
	if alts == nil {
		return Descriptor{}, false
	}
	disc, ok := discriminatorOf(alts)
	if !ok {
		return Descriptor{}, false
	}

	variants := make([]Variant, 0, len(alts))
	for _, alt := range alts {
		v := Variant{Name: constValue(alt.Properties[disc])}
		if alt.HasRef() {
			v.Ref = resolver.TargetID(doc.Path, alt.Ref)
		} else {
			v.Fields = fieldsOf(doc, alt, disc)
		}
		variants = append(variants, v)
	}
	return Descriptor{
		SchemaID:      doc.ID,
		Kind:          KindTaggedVariants,
		Discriminator: disc,
		Variants:      variants,
	}, true
}

// discriminatorOf finds the property whose constant value selects among the
// alternatives. The property must be constant-valued in every alternative
// and its values must be pairwise distinct; among several such properties
// the lexicographically first wins.
func discriminatorOf(alts []*loader.RawSchema) (string, bool) {
	counts := make(map[string]int)
	for _, alt := range alts {
		for name, prop := range alt.Properties {
			if constValue(prop) != "" {
				counts[name]++
			}
		}
	}

	var candidates []string
	for name, n := range counts {
		if n == len(alts) {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	for _, name := range candidates {
		if distinctTagValues(alts, name) {
			return name, true
		}
	}
	return "", false
}

// constValue returns the constant a property is pinned to, via const or a
// one-element enum, stringified. "" means the property is not constant.
func constValue(prop *loader.RawSchema) string {
	if prop == nil {
		return ""
	}
	if prop.Const != nil {
		return fmt.Sprintf("%v", prop.Const)
	}
	if len(prop.Enum) == 1 {
		return fmt.Sprintf("%v", prop.Enum[0])
	}
	return ""
}

// distinctTagValues reports whether the named property takes a different
// constant in every alternative.
func distinctTagValues(alts []*loader.RawSchema, name string) bool {
	seen := make(map[string]struct{}, len(alts))
	for _, alt := range alts {
		v := constValue(alt.Properties[name])
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// detectUntagged matches a set of alternatives with no discriminator that
// are still pairwise distinguishable by structure alone.
func detectUntagged(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	alts := alternatives(root)
	if alts == nil || !mutuallyExclusive(alts) {
		return Descriptor{}, false
	}

	list := make([]Alternative, 0, len(alts))
	for _, alt := range alts {
		a := Alternative{}
		if alt.HasRef() {
			a.Ref = resolver.TargetID(doc.Path, alt.Ref)
		} else {
			a.Type = alt.PrimaryType()
			if len(alt.Required) > 0 {
				a.Required = append([]string(nil), alt.Required...)
				sort.Strings(a.Required)
			}
			for name := range alt.Properties {
				a.Properties = append(a.Properties, name)
			}
			sort.Strings(a.Properties)
		}
		list = append(list, a)
	}
	return Descriptor{
		SchemaID:     doc.ID,
		Kind:         KindUntaggedUnion,
		Alternatives: list,
	}, true
}

// mutuallyExclusive reports whether every pair of alternatives can be told
// apart by structure: distinct referenced types, distinct declared types, or
// object shapes whose required-field sets are not nested one in the other.
func mutuallyExclusive(alts []*loader.RawSchema) bool {
	for i := 0; i < len(alts); i++ {
		for j := i + 1; j < len(alts); j++ {
			if !exclusivePair(alts[i], alts[j]) {
				return false
			}
		}
	}
	return true
}

func exclusivePair(a, b *loader.RawSchema) bool {
	if a.HasRef() || b.HasRef() {
		return !(a.HasRef() && b.HasRef() && a.Ref == b.Ref)
	}
	at, bt := effectiveType(a), effectiveType(b)
	if at != bt {
		return at != "" && bt != ""
	}
	if at == "object" {
		return !subsetOf(a.Required, b.Required) && !subsetOf(b.Required, a.Required)
	}
	return false
}

// effectiveType is the declared type, or the type implied by the keywords
// present when none is declared. "" means undecidable.
func effectiveType(s *loader.RawSchema) string {
	if t := s.PrimaryType(); t != "" {
		return t
	}
	if len(s.Properties) > 0 || len(s.Required) > 0 {
		return "object"
	}
	if s.ItemsSchema() != nil {
		return "array"
	}
	return ""
}

// subsetOf reports whether every name in a also appears in b.
func subsetOf(a, b []string) bool {
	if len(a) > len(b) {
		return false
	}
	in := make(map[string]struct{}, len(b))
	for _, name := range b {
		in[name] = struct{}{}
	}
	for _, name := range a {
		if _, ok := in[name]; !ok {
			return false
		}
	}
	return true
}

// detectFixed matches an object with a fixed, named property set.
func detectFixed(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	if len(root.Properties) == 0 {
		return Descriptor{}, false
	}
	return Descriptor{
		SchemaID: doc.ID,
		Kind:     KindFixedFields,
		Fields:   fieldsOf(doc, root, ""),
	}, true
}

// fieldsOf lists a schema's properties as fields, sorted by name, the skip
// property excluded. A property that is a reference carries the target
// SchemaID; an array of references carries the element target; anything else
// carries its declared type.
func fieldsOf(doc *loader.Document, s *loader.RawSchema, skip string) []Field {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop := s.Properties[name]
		f := Field{Name: name, Required: s.IsRequired(name)}
		switch {
		case prop == nil:
		case prop.HasRef():
			f.Ref = resolver.TargetID(doc.Path, prop.Ref)
		case prop.ItemsSchema() != nil && prop.ItemsSchema().HasRef():
			f.Type = "array"
			f.Ref = resolver.TargetID(doc.Path, prop.ItemsSchema().Ref)
		default:
			f.Type = prop.PrimaryType()
		}
		fields = append(fields, f)
	}
	return fields
}

// detectWrapper matches the newtype pattern: a scalar (or a reference)
// carrying a validation constraint. A bare scalar with no constraint still
// matches; a bare reference does not, it is an alias.
func detectWrapper(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	constraint := constraintSummary(root)
	if root.HasRef() {
		if constraint == "" {
			return Descriptor{}, false
		}
		return Descriptor{
			SchemaID:   doc.ID,
			Kind:       KindSingleValueWrapper,
			Wrapped:    resolver.TargetID(doc.Path, root.Ref),
			Constraint: constraint,
			EnumValues: enumValues(root),
		}, true
	}

	switch root.PrimaryType() {
	case "string", "integer", "number", "boolean":
	default:
		if len(root.Enum) == 0 {
			return Descriptor{}, false
		}
	}
	return Descriptor{
		SchemaID:   doc.ID,
		Kind:       KindSingleValueWrapper,
		ScalarType: root.PrimaryType(),
		Constraint: constraint,
		EnumValues: enumValues(root),
	}, true
}

// constraintSummary names the strongest validation constraint a schema
// declares, "" when unconstrained.
func constraintSummary(s *loader.RawSchema) string {
	switch {
	case len(s.Enum) > 0:
		return "enum"
	case s.Const != nil:
		return "const"
	case s.Pattern != "":
		return "pattern"
	case s.Format != "":
		return "format:" + s.Format
	case s.Minimum != nil || s.Maximum != nil || s.ExclusiveMinimum != nil || s.ExclusiveMaximum != nil || s.MultipleOf != nil:
		return "range"
	case s.MinLength != nil || s.MaxLength != nil:
		return "length"
	}
	return ""
}

// enumValues stringifies a schema's enum constants in authored order.
func enumValues(s *loader.RawSchema) []string {
	if len(s.Enum) == 0 {
		return nil
	}
	values := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		values = append(values, fmt.Sprintf("%v", v))
	}
	return values
}

// detectCollection matches a list of one element type: an items schema, or a
// declared array with unconstrained elements.
func detectCollection(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	item := root.ItemsSchema()
	if item == nil && root.PrimaryType() != "array" {
		return Descriptor{}, false
	}
	desc := Descriptor{
		SchemaID: doc.ID,
		Kind:     KindHomogeneousCollection,
		Ordered:  !root.UniqueItems,
	}
	switch {
	case item == nil:
	case item.HasRef():
		desc.Element = resolver.TargetID(doc.Path, item.Ref)
	default:
		desc.ElementType = item.PrimaryType()
	}
	return desc, true
}

// detectKeyedMap matches a string-keyed map of one value type: an
// additionalProperties schema with no fixed properties beside it.
func detectKeyedMap(doc *loader.Document, root *loader.RawSchema) (Descriptor, bool) {
	value := root.AdditionalPropertiesSchema()
	if value == nil || len(root.Properties) > 0 {
		return Descriptor{}, false
	}
	desc := Descriptor{SchemaID: doc.ID, Kind: KindKeyedMap}
	if value.HasRef() {
		desc.Value = resolver.TargetID(doc.Path, value.Ref)
	} else {
		desc.ValueType = value.PrimaryType()
	}
	return desc, true
}
