package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/shapes"
)

// defaultDiscriminatorField is the property name synthesized for untagged
// unions.
const defaultDiscriminatorField = "kind"

// Classifier maps each schema's shape, cycle decision, and graph context
// onto a final Classification.
//
// Classification consumes the outputs of the earlier stages and never
// re-reads raw documents: shapes say what a schema is, cycle analysis says
// which reference must be deferred, and the group order fixes the order of
// the output.
type Classifier struct {
	// DiscriminatorField is the property name synthesized when an untagged
	// union needs a discriminator. When an alternative already carries the
	// name, "union_" is prefixed.
	// Default: "kind"
	DiscriminatorField string
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Classifier instance with default settings
func New() *Classifier {
	return &Classifier{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (c *Classifier) log() loader.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return loader.NopLogger{}
}

func (c *Classifier) discriminatorField() string {
	if c.DiscriminatorField != "" {
		return c.DiscriminatorField
	}
	return defaultDiscriminatorField
}

// Result holds every classification produced from one graph.
type Result struct {
	// Classifications lists one entry per schema in emission order: groups
	// in condensation order, members sorted within a group, synthetic
	// helpers directly after the classification that introduced them.
	Classifications []*Classification
	// SyntheticCount is the number of helper classifications introduced.
	SyntheticCount int
	// ClassifyTime is the time taken to classify every node.
	ClassifyTime time.Duration

	byID map[string]*Classification
}

// Classification returns the classification with the given ID.
func (res *Result) Classification(id string) (*Classification, bool) {
	cl, ok := res.byID[id]
	return cl, ok
}

// ByKind returns the classifications of the given kind, in emission order.
func (res *Result) ByKind(kind TypeKind) []*Classification {
	var out []*Classification
	for _, cl := range res.Classifications {
		if cl.Kind == kind {
			out = append(out, cl)
		}
	}
	return out
}

// KindCounts returns the number of classifications of each kind present.
func (res *Result) KindCounts() map[TypeKind]int {
	counts := make(map[TypeKind]int)
	for _, cl := range res.Classifications {
		counts[cl.Kind]++
	}
	return counts
}

// Classify maps every schema onto a classification using a Classifier
// configured by the given options.
func Classify(g *graph.SchemaGraph, det *shapes.Detection, an *cycles.Analysis, opts ...Option) (*Result, error) {
	c := New()
	if err := applyOptions(c, opts); err != nil {
		return nil, err
	}
	return c.Classify(g, det, an)
}

// Classify maps every schema in the analyzed graph onto a classification.
//
// Each node moves through the classification states in order: its shape is
// looked up, its group's break edge is consulted, and the shape is mapped
// onto a type kind. A field-type break edge marks the matching field
// indirected; a break no field can absorb defers the whole classification.
// Unrecognized shapes classify as aliases so emission can still cover the
// rest of the corpus.
func (c *Classifier) Classify(g *graph.SchemaGraph, det *shapes.Detection, an *cycles.Analysis) (*Result, error) {
	start := time.Now()
	res := &Result{byID: make(map[string]*Classification)}
	if g == nil || an == nil {
		res.ClassifyTime = time.Since(start)
		return res, nil
	}

	for _, group := range an.Groups {
		for _, id := range group.Members {
			cl, err := c.classifyNode(det, group, id)
			if err != nil {
				return nil, err
			}
			res.byID[cl.ID] = cl
			res.Classifications = append(res.Classifications, cl)
			for _, syn := range cl.Synthetics {
				res.byID[syn.ID] = syn
				res.Classifications = append(res.Classifications, syn)
				res.SyntheticCount++
			}
		}
	}

	res.ClassifyTime = time.Since(start)
	c.log().Info("schemas classified",
		"classifications", len(res.Classifications),
		"synthetic", res.SyntheticCount,
	)
	return res, nil
}

// classifyNode runs one node through the state sequence.
func (c *Classifier) classifyNode(det *shapes.Detection, group cycles.SccGroup, id string) (*Classification, error) {
	cl := &Classification{ID: id}

	desc := shapeOf(det, id)
	if err := cl.advance(StateShapeResolved); err != nil {
		return nil, err
	}

	breakEdge := breakEdgeFrom(group, id)
	if err := cl.advance(StateCycleChecked); err != nil {
		return nil, err
	}

	c.build(cl, desc, breakEdge)
	if cl.Kind != KindAlias && breakEdge != nil && !cl.indirectionLocalized() {
		cl.Emit = EmitDeferred
	}
	if err := cl.advance(StateClassified); err != nil {
		return nil, err
	}

	c.log().Debug("schema classified",
		"schema", id,
		"kind", cl.Kind.String(),
		"emit", cl.Emit.String(),
	)
	return cl, nil
}

// shapeOf looks up a node's descriptor, degrading to unrecognized when
// detection has nothing for it.
func shapeOf(det *shapes.Detection, id string) shapes.Descriptor {
	if det != nil {
		if desc, ok := det.Shape(id); ok {
			return desc
		}
	}
	return shapes.Descriptor{SchemaID: id, Kind: shapes.KindUnrecognized}
}

// breakEdgeFrom returns the group's break edge when it originates at the
// given node, nil otherwise.
func breakEdgeFrom(group cycles.SccGroup, id string) *cycles.Edge {
	e := group.Handling.Edge
	if e == nil || e.From != id {
		return nil
	}
	return e
}

// build maps a shape onto the classification's kind and payload.
func (c *Classifier) build(cl *Classification, desc shapes.Descriptor, breakEdge *cycles.Edge) {
	switch desc.Kind {
	case shapes.KindFixedFields:
		cl.Kind = KindStruct
		cl.Fields = fieldDefs(desc.Fields, breakEdge)

	case shapes.KindTaggedVariants:
		cl.Kind = KindDiscriminatedUnion
		cl.Discriminator = desc.Discriminator
		c.buildVariants(cl, desc, breakEdge)

	case shapes.KindUntaggedUnion:
		cl.Kind = KindDiscriminatedUnion
		cl.Discriminator = c.synthesizeDiscriminator(desc)
		cl.DiscriminatorSynthesized = true
		buildAlternatives(cl, desc)

	case shapes.KindSingleValueWrapper:
		cl.Wrapped = FieldType{Ref: desc.Wrapped, Scalar: desc.ScalarType}
		if desc.Constraint == "enum" {
			cl.Kind = KindEnum
			for _, v := range desc.EnumValues {
				cl.Enum = append(cl.Enum, EnumVariant{Value: v})
			}
		} else {
			cl.Kind = KindNewType
		}

	case shapes.KindHomogeneousCollection:
		cl.Kind = KindCollection
		cl.Element = FieldType{Ref: desc.Element, Scalar: desc.ElementType}
		cl.Ordered = desc.Ordered

	case shapes.KindKeyedMap:
		cl.Kind = KindMap
		cl.Value = FieldType{Ref: desc.Value, Scalar: desc.ValueType}

	default:
		cl.Kind = KindAlias
		cl.AliasOf = desc.AliasOf
		cl.Emit = EmitAliasOnly
	}
}

// fieldDefs converts shape fields, marking the one the break edge severed.
func fieldDefs(fields []shapes.Field, breakEdge *cycles.Edge) []FieldDef {
	defs := make([]FieldDef, 0, len(fields))
	for _, f := range fields {
		def := FieldDef{
			Name:     f.Name,
			Type:     FieldType{Ref: f.Ref, Scalar: f.Type},
			Required: f.Required,
		}
		if breakEdge != nil && breakEdge.Kind == resolver.KindFieldType && breakEdge.Field == f.Name {
			def.Indirected = true
		}
		defs = append(defs, def)
	}
	return defs
}

// buildVariants converts tagged variants. A variant with one inline field
// uses that field's type as its payload; a variant with more spawns a
// synthetic helper struct so the union stays an enum of named payload
// types.
func (c *Classifier) buildVariants(cl *Classification, desc shapes.Descriptor, breakEdge *cycles.Edge) {
	for _, v := range desc.Variants {
		uv := UnionVariant{Name: v.Name}
		switch {
		case v.Ref != "":
			uv.Payload = FieldType{Ref: v.Ref}
		case len(v.Fields) == 1:
			f := v.Fields[0]
			uv.Payload = FieldType{Ref: f.Ref, Scalar: f.Type}
		case len(v.Fields) > 1:
			syn := &Classification{
				ID:        cl.ID + "::" + v.Name,
				Kind:      KindStruct,
				State:     StateClassified,
				Fields:    fieldDefs(v.Fields, breakEdge),
				Synthetic: true,
				Parent:    cl.ID,
			}
			cl.Synthetics = append(cl.Synthetics, syn)
			uv.Payload = FieldType{Ref: syn.ID}
			c.log().Debug("synthetic helper introduced",
				"schema", cl.ID,
				"helper", syn.ID,
				"fields", len(syn.Fields),
			)
		}
		cl.Variants = append(cl.Variants, uv)
	}
}

// buildAlternatives converts untagged alternatives into named variants.
// Names derive from the referenced schema's stem or the declared type,
// deduplicated with an ordinal when two alternatives would share one.
func buildAlternatives(cl *Classification, desc shapes.Descriptor) {
	used := make(map[string]int)
	for _, alt := range desc.Alternatives {
		name := alternativeName(alt)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s%d", name, n)
		}

		uv := UnionVariant{Name: name}
		switch {
		case alt.Ref != "":
			uv.Payload = FieldType{Ref: alt.Ref}
		case alt.Type != "":
			uv.Payload = FieldType{Scalar: alt.Type}
		}
		cl.Variants = append(cl.Variants, uv)
	}
}

// alternativeName derives a variant name for one untagged alternative: the
// referenced schema's definition name or file stem, the declared type, or
// "value" when nothing else is known.
func alternativeName(alt shapes.Alternative) string {
	if alt.Ref != "" {
		name := alt.Ref
		if i := strings.LastIndexByte(name, '#'); i >= 0 {
			return name[i+1:]
		}
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		for _, ext := range []string{".json", ".yaml", ".yml", ".schema"} {
			name = strings.TrimSuffix(name, ext)
		}
		return name
	}
	if alt.Type != "" {
		return alt.Type
	}
	return "value"
}

// synthesizeDiscriminator picks the discriminator property for an untagged
// union: the configured name, prefixed with "union_" when any alternative
// already carries a property of that name.
func (c *Classifier) synthesizeDiscriminator(desc shapes.Descriptor) string {
	name := c.discriminatorField()
	for _, alt := range desc.Alternatives {
		for _, p := range alt.Properties {
			if p == name {
				return "union_" + name
			}
		}
	}
	return name
}
