package classifier

import (
	"github.com/erraggy/schemagraph/sgerrors"
)

// TypeKind is the target-language type family a schema maps onto.
type TypeKind int

const (
	// KindStruct is a record with named fields.
	KindStruct TypeKind = iota
	// KindEnum is a closed set of scalar constants.
	KindEnum
	// KindDiscriminatedUnion is a tagged choice of named payload types.
	KindDiscriminatedUnion
	// KindNewType is a distinct type wrapping one inner value.
	KindNewType
	// KindCollection is a list or set of one element type.
	KindCollection
	// KindMap is a string-keyed map of one value type.
	KindMap
	// KindAlias is a transparent name for another type, or for a generic
	// value when the schema was not recognized.
	KindAlias
)

// String returns the snake_case label for the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindDiscriminatedUnion:
		return "discriminated_union"
	case KindNewType:
		return "newtype"
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// EmitStrategy tells the emission backend how a classification must be
// declared.
type EmitStrategy int

const (
	// EmitEager declares the type directly, embedding references by value.
	EmitEager EmitStrategy = iota
	// EmitDeferred declares the type with its severed reference behind an
	// indirection marker, because that reference was the group's
	// cycle-break point and no single field could absorb the break.
	EmitDeferred
	// EmitAliasOnly declares nothing but a name for another type.
	EmitAliasOnly
)

// String returns the snake_case label for the emission strategy.
func (e EmitStrategy) String() string {
	switch e {
	case EmitEager:
		return "eager"
	case EmitDeferred:
		return "deferred"
	case EmitAliasOnly:
		return "alias_only"
	default:
		return "unknown"
	}
}

// State is a node's position in the classification sequence. Every node
// moves through the states strictly in order; advance rejects anything
// else.
type State int

const (
	// StateUnclassified is the initial state.
	StateUnclassified State = iota
	// StateShapeResolved means the node's structural shape was looked up.
	StateShapeResolved
	// StateCycleChecked means the node's group and break edge were
	// consulted.
	StateCycleChecked
	// StateClassified is the final state: kind, fields, and strategy are
	// decided.
	StateClassified
)

// String returns the snake_case label for the state.
func (s State) String() string {
	switch s {
	case StateUnclassified:
		return "unclassified"
	case StateShapeResolved:
		return "shape_resolved"
	case StateCycleChecked:
		return "cycle_checked"
	case StateClassified:
		return "classified"
	default:
		return "unknown"
	}
}

// FieldType names the type carried by a field, element, map value, or
// variant payload: a referenced schema, an inline scalar, or a list of the
// referenced type when Scalar is "array" and Ref is set. The zero value is
// an opaque, unconstrained value.
type FieldType struct {
	// Ref is the SchemaID of the named type, "" for inline scalars.
	Ref string
	// Scalar is the declared JSON type when no reference names the type.
	Scalar string
}

// IsRef reports whether the type names another schema.
func (ft FieldType) IsRef() bool {
	return ft.Ref != ""
}

// Opaque reports whether nothing constrains the type.
func (ft FieldType) Opaque() bool {
	return ft.Ref == "" && ft.Scalar == ""
}

// String renders the type for diagnostics and listings.
func (ft FieldType) String() string {
	switch {
	case ft.Scalar == "array" && ft.Ref != "":
		return "[]" + ft.Ref
	case ft.Ref != "":
		return ft.Ref
	case ft.Scalar != "":
		return ft.Scalar
	}
	return "any"
}

// FieldDef is one named field of a struct classification.
type FieldDef struct {
	// Name is the authored property name.
	Name string
	// Type is the field's type.
	Type FieldType
	// Required reports whether the field is mandatory.
	Required bool
	// Indirected marks the field chosen as its group's cycle-break point.
	// The emitted field must defer its reference behind a heap indirection
	// or optionality marker instead of embedding it by value, so mutually
	// recursive declarations stay finite in value-semantics targets.
	Indirected bool
}

// UnionVariant is one alternative of a discriminated union.
type UnionVariant struct {
	// Name is the discriminator value selecting this variant.
	Name string
	// Payload is the variant's payload type. The zero value means the
	// variant carries nothing beyond its tag.
	Payload FieldType
}

// HasPayload reports whether the variant carries a payload.
func (v UnionVariant) HasPayload() bool {
	return v.Payload != (FieldType{})
}

// EnumVariant is one permitted constant of an enum classification.
type EnumVariant struct {
	// Value is the constant, stringified.
	Value string
}

// Classification is the final per-node output: the target type family plus
// the payload that family needs. Kind selects which fields are meaningful;
// the rest stay zero.
type Classification struct {
	// ID identifies the classified schema. Synthetic helpers carry a
	// derived ID of the form "parent::Variant".
	ID string
	// Kind is the target type family.
	Kind TypeKind
	// State is the node's position in the classification sequence;
	// StateClassified for every classification a run returns.
	State State
	// Emit is the declaration strategy the emission backend must use.
	Emit EmitStrategy

	// Fields, for structs: the named fields, sorted by name.
	Fields []FieldDef
	// Discriminator, for discriminated unions: the property whose value
	// selects the variant.
	Discriminator string
	// DiscriminatorSynthesized is true when the union was untagged in the
	// source and the discriminator exists only in the emitted model.
	DiscriminatorSynthesized bool
	// Variants, for discriminated unions, in authored order.
	Variants []UnionVariant
	// Enum, for enums: the permitted constants, in authored order.
	Enum []EnumVariant
	// Wrapped, for newtypes and enums: the inner type.
	Wrapped FieldType
	// Element, for collections: the element type.
	Element FieldType
	// Ordered, for collections: true for lists, false for sets.
	Ordered bool
	// Value, for maps: the value type.
	Value FieldType
	// AliasOf, for aliases: the target SchemaID, "" when the alias stands
	// for a generic value.
	AliasOf string

	// Synthetic is true for helper classifications introduced during
	// classification rather than read from a schema.
	Synthetic bool
	// Parent, for synthetic helpers: the ID of the classification that
	// introduced this one.
	Parent string
	// Synthetics lists the helper classifications this one introduced.
	// Each also appears in the run's output and passes through name
	// resolution like any other classification.
	Synthetics []*Classification
}

// advance moves the node to the next state. Any skipped or repeated
// transition is rejected.
func (cl *Classification) advance(to State) error {
	if to != cl.State+1 {
		return &sgerrors.StateError{
			SchemaID: cl.ID,
			From:     cl.State.String(),
			To:       to.String(),
		}
	}
	cl.State = to
	return nil
}

// indirectionLocalized reports whether the group's break edge was absorbed
// by a field marker, either on this classification or on one of its
// synthetic helpers.
func (cl *Classification) indirectionLocalized() bool {
	for _, f := range cl.Fields {
		if f.Indirected {
			return true
		}
	}
	for _, syn := range cl.Synthetics {
		for _, f := range syn.Fields {
			if f.Indirected {
				return true
			}
		}
	}
	return false
}
