package shapes

// Kind identifies the structural pattern of a schema, the closed set of
// shapes the detector can produce.
type Kind int

const (
	// KindUnrecognized marks a document matching no structural pattern. The
	// document still classifies, as an opaque alias.
	KindUnrecognized Kind = iota
	// KindFixedFields marks an object with a fixed, named property set.
	KindFixedFields
	// KindTaggedVariants marks a set of alternatives selected by a shared
	// constant-valued discriminator property.
	KindTaggedVariants
	// KindUntaggedUnion marks a list of alternatives with no discriminator,
	// mutually exclusive by structural shape.
	KindUntaggedUnion
	// KindSingleValueWrapper marks a scalar carrying validation constraints,
	// the newtype pattern.
	KindSingleValueWrapper
	// KindHomogeneousCollection marks a list of one element type.
	KindHomogeneousCollection
	// KindKeyedMap marks a string-keyed map of one value type.
	KindKeyedMap
)

// String returns the snake_case label for the shape kind.
func (k Kind) String() string {
	switch k {
	case KindUnrecognized:
		return "unrecognized"
	case KindFixedFields:
		return "fixed_fields"
	case KindTaggedVariants:
		return "tagged_variants"
	case KindUntaggedUnion:
		return "untagged_union"
	case KindSingleValueWrapper:
		return "single_value_wrapper"
	case KindHomogeneousCollection:
		return "homogeneous_collection"
	case KindKeyedMap:
		return "keyed_map"
	default:
		return "unknown"
	}
}

// Field is one named property of a fixed-fields shape or an inline variant
// payload.
type Field struct {
	// Name is the property name.
	Name string
	// Ref is the SchemaID of the referenced type the field contains; for
	// array-typed fields, the element type. Empty for inline scalars and
	// opaque inline objects.
	Ref string
	// Type is the declared JSON type for fields without a usable reference
	// ("string", "integer", "array", "object", ...).
	Type string
	// Required reports whether the property appears in the schema's
	// required list.
	Required bool
}

// Variant is one alternative of a tagged-variants shape.
type Variant struct {
	// Name is the discriminator constant selecting this variant.
	Name string
	// Ref is the SchemaID of the payload type, "" when the payload is
	// declared inline.
	Ref string
	// Fields are the inline payload's properties, the discriminator
	// excluded. Empty when Ref is set or the variant carries no payload.
	Fields []Field
}

// Alternative is one member of an untagged union.
type Alternative struct {
	// Ref is the SchemaID of the alternative's type, "" when inline.
	Ref string
	// Type is the declared JSON type for inline alternatives.
	Type string
	// Required lists an inline object alternative's required properties,
	// the evidence that the union is decidable.
	Required []string
	// Properties lists an inline object alternative's property names,
	// sorted. Discriminator synthesis consults this to avoid colliding
	// with an existing property.
	Properties []string
}

// Descriptor is the normalized structural classification of one schema,
// independent of any target language. Kind selects which payload fields are
// meaningful; the rest stay zero.
//
// Field and alternative orderings are deterministic: properties sort by
// name, alternatives keep their authored order.
type Descriptor struct {
	// SchemaID identifies the described schema.
	SchemaID string
	// Kind is the structural pattern the document matched.
	Kind Kind

	// Fields, for fixed-fields shapes: the named properties sorted by name.
	Fields []Field
	// Discriminator, for tagged-variants shapes: the property whose
	// constant value selects the variant.
	Discriminator string
	// Variants, for tagged-variants shapes, in authored order.
	Variants []Variant
	// Alternatives, for untagged unions, in authored order.
	Alternatives []Alternative
	// Wrapped, for single-value wrappers: the SchemaID of the inner type,
	// "" when the wrapped value is an inline scalar.
	Wrapped string
	// Constraint, for single-value wrappers: a short summary of the
	// validation constraint motivating the wrapper ("enum", "pattern",
	// "format:uuid", "range", "length"), "" for a bare newtype.
	Constraint string
	// EnumValues, for single-value wrappers constrained by an enum: the
	// permitted constants, stringified, in authored order.
	EnumValues []string
	// Element, for homogeneous collections: the element SchemaID, "" for an
	// inline element.
	Element string
	// ElementType, for homogeneous collections: the declared JSON type of
	// an inline element.
	ElementType string
	// Ordered, for homogeneous collections: true for lists, false when
	// uniqueItems makes the collection a set.
	Ordered bool
	// Value, for keyed maps: the value SchemaID, "" for an inline value.
	Value string
	// ValueType, for keyed maps: the declared JSON type of an inline value.
	ValueType string
	// AliasOf, for unrecognized shapes that are pure references: the target
	// the document aliases.
	AliasOf string
	// ScalarType, for single-value wrappers of inline scalars: the declared
	// JSON type ("string", "integer", "number", "boolean").
	ScalarType string
}
