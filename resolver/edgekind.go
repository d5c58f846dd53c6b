package resolver

// EdgeKind classifies the relationship an edge represents. The set is closed
// and splits into two families: ownership kinds describe type containment and
// feed cycle analysis, infrastructure kinds describe deployment and data-flow
// relationships and never participate in cycle-breaking.
type EdgeKind int

const (
	// KindDirectRef is a bare cross-document "$ref".
	KindDirectRef EdgeKind = iota

	// KindLocalRef is a same-document reference through "#/$defs/..." or
	// "#/definitions/...". It is a weak back-reference from a file to one of
	// its own promoted definitions: neither ownership nor infrastructure.
	KindLocalRef

	// KindExtends marks membership in an "allOf" composition.
	KindExtends

	// KindVariant marks membership in a "oneOf" or "anyOf" union.
	KindVariant

	// KindItemType is the element type of an array schema.
	KindItemType

	// KindValueType is the value type of a map-like object schema, declared
	// through a schema-valued "additionalProperties".
	KindValueType

	// KindFieldType is the declared type of a named property.
	KindFieldType

	// KindRunsOn links a node to the service that hosts it.
	KindRunsOn

	// KindUsesQueue links a node to a queue it consumes from or produces to.
	KindUsesQueue

	// KindRequires links a component to a dependency it needs at runtime.
	KindRequires

	// KindReads links a system to state it reads.
	KindReads

	// KindWrites links a system to state it writes.
	KindWrites

	// KindConnectsTo links a service to an external resource.
	KindConnectsTo

	// KindInput is the message type a system accepts.
	KindInput

	// KindOutput is the message type a system emits.
	KindOutput
)

// String returns the short label used in diagnostics and DOT output.
func (k EdgeKind) String() string {
	switch k {
	case KindDirectRef:
		return "ref"
	case KindLocalRef:
		return "local"
	case KindExtends:
		return "extends"
	case KindVariant:
		return "variant"
	case KindItemType:
		return "item"
	case KindValueType:
		return "value"
	case KindFieldType:
		return "field"
	case KindRunsOn:
		return "runs_on"
	case KindUsesQueue:
		return "uses_queue"
	case KindRequires:
		return "requires"
	case KindReads:
		return "reads"
	case KindWrites:
		return "writes"
	case KindConnectsTo:
		return "connects_to"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// EdgeKinds returns every defined kind in declaration order.
func EdgeKinds() []EdgeKind {
	kinds := make([]EdgeKind, 0, int(KindOutput)+1)
	for k := KindDirectRef; k <= KindOutput; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseEdgeKind maps a short label back to its EdgeKind.
func ParseEdgeKind(label string) (EdgeKind, bool) {
	for k := KindDirectRef; k <= KindOutput; k++ {
		if k.String() == label {
			return k, true
		}
	}
	return 0, false
}

// Color returns the hex color used when rendering the edge in DOT output.
func (k EdgeKind) Color() string {
	switch k {
	case KindDirectRef:
		return "#666666"
	case KindLocalRef:
		return "#AAAAAA"
	case KindExtends:
		return "#4CAF50"
	case KindVariant:
		return "#FF9800"
	case KindItemType:
		return "#9C27B0"
	case KindValueType:
		return "#E91E63"
	case KindFieldType:
		return "#9E9E9E"
	case KindRunsOn:
		return "#2196F3"
	case KindUsesQueue:
		return "#673AB7"
	case KindRequires:
		return "#FF5722"
	case KindReads:
		return "#00BCD4"
	case KindWrites:
		return "#F44336"
	case KindConnectsTo:
		return "#03A9F4"
	case KindInput:
		return "#8BC34A"
	case KindOutput:
		return "#FF5722"
	default:
		return "#000000"
	}
}

// IsOwnership reports whether the edge represents type containment. Only
// ownership edges participate in cycle detection and break-edge selection.
func (k EdgeKind) IsOwnership() bool {
	switch k {
	case KindDirectRef, KindExtends, KindVariant, KindItemType, KindValueType, KindFieldType:
		return true
	default:
		return false
	}
}

// IsInfrastructure reports whether the edge represents a deployment,
// messaging, or data-flow relationship rather than a type relationship.
func (k EdgeKind) IsInfrastructure() bool {
	switch k {
	case KindRunsOn, KindUsesQueue, KindRequires, KindReads, KindWrites, KindConnectsTo, KindInput, KindOutput:
		return true
	default:
		return false
	}
}
