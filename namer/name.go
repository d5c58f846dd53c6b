package namer

// Origin records how an identifier was derived.
type Origin int

const (
	// OriginDirectFromSchema means the identifier is the natural PascalCase
	// form of the schema's own name.
	OriginDirectFromSchema Origin = iota
	// OriginSyntheticHelper means the identifier belongs to a helper type
	// introduced during classification, composed from the parent identifier
	// and the variant name.
	OriginSyntheticHelper
	// OriginDisambiguated means the natural identifier was contested and
	// the name was qualified with source path segments.
	OriginDisambiguated
)

// String returns the snake_case label for the origin.
func (o Origin) String() string {
	switch o {
	case OriginDirectFromSchema:
		return "direct_from_schema"
	case OriginSyntheticHelper:
		return "synthetic_helper"
	case OriginDisambiguated:
		return "disambiguated"
	default:
		return "unknown"
	}
}

// ResolvedName is the identifier chosen for one classification.
type ResolvedName struct {
	// LogicalID is the classification the name belongs to.
	LogicalID string
	// Identifier is the chosen exported identifier, unique within the table.
	Identifier string
	// Origin records how the identifier was derived.
	Origin Origin
}
