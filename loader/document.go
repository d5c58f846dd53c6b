package loader

import (
	"strings"

	json "github.com/goccy/go-json"
)

// RawSchema represents a single schema document or definition as authored.
// Supports JSON Schema draft-07 through Draft 2020-12 in YAML and JSON.
//
// Unknown fields (including x-* extensions) are preserved in Extra so that
// downstream analysis can inspect vendor extensions without re-reading the
// source bytes.
type RawSchema struct {
	// JSON Schema Core
	Ref    string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Schema string `yaml:"$schema,omitempty" json:"$schema,omitempty"` // JSON Schema Draft version

	// Identity
	ID            string          `yaml:"$id,omitempty" json:"$id,omitempty"`
	Anchor        string          `yaml:"$anchor,omitempty" json:"$anchor,omitempty"`
	DynamicRef    string          `yaml:"$dynamicRef,omitempty" json:"$dynamicRef,omitempty"`
	DynamicAnchor string          `yaml:"$dynamicAnchor,omitempty" json:"$dynamicAnchor,omitempty"`
	Vocabulary    map[string]bool `yaml:"$vocabulary,omitempty" json:"$vocabulary,omitempty"`
	Comment       string          `yaml:"$comment,omitempty" json:"$comment,omitempty"`

	// Metadata
	Title       string        `yaml:"title,omitempty" json:"title,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Default     interface{}   `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []interface{} `yaml:"examples,omitempty" json:"examples,omitempty"`
	Deprecated  bool          `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	ReadOnly    bool          `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly   bool          `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	// Type validation
	Type  interface{}   `yaml:"type,omitempty" json:"type,omitempty"` // string or []string
	Enum  []interface{} `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const interface{}   `yaml:"const,omitempty" json:"const,omitempty"`

	// Numeric validation
	MultipleOf       *float64    `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64    `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum interface{} `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in draft-04, number in draft-06+
	Minimum          *float64    `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum interface{} `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in draft-04, number in draft-06+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`

	// Array validation
	Items           interface{}  `yaml:"items,omitempty" json:"items,omitempty"` // *RawSchema or bool
	PrefixItems     []*RawSchema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"`
	AdditionalItems interface{}  `yaml:"additionalItems,omitempty" json:"additionalItems,omitempty"` // *RawSchema or bool
	MaxItems        *int         `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems        *int         `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems     bool         `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Contains        *RawSchema   `yaml:"contains,omitempty" json:"contains,omitempty"`
	MaxContains     *int         `yaml:"maxContains,omitempty" json:"maxContains,omitempty"`
	MinContains     *int         `yaml:"minContains,omitempty" json:"minContains,omitempty"`

	// Object validation
	Properties           map[string]*RawSchema `yaml:"properties,omitempty" json:"properties,omitempty"`
	PatternProperties    map[string]*RawSchema `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	AdditionalProperties interface{}           `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *RawSchema or bool
	Required             []string              `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames        *RawSchema            `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"`
	MaxProperties        *int                  `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int                  `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`
	DependentRequired    map[string][]string   `yaml:"dependentRequired,omitempty" json:"dependentRequired,omitempty"`
	DependentSchemas     map[string]*RawSchema `yaml:"dependentSchemas,omitempty" json:"dependentSchemas,omitempty"`

	// Conditional schemas
	If   *RawSchema `yaml:"if,omitempty" json:"if,omitempty"`
	Then *RawSchema `yaml:"then,omitempty" json:"then,omitempty"`
	Else *RawSchema `yaml:"else,omitempty" json:"else,omitempty"`

	// Schema composition
	AllOf []*RawSchema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*RawSchema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*RawSchema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *RawSchema   `yaml:"not,omitempty" json:"not,omitempty"`

	// Local definitions
	Defs        map[string]*RawSchema `yaml:"$defs,omitempty" json:"$defs,omitempty"`
	Definitions map[string]*RawSchema `yaml:"definitions,omitempty" json:"definitions,omitempty"` // draft-07 spelling

	// Extension fields
	// Extra captures vendor extensions (fields starting with "x-")
	Extra map[string]interface{} `yaml:",inline" json:"-"`
}

// UnmarshalJSON implements custom JSON unmarshaling for RawSchema.
// This captures unknown fields (vendor extensions like x-*) in the Extra map.
func (s *RawSchema) UnmarshalJSON(data []byte) error {
	type Alias RawSchema
	aux := (*Alias)(s)

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	// Extract vendor extensions (fields starting with "x-")
	extra := make(map[string]any)
	for k, v := range m {
		if len(k) >= 2 && k[0] == 'x' && k[1] == '-' {
			extra[k] = v
		}
	}

	if len(extra) > 0 {
		s.Extra = extra
	}

	return nil
}

// TypeList returns the declared type(s) as a slice, normalizing the
// string-or-array forms that "type" permits. Returns nil when absent.
func (s *RawSchema) TypeList() []string {
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []interface{}:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case []string:
		return t
	default:
		return nil
	}
}

// PrimaryType returns the first declared type that is not "null", or ""
// when no type is declared. A bare "null" type is returned as-is.
func (s *RawSchema) PrimaryType() string {
	types := s.TypeList()
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// Nullable reports whether the declared type list includes "null".
func (s *RawSchema) Nullable() bool {
	for _, t := range s.TypeList() {
		if t == "null" {
			return true
		}
	}
	return false
}

// IsRequired reports whether the named property appears in the required list.
func (s *RawSchema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// HasRef reports whether this schema is a reference node ($ref set).
func (s *RawSchema) HasRef() bool {
	return s.Ref != ""
}

// ItemsSchema returns the items schema for array types, handling the
// *RawSchema, map, and bool forms that Items can take. Returns nil when
// items is absent, boolean, or a draft-07 tuple.
func (s *RawSchema) ItemsSchema() *RawSchema {
	return schemaFromAny(s.Items)
}

// AdditionalPropertiesSchema returns the additionalProperties schema when one
// is declared, or nil when additionalProperties is absent or boolean.
func (s *RawSchema) AdditionalPropertiesSchema() *RawSchema {
	return schemaFromAny(s.AdditionalProperties)
}

// AdditionalPropertiesAllowed reports whether the schema permits properties
// beyond those listed. Absent additionalProperties defaults to permissive.
func (s *RawSchema) AdditionalPropertiesAllowed() bool {
	if b, ok := s.AdditionalProperties.(bool); ok {
		return b
	}
	return true
}

// LocalDefinitions returns the merged $defs and definitions maps. When a name
// appears under both keys, the $defs entry wins. Returns nil when the schema
// declares no local definitions.
func (s *RawSchema) LocalDefinitions() map[string]*RawSchema {
	if len(s.Defs) == 0 && len(s.Definitions) == 0 {
		return nil
	}
	merged := make(map[string]*RawSchema, len(s.Defs)+len(s.Definitions))
	for name, def := range s.Definitions {
		merged[name] = def
	}
	for name, def := range s.Defs {
		merged[name] = def
	}
	return merged
}

// Extension returns the named x-* extension value and whether it was present.
func (s *RawSchema) Extension(key string) (interface{}, bool) {
	if s.Extra == nil {
		return nil, false
	}
	v, ok := s.Extra[key]
	return v, ok
}

// schemaFromAny converts a value that can be either a schema (typed or as a
// decoded map) or a bool into a *RawSchema. Booleans and tuples yield nil.
func schemaFromAny(v interface{}) *RawSchema {
	switch val := v.(type) {
	case *RawSchema:
		return val
	case map[string]interface{}:
		return decodeSchemaMap(val)
	default:
		return nil // bool, nil, tuple, etc.
	}
}

// decodeSchemaMap converts a generically-decoded map into a typed RawSchema.
// Used for the interface{} fields (items, additionalProperties) where the
// YAML/JSON decoder stores a plain map.
func decodeSchemaMap(m map[string]interface{}) *RawSchema {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	s := new(RawSchema)
	if err := json.Unmarshal(data, s); err != nil {
		return nil
	}
	return s
}

// Document is a single loaded schema document or a local definition promoted
// to its own node.
//
// Root documents have ID equal to Path (the corpus-relative file path, always
// forward-slashed). Definition documents carry an ID of the form
// "path#Name" with Definition set to the local name.
type Document struct {
	// ID is the schema identifier: the corpus-relative path for root
	// documents, or "path#Name" for promoted local definitions.
	ID string
	// Path is the corpus-relative file path containing this schema.
	Path string
	// Definition is the local definition name when this document was
	// promoted from $defs or definitions; empty for root documents.
	Definition string
	// Format is the source format the document was decoded from.
	Format SourceFormat
	// Root is the typed view of the schema.
	Root *RawSchema
	// Raw is the generic decoded view, preserving every key including
	// vendor extensions and constructs the typed view does not model.
	Raw map[string]interface{}
	// Sum is the BLAKE3 fingerprint of the source file bytes. Definitions
	// share the fingerprint of their containing file.
	Sum [32]byte
	// Size is the source file size in bytes.
	Size int64
	// Kind is the declared x-familiar-kind, or "" when absent.
	Kind string
	// Title is the schema title, or "" when absent.
	Title string
}

// IsDefinition reports whether this document was promoted from a local
// definition rather than loaded from its own file.
func (d *Document) IsDefinition() bool {
	return d.Definition != ""
}

// DisplayName returns the best human-facing name for the document: the
// definition name for promoted definitions, the title when present, else the
// last path segment without the schema suffix.
func (d *Document) DisplayName() string {
	if d.Definition != "" {
		return d.Definition
	}
	if d.Title != "" {
		return d.Title
	}
	base := d.Path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".json")
	base = strings.TrimSuffix(base, ".yaml")
	base = strings.TrimSuffix(base, ".yml")
	base = strings.TrimSuffix(base, ".schema")
	return base
}
