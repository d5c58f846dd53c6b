package graph

import (
	"strings"

	"github.com/erraggy/schemagraph/loader"
)

// Node is a single schema in the dependency graph: either a root document or
// a promoted local definition.
type Node struct {
	// ID is the schema identifier: the corpus-relative path for root
	// documents, "path#Name" for promoted definitions.
	ID string
	// Path is the source file containing this schema (same as ID for roots).
	Path string
	// Definition is the local definition name, empty for root documents.
	Definition string
	// Kind is the x-familiar-kind of the schema. Promoted definitions
	// without an explicit kind are labeled "definition".
	Kind string
	// Title is the schema's title, if any.
	Title string
	// Doc is the loaded document backing this node.
	Doc *loader.Document
}

// IsDefinition reports whether the node is a promoted local definition.
func (n *Node) IsDefinition() bool {
	return n.Definition != ""
}

// DisplayName returns the short name of the node: the definition name, the
// title, or the file stem, in that order of preference.
func (n *Node) DisplayName() string {
	if n.Definition != "" {
		return n.Definition
	}
	if n.Title != "" {
		return n.Title
	}
	base := n.Path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	for _, ext := range []string{".json", ".yaml", ".yml", ".schema"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Label returns the text used for the node in DOT output: the title when
// present, otherwise the full ID.
func (n *Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}
