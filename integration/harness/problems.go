//go:build integration

package harness

import (
	"fmt"
	"path"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/erraggy/schemagraph/internal/naming"
)

// Problems defines the issues to inject into a corpus before analysis.
// Injectors operate on the JSON document bytes keyed by schema ID.
type Problems struct {
	// DanglingRefs adds reference properties pointing at missing schemas
	DanglingRefs []DanglingRef `yaml:"dangling-refs,omitempty"`
	// Cycles adds rings of fresh documents referencing each other in order
	Cycles [][]string `yaml:"cycles,omitempty"`
	// StemCollisions adds documents contesting an existing file stem
	StemCollisions []StemCollision `yaml:"stem-collisions,omitempty"`
	// Malformed adds documents with undecodable content
	Malformed []string `yaml:"malformed,omitempty"`
	// Opaque adds documents matching no structural pattern
	Opaque []string `yaml:"opaque,omitempty"`
	// DuplicateContent adds byte-identical copies of existing documents
	DuplicateContent []DuplicateContent `yaml:"duplicate-content,omitempty"`
}

// DanglingRef defines a reference to a schema that does not exist.
type DanglingRef struct {
	// Document is the existing document to modify
	Document string `yaml:"document"`
	// Field is the property name that carries the reference
	Field string `yaml:"field"`
	// Target is the missing schema ID to reference
	Target string `yaml:"target"`
}

// StemCollision defines a document contesting an existing file stem.
type StemCollision struct {
	// Of is the existing document whose stem to contest
	Of string `yaml:"of"`
	// In is the directory the colliding document is created in
	In string `yaml:"in"`
}

// DuplicateContent defines a byte-identical copy of an existing document.
type DuplicateContent struct {
	// Of is the existing document to copy
	Of string `yaml:"of"`
	// As is the schema ID of the copy
	As string `yaml:"as"`
}

// injectsDocuments reports whether any configured problem creates new
// documents, so a scenario can build its whole corpus from problems.
func (p *Problems) injectsDocuments() bool {
	return len(p.Cycles) > 0 || len(p.StemCollisions) > 0 ||
		len(p.Malformed) > 0 || len(p.Opaque) > 0 || len(p.DuplicateContent) > 0
}

// InjectProblems modifies the corpus by injecting the specified problems.
func InjectProblems(docs map[string][]byte, problems *Problems) error {
	if problems == nil {
		return nil
	}

	for _, dr := range problems.DanglingRefs {
		if err := injectDanglingRef(docs, dr); err != nil {
			return fmt.Errorf("inject dangling-refs: %w", err)
		}
	}

	for _, ring := range problems.Cycles {
		if err := injectCycle(docs, ring); err != nil {
			return fmt.Errorf("inject cycles: %w", err)
		}
	}

	for _, sc := range problems.StemCollisions {
		if err := injectStemCollision(docs, sc); err != nil {
			return fmt.Errorf("inject stem-collisions: %w", err)
		}
	}

	for _, id := range problems.Malformed {
		if err := injectMalformed(docs, id); err != nil {
			return fmt.Errorf("inject malformed: %w", err)
		}
	}

	for _, id := range problems.Opaque {
		if err := injectOpaque(docs, id); err != nil {
			return fmt.Errorf("inject opaque: %w", err)
		}
	}

	for _, dup := range problems.DuplicateContent {
		if err := injectDuplicateContent(docs, dup); err != nil {
			return fmt.Errorf("inject duplicate-content: %w", err)
		}
	}

	return nil
}

// injectDanglingRef adds a reference property to an existing document. The
// target must not exist in the corpus, otherwise the reference would
// resolve and nothing would dangle.
func injectDanglingRef(docs map[string][]byte, dr DanglingRef) error {
	data, ok := docs[dr.Document]
	if !ok {
		return fmt.Errorf("document %q not found", dr.Document)
	}
	if _, exists := docs[dr.Target]; exists {
		return fmt.Errorf("target %q exists in the corpus, reference would resolve", dr.Target)
	}

	decoded, err := decodeDoc(dr.Document, data)
	if err != nil {
		return err
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		props = make(map[string]any)
		decoded["properties"] = props
	}
	props[dr.Field] = map[string]any{"$ref": dr.Target}
	return encodeDoc(docs, dr.Document, decoded)
}

// injectCycle creates a ring of documents, each holding an optional "next"
// reference to its successor. A single-element ring yields a self-loop.
func injectCycle(docs map[string][]byte, ring []string) error {
	if len(ring) == 0 {
		return fmt.Errorf("cycle needs at least one member")
	}
	for _, id := range ring {
		if _, exists := docs[id]; exists {
			return fmt.Errorf("cycle member %q already exists", id)
		}
	}

	for i, id := range ring {
		next := ring[(i+1)%len(ring)]
		doc := map[string]any{
			"title": naming.ToPascalCase(stemOf(id)),
			"type":  "object",
			"properties": map[string]any{
				"label": map[string]any{"type": "string"},
				"next":  map[string]any{"$ref": next},
			},
			"required": []string{"label"},
		}
		if err := encodeDoc(docs, id, doc); err != nil {
			return err
		}
	}
	return nil
}

// injectStemCollision creates a fresh document whose file stem matches an
// existing document's, so both contest the same identifier. The content
// differs from the original to keep the duplicate-content check quiet.
func injectStemCollision(docs map[string][]byte, sc StemCollision) error {
	if _, ok := docs[sc.Of]; !ok {
		return fmt.Errorf("document %q not found", sc.Of)
	}
	stem := stemOf(sc.Of)
	id := path.Join(sc.In, stem+".json")
	if _, exists := docs[id]; exists {
		return fmt.Errorf("colliding document %q already exists", id)
	}

	doc := map[string]any{
		"title": naming.ToPascalCase(stem),
		"type":  "object",
		"properties": map[string]any{
			"source": map[string]any{"type": "string"},
		},
	}
	return encodeDoc(docs, id, doc)
}

// injectMalformed adds a document whose bytes cannot be decoded.
func injectMalformed(docs map[string][]byte, id string) error {
	if _, exists := docs[id]; exists {
		return fmt.Errorf("document %q already exists", id)
	}
	docs[id] = []byte("{\n  \"title\": \"Broken\",\n")
	return nil
}

// injectOpaque adds a document that matches no structural pattern: no
// properties, no type, no alternatives, just a description.
func injectOpaque(docs map[string][]byte, id string) error {
	if _, exists := docs[id]; exists {
		return fmt.Errorf("document %q already exists", id)
	}
	return encodeDoc(docs, id, map[string]any{
		"description": "No structural keywords here.",
	})
}

// injectDuplicateContent copies an existing document's bytes under a new
// ID so both carry the same content fingerprint.
func injectDuplicateContent(docs map[string][]byte, dup DuplicateContent) error {
	data, ok := docs[dup.Of]
	if !ok {
		return fmt.Errorf("document %q not found", dup.Of)
	}
	if _, exists := docs[dup.As]; exists {
		return fmt.Errorf("document %q already exists", dup.As)
	}
	docs[dup.As] = append([]byte(nil), data...)
	return nil
}

func decodeDoc(id string, data []byte) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", id, err)
	}
	return decoded, nil
}

func encodeDoc(docs map[string][]byte, id string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %q: %w", id, err)
	}
	docs[id] = append(data, '\n')
	return nil
}

func stemOf(id string) string {
	return strings.TrimSuffix(path.Base(id), path.Ext(id))
}
