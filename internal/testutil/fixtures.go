// Package testutil provides schema document builders and corpus fixtures
// for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"
)

// Schema is a raw schema document under construction. Builders return
// Schema values that compose into corpus documents.
type Schema map[string]any

// Object creates an object schema with the given properties. Names listed
// in required become the schema's required set.
func Object(props map[string]any, required ...string) Schema {
	s := Schema{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// Titled returns a copy of the schema with a title set.
func Titled(title string, s Schema) Schema {
	out := make(Schema, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out["title"] = title
	return out
}

// Ref creates a reference to another corpus document or local definition.
func Ref(target string) Schema {
	return Schema{"$ref": target}
}

// Scalar creates a schema with just a type keyword.
func Scalar(typ string) Schema {
	return Schema{"type": typ}
}

// ArrayOf creates an array schema whose items follow the given schema.
func ArrayOf(items any) Schema {
	return Schema{
		"type":  "array",
		"items": items,
	}
}

// MapOf creates an object schema with additionalProperties set to the
// given value schema.
func MapOf(value any) Schema {
	return Schema{
		"type":                 "object",
		"additionalProperties": value,
	}
}

// Enum creates a schema constrained to the given values.
func Enum(typ string, values ...any) Schema {
	return Schema{
		"type": typ,
		"enum": values,
	}
}

// Union creates a oneOf schema over the given alternatives.
func Union(alts ...Schema) Schema {
	members := make([]any, len(alts))
	for i, a := range alts {
		members[i] = a
	}
	return Schema{"oneOf": members}
}

// Tagged returns a copy of the variant schema carrying the discriminator
// property as a const. Use it to assemble tagged unions:
//
//	Union(
//	    Tagged("op", "create", Object(...)),
//	    Tagged("op", "delete", Object(...)),
//	)
func Tagged(disc, value string, variant Schema) Schema {
	props, _ := variant["properties"].(map[string]any)
	tagged := make(map[string]any, len(props)+1)
	for k, v := range props {
		tagged[k] = v
	}
	tagged[disc] = map[string]any{"const": value}

	out := make(Schema, len(variant))
	for k, v := range variant {
		out[k] = v
	}
	out["properties"] = tagged
	if req, ok := variant["required"].([]string); ok {
		out["required"] = append([]string{disc}, req...)
	} else {
		out["required"] = []string{disc}
	}
	return out
}

// Extends creates an allOf schema combining a base reference with local
// properties.
func Extends(base string, rest Schema) Schema {
	return Schema{"allOf": []any{Ref(base), rest}}
}

// MustJSON marshals a value to indented JSON, panicking on failure.
// Builders produce plain maps so marshalling cannot realistically fail;
// the panic keeps fixture construction free of error plumbing.
func MustJSON(v any) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return append(data, '\n')
}

// MustYAML marshals a value to YAML, panicking on failure.
func MustYAML(v any) []byte {
	data, err := yaml.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// WriteCorpusDir writes the documents into a temporary directory keyed by
// their corpus-relative paths and returns the directory root. The
// directory is cleaned up when the test completes (via t.TempDir).
func WriteCorpusDir(t *testing.T, docs map[string][]byte) string {
	t.Helper()

	root := t.TempDir()
	for id, data := range docs {
		path := filepath.Join(root, filepath.FromSlash(id))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create corpus directory for %s: %v", id, err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("Failed to write corpus document %s: %v", id, err)
		}
	}
	return root
}

// WriteCorpusArchive writes the documents into a single txtar archive file
// and returns its path. Files appear in sorted order so the archive bytes
// are deterministic. The file is cleaned up when the test completes.
func WriteCorpusArchive(t *testing.T, docs map[string][]byte) string {
	t.Helper()

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	arch := &txtar.Archive{}
	for _, id := range ids {
		arch.Files = append(arch.Files, txtar.File{Name: id, Data: docs[id]})
	}

	path := filepath.Join(t.TempDir(), "corpus.txtar")
	if err := os.WriteFile(path, txtar.Format(arch), 0o600); err != nil {
		t.Fatalf("Failed to write corpus archive: %v", err)
	}
	return path
}
