package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestCorpus writes a small schema corpus to a temp directory: a
// two-node reference chain, a two-node cycle, and a tagged union.
func writeTestCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"entities/pet.json": `{
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"owner": {"$ref": "entities/owner.json"}
			},
			"required": ["name"]
		}`,
		"entities/owner.json": `{"type": "object", "properties": {"id": {"type": "string"}}}`,
		"a/node.json":         `{"type": "object", "properties": {"next": {"$ref": "b/node.json"}}}`,
		"b/node.json":         `{"type": "object", "properties": {"next": {"$ref": "a/node.json"}}}`,
		"shape.json": `{
			"oneOf": [
				{"properties": {"kind": {"const": "circle"}, "r": {"type": "number"}}, "required": ["kind"]},
				{"properties": {"kind": {"const": "rect"}, "w": {"type": "number"}, "h": {"type": "number"}}, "required": ["kind"]}
			]
		}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating corpus dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing corpus file: %v", err)
		}
	}
	return dir
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid table", FormatTable, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]string{"key": "value"}

	t.Run("json", func(t *testing.T) {
		if err := OutputStructured(data, FormatJSON); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		if err := OutputStructured(data, FormatYAML); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if err := OutputStructured(data, FormatText); err == nil {
			t.Error("expected error for text format")
		}
	})
}

func TestResolveCorpus(t *testing.T) {
	t.Run("directory corpus", func(t *testing.T) {
		dir := writeTestCorpus(t)
		result, err := ResolveCorpus(dir, CorpusFlags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Stats.Documents != 5 {
			t.Errorf("expected 5 documents, got %d", result.Stats.Documents)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := ResolveCorpus(filepath.Join(t.TempDir(), "nope"), CorpusFlags{}); err == nil {
			t.Error("expected error for missing path")
		}
	})

	t.Run("plain file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.json")
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveCorpus(path, CorpusFlags{}); err == nil {
			t.Error("expected error for non-corpus file")
		}
	})

	t.Run("glob rejected for archives", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.txtar")
		if err := os.WriteFile(path, []byte("-- a.json --\n{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveCorpus(path, CorpusFlags{Glob: "**/*.json"}); err == nil {
			t.Error("expected error for --glob with archive input")
		}
	})

	t.Run("archive corpus", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.txtar")
		archive := "-- a.json --\n{\"type\": \"string\"}\n-- b.json --\n{\"type\": \"object\"}\n"
		if err := os.WriteFile(path, []byte(archive), 0o600); err != nil {
			t.Fatal(err)
		}
		result, err := ResolveCorpus(path, CorpusFlags{Workers: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Stats.Documents != 2 {
			t.Errorf("expected 2 documents, got %d", result.Stats.Documents)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{-1, "-1 B"},
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.size); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}

func TestParseEdgeKinds(t *testing.T) {
	t.Run("empty means all", func(t *testing.T) {
		kinds, err := ParseEdgeKinds("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kinds != nil {
			t.Errorf("expected nil kinds, got %v", kinds)
		}
	})

	t.Run("valid list", func(t *testing.T) {
		kinds, err := ParseEdgeKinds("field, extends ,variant")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(kinds) != 3 {
			t.Errorf("expected 3 kinds, got %d", len(kinds))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		kinds, err := ParseEdgeKinds("FIELD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(kinds) != 1 {
			t.Errorf("expected 1 kind, got %d", len(kinds))
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := ParseEdgeKinds("field,bogus")
		if err == nil {
			t.Fatal("expected error for invalid kind")
		}
		if !strings.Contains(err.Error(), "bogus") {
			t.Errorf("error should name the invalid kind, got %v", err)
		}
	})
}

func TestValidateOutputPath(t *testing.T) {
	t.Run("new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.dot")
		if err := ValidateOutputPath(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("existing file warns but passes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.dot")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := ValidateOutputPath(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("symlink rejected", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target.dot")
		if err := os.WriteFile(target, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		link := filepath.Join(dir, "link.dot")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		if err := ValidateOutputPath(link); err == nil {
			t.Error("expected error for symlink output")
		}
	})
}
