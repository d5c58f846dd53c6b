package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupDotFlags(t *testing.T) {
	fs, flags := SetupDotFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Output != "" {
			t.Errorf("expected Output to be empty by default, got %q", flags.Output)
		}
		if flags.Kinds != "" {
			t.Errorf("expected Kinds to be empty by default, got %q", flags.Kinds)
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		if err := fs.Parse([]string{"-o", "out.dot", "--kinds", "field", "./schemas"}); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if flags.Output != "out.dot" {
			t.Errorf("expected Output 'out.dot', got %q", flags.Output)
		}
		if flags.Kinds != "field" {
			t.Errorf("expected Kinds 'field', got %q", flags.Kinds)
		}
	})
}

func TestHandleDot_NoArgs(t *testing.T) {
	if err := HandleDot([]string{}); err == nil {
		t.Error("expected error when no corpus provided")
	}
}

func TestHandleDot_Help(t *testing.T) {
	if err := HandleDot([]string{"--help"}); err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleDot_InvalidKinds(t *testing.T) {
	if err := HandleDot([]string{"--kinds", "bogus", "./schemas"}); err == nil {
		t.Error("expected error for invalid edge kind")
	}
}

func TestHandleDot_Corpus(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("stdout", func(t *testing.T) {
		if err := HandleDot([]string{"-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("output file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "graph.dot")
		if err := HandleDot([]string{"-o", out, "-q", dir}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.HasPrefix(string(data), "digraph G {") {
			t.Errorf("expected DOT output, got:\n%s", string(data))
		}
		if !strings.Contains(string(data), "entities/pet.json") {
			t.Errorf("expected node in output, got:\n%s", string(data))
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "graph.dot")
		if err := HandleDot([]string{"-o", out, "--kinds", "field", "-q", dir}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(data), "field") {
			t.Errorf("expected field edges in output, got:\n%s", string(data))
		}
	})
}
