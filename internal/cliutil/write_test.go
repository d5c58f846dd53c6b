package cliutil

import (
	"bytes"
	"errors"
	"testing"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "Nodes: %d\n", 42)
	if got := buf.String(); got != "Nodes: 42\n" {
		t.Errorf("Writef() = %q, want %q", got, "Nodes: 42\n")
	}
}

func TestWritef_NoArgs(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "no diagnostics")
	if got := buf.String(); got != "no diagnostics" {
		t.Errorf("Writef() = %q, want %q", got, "no diagnostics")
	}
}

func TestWritef_MultipleArgs(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d groups, %v cyclic", "entities/pet.json", 3, true)
	want := "entities/pet.json: 3 groups, true cyclic"
	if got := buf.String(); got != want {
		t.Errorf("Writef() = %q, want %q", got, want)
	}
}

func TestWriteln(t *testing.T) {
	var buf bytes.Buffer
	Writeln(&buf, "digraph schemas {")
	if got := buf.String(); got != "digraph schemas {\n" {
		t.Errorf("Writeln() = %q, want %q", got, "digraph schemas {\n")
	}
}

// brokenWriter fails every write, standing in for a closed pipe.
type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritef_WriteError(t *testing.T) {
	// A failed write must not panic; the error goes to stderr.
	Writef(brokenWriter{}, "this will fail")
	Writeln(brokenWriter{}, "so will this")
}
