package commands

import "testing"

func TestHandleGraph_NoSubcommand(t *testing.T) {
	if err := HandleGraph([]string{}); err == nil {
		t.Error("expected error when no subcommand provided")
	}
}

func TestHandleGraph_Help(t *testing.T) {
	if err := HandleGraph([]string{"--help"}); err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleGraph_UnknownSubcommand(t *testing.T) {
	if err := HandleGraph([]string{"routes"}); err == nil {
		t.Error("expected error for unknown subcommand")
	}
}

func TestHandleGraphDeps(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("requires id", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", dir}); err == nil {
			t.Error("expected error when --id missing")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", "--id", "nope.json", dir}); err == nil {
			t.Error("expected error for unknown schema id")
		}
	})

	t.Run("direct deps", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", "--id", "entities/pet.json", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("transitive deps", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", "--id", "a/node.json", "--transitive", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", "--id", "entities/pet.json", "--kinds", "field", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		if err := HandleGraph([]string{"deps", "--id", "entities/pet.json", "--kinds", "bogus", dir}); err == nil {
			t.Error("expected error for invalid edge kind")
		}
	})
}

func TestHandleGraphDependents(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("direct dependents", func(t *testing.T) {
		if err := HandleGraph([]string{"dependents", "--id", "entities/owner.json", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("blast radius", func(t *testing.T) {
		if err := HandleGraph([]string{"dependents", "--id", "entities/owner.json", "--transitive", "--format", "json", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestHandleGraphOrphans(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("all orphans", func(t *testing.T) {
		if err := HandleGraph([]string{"orphans", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("isolated only", func(t *testing.T) {
		if err := HandleGraph([]string{"orphans", "--isolated-only", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		if err := HandleGraph([]string{"orphans", "--category", "entities", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestHandleGraphEdges(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("all edges", func(t *testing.T) {
		if err := HandleGraph([]string{"edges", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		if err := HandleGraph([]string{"edges", "--kinds", "field,variant", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("counts", func(t *testing.T) {
		if err := HandleGraph([]string{"edges", "--counts", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
