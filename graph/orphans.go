package graph

import "strings"

// expectedRootCategories are the corpus directories whose schemas are
// deployment roots: nothing references them because they are the entry
// points of the dependency graph, not omissions.
var expectedRootCategories = []string{"ecs", "queues", "nodes", "systems", "resources"}

// OrphanInfo describes a root document no other schema references.
type OrphanInfo struct {
	// SchemaID is the orphaned schema's identifier
	SchemaID string
	// Path is the source file of the schema
	Path string
	// Category is the first path segment, "unknown" for bare filenames
	Category string
	// Kind is the x-familiar-kind of the schema, if any
	Kind string
	// ExpectedRoot is true when the category is a deployment root directory,
	// where having no inbound references is normal
	ExpectedRoot bool
	// HasOutgoing is true when the schema references others: a consumer at
	// the top of a dependency chain rather than an isolated schema
	HasOutgoing bool
}

// Orphans returns every root document with no incoming edges, sorted by ID.
// Promoted definitions are skipped: an unreferenced definition is local
// cleanup, not a corpus-level gap.
func (g *SchemaGraph) Orphans() []OrphanInfo {
	var orphans []OrphanInfo
	for _, n := range g.nodes {
		if n.IsDefinition() || len(g.in[n.ID]) > 0 {
			continue
		}

		category := "unknown"
		if idx := strings.IndexByte(n.Path, '/'); idx > 0 {
			category = n.Path[:idx]
		}

		expected := false
		for _, c := range expectedRootCategories {
			if category == c {
				expected = true
				break
			}
		}

		orphans = append(orphans, OrphanInfo{
			SchemaID:     n.ID,
			Path:         n.Path,
			Category:     category,
			Kind:         n.Kind,
			ExpectedRoot: expected,
			HasOutgoing:  len(g.out[n.ID]) > 0,
		})
	}
	return orphans
}

// IsolatedSchemas returns the orphans with no outgoing edges either: schemas
// connected to nothing, the ones worth investigating.
func (g *SchemaGraph) IsolatedSchemas() []OrphanInfo {
	var isolated []OrphanInfo
	for _, o := range g.Orphans() {
		if !o.HasOutgoing {
			isolated = append(isolated, o)
		}
	}
	return isolated
}

// ConsumerOnlySchemas returns the orphans that do reference other schemas:
// tops of dependency chains that nothing consumes in turn.
func (g *SchemaGraph) ConsumerOnlySchemas() []OrphanInfo {
	var consumers []OrphanInfo
	for _, o := range g.Orphans() {
		if o.HasOutgoing {
			consumers = append(consumers, o)
		}
	}
	return consumers
}

// OrphansByCategory groups the orphans by their first path segment.
func (g *SchemaGraph) OrphansByCategory() map[string][]OrphanInfo {
	byCategory := make(map[string][]OrphanInfo)
	for _, o := range g.Orphans() {
		byCategory[o.Category] = append(byCategory[o.Category], o)
	}
	return byCategory
}
