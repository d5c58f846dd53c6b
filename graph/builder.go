package graph

import (
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/sgerrors"
)

// defaultMaxDanglingFraction is the fraction of documents allowed to carry
// dangling references before the corpus is judged unusable.
const defaultMaxDanglingFraction = 0.25

// Builder constructs a SchemaGraph from a loaded corpus and its resolution.
type Builder struct {
	// MaxDanglingFraction is the fraction of documents allowed to carry at
	// least one dangling reference. When exceeded, Build fails with a
	// *sgerrors.GraphConstructionError instead of producing a mostly
	// disconnected graph. New sets the default of 0.25; zero means no
	// dangling document is tolerated.
	MaxDanglingFraction float64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a Builder with the default dangling budget.
func New() *Builder {
	return &Builder{MaxDanglingFraction: defaultMaxDanglingFraction}
}

// log returns the configured logger, or a no-op logger if none is set.
func (b *Builder) log() loader.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return loader.NopLogger{}
}

// Build constructs a SchemaGraph using a Builder configured by the given
// options.
func Build(corpus *loader.LoadResult, res *resolver.Resolution, opts ...Option) (*SchemaGraph, error) {
	b := New()
	if err := applyOptions(b, opts); err != nil {
		return nil, err
	}
	return b.Build(corpus, res)
}

// Build constructs the graph: one node per corpus document (promoted
// definitions included) and one edge per distinct (from, to, kind) triple in
// the resolution. Dangling edges were already dropped by the resolver; Build
// fails only when the fraction of documents carrying them exceeds the budget.
func (b *Builder) Build(corpus *loader.LoadResult, res *resolver.Resolution) (*SchemaGraph, error) {
	g := &SchemaGraph{
		byID:   make(map[string]*Node),
		byPath: make(map[string][]*Node),
		byName: make(map[string][]*Node),
		out:    make(map[string][]Edge),
		in:     make(map[string][]Edge),
	}
	if corpus == nil {
		return g, nil
	}

	if res != nil && len(corpus.Documents) > 0 {
		dangling := len(res.DanglingDocuments())
		if frac := float64(dangling) / float64(len(corpus.Documents)); frac > b.MaxDanglingFraction {
			return nil, &sgerrors.GraphConstructionError{
				TotalDocs:    len(corpus.Documents),
				DanglingDocs: dangling,
				Limit:        b.MaxDanglingFraction,
			}
		}
	}

	// Documents arrive sorted by ID, so the arena and every index are
	// deterministic.
	for _, doc := range corpus.Documents {
		node := &Node{
			ID:         doc.ID,
			Path:       doc.Path,
			Definition: doc.Definition,
			Kind:       doc.Kind,
			Title:      doc.Title,
			Doc:        doc,
		}
		if node.IsDefinition() && node.Kind == "" {
			node.Kind = "definition"
		}
		g.nodes = append(g.nodes, node)
		g.byID[node.ID] = node
		g.byPath[node.Path] = append(g.byPath[node.Path], node)
		g.byName[node.DisplayName()] = append(g.byName[node.DisplayName()], node)
	}

	if res != nil {
		b.addEdges(g, res.Edges)
	}

	b.log().Info("graph constructed",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return g, nil
}

// addEdges sorts, deduplicates, and indexes the resolved edges. Duplicate
// (from, to, kind) triples collapse to the first occurrence in sorted order,
// so a triple seen through several fields keeps the lexicographically first
// field name.
func (b *Builder) addEdges(g *SchemaGraph, edges []Edge) {
	sorted := append([]Edge(nil), edges...)
	resolver.SortEdges(sorted)

	for i, e := range sorted {
		if _, ok := g.byID[e.From]; !ok {
			continue
		}
		if _, ok := g.byID[e.To]; !ok {
			continue
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.From == e.From && prev.To == e.To && prev.Kind == e.Kind {
				continue
			}
		}
		g.edges = append(g.edges, e)
		g.out[e.From] = append(g.out[e.From], e)
		g.in[e.To] = append(g.in[e.To], e)
	}
}
