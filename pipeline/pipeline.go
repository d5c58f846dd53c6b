package pipeline

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/namer"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/shapes"
)

// Pipeline runs the full analysis over a loaded corpus: reference
// resolution, graph construction, shape detection, cycle analysis,
// classification, and name resolution, in that order.
//
// Each stage depends on the complete output of its predecessors, so the
// stage order is fixed. Within the resolve and shape stages the
// per-document work is pure and fans out across workers; every merge runs
// on the calling goroutine, so the result is identical at any worker
// count.
type Pipeline struct {
	// Workers caps the goroutines used for per-document fan-out.
	// Default: runtime.GOMAXPROCS(0)
	Workers int
	// MaxDanglingFraction is the fraction of documents allowed to carry at
	// least one dangling reference before graph construction fails.
	// Negative means the builder default of 0.25; zero tolerates none.
	// New sets -1.
	MaxDanglingFraction float64
	// BreakRule orders the candidate break edges of each cyclic group.
	// If nil, the analyzer default applies.
	BreakRule cycles.BreakRule
	// DiscriminatorField is the property name synthesized for untagged
	// unions. If empty, the classifier default applies.
	DiscriminatorField string
	// Logger is the structured logger threaded through every stage
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Pipeline instance with default settings
func New() *Pipeline {
	return &Pipeline{MaxDanglingFraction: -1}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Pipeline) log() loader.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return loader.NopLogger{}
}

func (p *Pipeline) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Analyze loads a corpus and runs the full pipeline over it, configured by
// the given options.
//
// Example:
//
//	result, err := pipeline.Analyze(
//	    pipeline.WithDir("schemas"),
//	    pipeline.WithWorkers(8),
//	)
func Analyze(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	corpus, err := cfg.load()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		Workers:             cfg.workers,
		MaxDanglingFraction: cfg.maxDangling,
		BreakRule:           cfg.breakRule,
		DiscriminatorField:  cfg.discriminatorField,
		Logger:              cfg.logger,
	}
	return p.Analyze(corpus)
}

// Analyze runs every stage over an already loaded corpus.
//
// The only fatal condition is graph construction exceeding its dangling
// budget; every other problem degrades the offending node and is reported
// in the result's Issues. Success means the run completed with no
// error-severity diagnostics.
func (p *Pipeline) Analyze(corpus *loader.LoadResult) (*Result, error) {
	start := time.Now()
	if corpus == nil {
		corpus = &loader.LoadResult{}
	}

	res := p.resolveReferences(corpus)

	g, err := p.buildGraph(corpus, res)
	if err != nil {
		return nil, err
	}

	det := p.detectShapes(corpus)

	an := (&cycles.Analyzer{Rule: p.BreakRule, Logger: p.Logger}).Analyze(g)
	if err := an.Verify(); err != nil {
		return nil, err
	}

	c := &classifier.Classifier{DiscriminatorField: p.DiscriminatorField, Logger: p.Logger}
	cls, err := c.Classify(g, det, an)
	if err != nil {
		return nil, err
	}

	table := (&namer.Namer{Logger: p.Logger}).Resolve(cls)

	result := assemble(corpus, res, g, det, an, cls, table)
	result.AnalyzeTime = time.Since(start)
	p.log().Info("analysis complete",
		"schemas", len(result.Classifications),
		"groups", len(result.Groups),
		"issues", len(result.Issues),
		"success", result.Success,
	)
	return result, nil
}

// resolveReferences extracts every document's provisional edges across the
// worker pool and admits them against the corpus on this goroutine.
func (p *Pipeline) resolveReferences(corpus *loader.LoadResult) *resolver.Resolution {
	r := &resolver.Resolver{Logger: p.Logger}

	perDoc := make([][]resolver.Edge, len(corpus.Documents))
	var eg errgroup.Group
	eg.SetLimit(p.workers())
	for i, doc := range corpus.Documents {
		eg.Go(func() error {
			perDoc[i] = r.ExtractDocument(doc)
			return nil
		})
	}
	_ = eg.Wait() // extraction is pure and never fails

	return r.MergeExtractions(corpus, perDoc)
}

// detectShapes detects every document's shape across the worker pool and
// merges the descriptors on this goroutine.
func (p *Pipeline) detectShapes(corpus *loader.LoadResult) *shapes.Detection {
	d := &shapes.Detector{Logger: p.Logger}

	descs := make([]shapes.Descriptor, len(corpus.Documents))
	var eg errgroup.Group
	eg.SetLimit(p.workers())
	for i, doc := range corpus.Documents {
		if doc.Root == nil {
			continue // undecodable documents were already reported by the loader
		}
		eg.Go(func() error {
			descs[i] = d.DetectDocument(doc)
			return nil
		})
	}
	_ = eg.Wait() // detection is pure and never fails

	return d.MergeDescriptors(corpus, descs)
}

// buildGraph constructs the schema graph, applying the pipeline's dangling
// budget when one was configured.
func (p *Pipeline) buildGraph(corpus *loader.LoadResult, res *resolver.Resolution) (*graph.SchemaGraph, error) {
	b := graph.New()
	b.Logger = p.Logger
	if p.MaxDanglingFraction >= 0 {
		b.MaxDanglingFraction = p.MaxDanglingFraction
	}
	return b.Build(corpus, res)
}
