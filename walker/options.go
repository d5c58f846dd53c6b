package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/schemagraph/internal/options"
	"github.com/erraggy/schemagraph/pipeline"
)

// WithResult specifies a completed analysis result to walk.
func WithResult(result *pipeline.Result) Option {
	return func(w *Walker) error {
		if result == nil {
			return fmt.Errorf("walker: result cannot be nil")
		}
		w.result = result
		return nil
	}
}

// WithDir specifies a schema directory to analyze and walk.
func WithDir(dir string) Option {
	return func(w *Walker) error {
		w.dir = &dir
		return nil
	}
}

// WithFiles specifies schema file paths to analyze and walk.
func WithFiles(paths ...string) Option {
	return func(w *Walker) error {
		if len(paths) == 0 {
			return fmt.Errorf("walker: files cannot be empty")
		}
		w.files = append(w.files, paths...)
		return nil
	}
}

// WithArchive specifies a txtar corpus archive to analyze and walk.
func WithArchive(path string) Option {
	return func(w *Walker) error {
		w.archive = &path
		return nil
	}
}

// WithDocuments specifies in-memory documents, keyed by SchemaID, to analyze
// and walk.
func WithDocuments(docs map[string][]byte) Option {
	return func(w *Walker) error {
		if docs == nil {
			return fmt.Errorf("walker: documents cannot be nil")
		}
		w.docs = docs
		return nil
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) error {
		w.userCtx = ctx
		return nil
	}
}

// WalkWithOptions walks an analysis result using functional options for
// input, handlers, and configuration. Raw inputs run through the full
// pipeline first.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithDir("schemas"),
//	    walker.WithNodeHandler(func(wc *walker.WalkContext, n *graph.Node) walker.Action {
//	        fmt.Println(wc.Identifier)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	if err := applyOptions(w, opts); err != nil {
		return err
	}

	if err := options.RequireExactlyOne("walker",
		options.Source{Name: "WithResult", Set: w.result != nil},
		options.Source{Name: "WithDir", Set: w.dir != nil},
		options.Source{Name: "WithFiles", Set: len(w.files) > 0},
		options.Source{Name: "WithArchive", Set: w.archive != nil},
		options.Source{Name: "WithDocuments", Set: w.docs != nil},
	); err != nil {
		return err
	}

	result := w.result
	if result == nil {
		var err error
		result, err = w.analyze()
		if err != nil {
			return err
		}
	}

	return w.walk(result)
}

// analyze runs the pipeline over the configured raw input.
func (w *Walker) analyze() (*pipeline.Result, error) {
	switch {
	case w.dir != nil:
		return pipeline.Analyze(pipeline.WithDir(*w.dir))
	case len(w.files) > 0:
		return pipeline.Analyze(pipeline.WithFiles(w.files...))
	case w.archive != nil:
		return pipeline.Analyze(pipeline.WithArchive(*w.archive))
	default:
		return pipeline.Analyze(pipeline.WithDocuments(w.docs))
	}
}
