package pipeline

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/internal/options"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Option is a function that configures an analysis run
type Option func(*analyzeConfig) error

// analyzeConfig holds configuration for one analysis run
type analyzeConfig struct {
	// Input source (exactly one must be set)
	dir     *string
	files   []string
	archive *string
	docs    map[string][]byte
	corpus  *loader.LoadResult

	// Loader configuration forwarded when the pipeline loads the corpus
	loaderOpts []loader.Option

	// Stage configuration
	workers            int
	maxDangling        float64
	breakRule          cycles.BreakRule
	discriminatorField string
	logger             loader.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*analyzeConfig, error) {
	cfg := &analyzeConfig{maxDangling: -1}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireExactlyOne("pipeline",
		options.Source{Name: "WithDir", Set: cfg.dir != nil},
		options.Source{Name: "WithFiles", Set: cfg.files != nil},
		options.Source{Name: "WithArchive", Set: cfg.archive != nil},
		options.Source{Name: "WithDocuments", Set: cfg.docs != nil},
		options.Source{Name: "WithLoadResult", Set: cfg.corpus != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// load acquires the corpus from the configured input source.
func (cfg *analyzeConfig) load() (*loader.LoadResult, error) {
	if cfg.corpus != nil {
		return cfg.corpus, nil
	}

	opts := cfg.loaderOpts
	if cfg.logger != nil {
		opts = append(opts, loader.WithLogger(cfg.logger))
	}
	switch {
	case cfg.dir != nil:
		opts = append(opts, loader.WithDir(*cfg.dir))
	case cfg.files != nil:
		opts = append(opts, loader.WithFiles(cfg.files...))
	case cfg.archive != nil:
		opts = append(opts, loader.WithArchive(*cfg.archive))
	case cfg.docs != nil:
		opts = append(opts, loader.WithDocuments(cfg.docs))
	}
	return loader.LoadWithOptions(opts...)
}

// WithDir specifies a corpus directory as the input source. Schema IDs are
// paths relative to the directory.
func WithDir(dir string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.dir = &dir
		return nil
	}
}

// WithFiles specifies an explicit list of schema files as the input source
func WithFiles(paths ...string) Option {
	return func(cfg *analyzeConfig) error {
		if len(paths) == 0 {
			return fmt.Errorf("pipeline: files cannot be empty")
		}
		cfg.files = paths
		return nil
	}
}

// WithArchive specifies a txtar archive file as the input source
func WithArchive(path string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.archive = &path
		return nil
	}
}

// WithDocuments specifies a set of in-memory documents keyed by schema ID
// as the input source.
func WithDocuments(docs map[string][]byte) Option {
	return func(cfg *analyzeConfig) error {
		if docs == nil {
			return fmt.Errorf("pipeline: documents cannot be nil")
		}
		cfg.docs = docs
		return nil
	}
}

// WithLoadResult supplies an already loaded corpus as the input source,
// skipping the load stage entirely.
func WithLoadResult(corpus *loader.LoadResult) Option {
	return func(cfg *analyzeConfig) error {
		if corpus == nil {
			return fmt.Errorf("pipeline: load result cannot be nil")
		}
		cfg.corpus = corpus
		return nil
	}
}

// WithGlob sets the doublestar pattern used to discover schema files under
// a directory. Only meaningful together with WithDir.
// Default: "**/*.{json,yaml,yml}"
func WithGlob(pattern string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, loader.WithGlob(pattern))
		return nil
	}
}

// WithMetaValidation enables validation of each root document against the
// JSON Schema Draft 2020-12 meta-schema during loading.
// Default: false
func WithMetaValidation(enabled bool) Option {
	return func(cfg *analyzeConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, loader.WithMetaValidation(enabled))
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes for a single schema file.
// A value of 0 means the loader default (10MB).
func WithMaxFileSize(size int64) Option {
	return func(cfg *analyzeConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, loader.WithMaxFileSize(size))
		return nil
	}
}

// WithMaxDocuments sets the maximum number of documents in a corpus,
// counting promoted definitions.
// A value of 0 means the loader default (10000).
func WithMaxDocuments(count int) Option {
	return func(cfg *analyzeConfig) error {
		cfg.loaderOpts = append(cfg.loaderOpts, loader.WithMaxDocuments(count))
		return nil
	}
}

// WithWorkers caps the goroutines used for per-document fan-out.
// A value of 0 means one worker per available CPU.
func WithWorkers(n int) Option {
	return func(cfg *analyzeConfig) error {
		if n < 0 {
			return &sgerrors.ConfigError{
				Option:  "workers",
				Value:   n,
				Message: "must not be negative",
			}
		}
		cfg.workers = n
		return nil
	}
}

// WithMaxDanglingFraction sets the fraction of documents allowed to carry
// dangling references before graph construction fails. Zero tolerates
// none.
func WithMaxDanglingFraction(f float64) Option {
	return func(cfg *analyzeConfig) error {
		if f < 0 || f > 1 {
			return &sgerrors.ConfigError{
				Option:  "max dangling fraction",
				Value:   f,
				Message: "must be between 0 and 1",
			}
		}
		cfg.maxDangling = f
		return nil
	}
}

// WithBreakRule replaces the default break preference used during cycle
// analysis.
func WithBreakRule(rule cycles.BreakRule) Option {
	return func(cfg *analyzeConfig) error {
		if rule == nil {
			return &sgerrors.ConfigError{
				Option:  "break rule",
				Message: "must not be nil",
			}
		}
		cfg.breakRule = rule
		return nil
	}
}

// WithDiscriminatorField sets the property name synthesized when an
// untagged union needs a discriminator.
// Default: "kind"
func WithDiscriminatorField(name string) Option {
	return func(cfg *analyzeConfig) error {
		if strings.TrimSpace(name) == "" {
			return &sgerrors.ConfigError{
				Option:  "discriminator field",
				Message: "must not be empty",
			}
		}
		cfg.discriminatorField = name
		return nil
	}
}

// WithLogger sets the structured logger threaded through every stage.
// By default, no logging is performed (nil logger).
func WithLogger(l loader.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.logger = l
		return nil
	}
}
