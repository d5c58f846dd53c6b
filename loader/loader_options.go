package loader

import (
	"fmt"

	"github.com/erraggy/schemagraph/internal/options"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	dir     *string
	files   []string
	archive *string
	docs    map[string][]byte

	// Configuration options
	glob         string
	validateMeta bool
	logger       Logger

	// Resource limits (0 means use default)
	maxFileSize  int64
	maxDocuments int
}

// LoadWithOptions loads a schema corpus using functional options.
// This provides a flexible, extensible API that combines input source
// selection and configuration in a single function call.
//
// Example:
//
//	result, err := loader.LoadWithOptions(
//	    loader.WithDir("schemas"),
//	    loader.WithMetaValidation(true),
//	)
func LoadWithOptions(opts ...Option) (*LoadResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}

	l := &Loader{
		Glob:         cfg.glob,
		ValidateMeta: cfg.validateMeta,
		Logger:       cfg.logger,
		MaxFileSize:  cfg.maxFileSize,
		MaxDocuments: cfg.maxDocuments,
	}

	// Route to the appropriate load method based on input source
	switch {
	case cfg.dir != nil:
		return l.Load(*cfg.dir)
	case cfg.files != nil:
		return l.LoadFiles(cfg.files...)
	case cfg.archive != nil:
		return l.LoadArchive(*cfg.archive)
	case cfg.docs != nil:
		return l.LoadDocuments(cfg.docs)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("loader: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.RequireExactlyOne("loader",
		options.Source{Name: "WithDir", Set: cfg.dir != nil},
		options.Source{Name: "WithFiles", Set: cfg.files != nil},
		options.Source{Name: "WithArchive", Set: cfg.archive != nil},
		options.Source{Name: "WithDocuments", Set: cfg.docs != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDir specifies a corpus directory as the input source. Schema IDs are
// paths relative to the directory.
func WithDir(dir string) Option {
	return func(cfg *loadConfig) error {
		cfg.dir = &dir
		return nil
	}
}

// WithFiles specifies an explicit list of schema files as the input source
func WithFiles(paths ...string) Option {
	return func(cfg *loadConfig) error {
		if len(paths) == 0 {
			return fmt.Errorf("loader: files cannot be empty")
		}
		cfg.files = paths
		return nil
	}
}

// WithArchive specifies a txtar archive file as the input source
func WithArchive(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.archive = &path
		return nil
	}
}

// WithDocument adds an in-memory document under the given schema ID.
// May be repeated to build a corpus without touching the filesystem.
func WithDocument(id string, data []byte) Option {
	return func(cfg *loadConfig) error {
		if id == "" {
			return fmt.Errorf("loader: document ID cannot be empty")
		}
		if data == nil {
			return fmt.Errorf("loader: document data cannot be nil")
		}
		if cfg.docs == nil {
			cfg.docs = make(map[string][]byte)
		}
		cfg.docs[id] = data
		return nil
	}
}

// WithDocuments specifies a set of in-memory documents keyed by schema ID
// as the input source. An empty map is a valid, empty corpus.
func WithDocuments(docs map[string][]byte) Option {
	return func(cfg *loadConfig) error {
		if docs == nil {
			return fmt.Errorf("loader: documents cannot be nil")
		}
		if cfg.docs == nil {
			cfg.docs = make(map[string][]byte, len(docs))
		}
		for id, data := range docs {
			cfg.docs[id] = data
		}
		return nil
	}
}

// WithGlob sets the doublestar pattern used to discover schema files under
// a directory. Only meaningful together with WithDir.
// Default: "**/*.{json,yaml,yml}"
func WithGlob(pattern string) Option {
	return func(cfg *loadConfig) error {
		if pattern == "" {
			return fmt.Errorf("loader: glob pattern cannot be empty")
		}
		cfg.glob = pattern
		return nil
	}
}

// WithMetaValidation enables validation of each root document against the
// JSON Schema Draft 2020-12 meta-schema. Violations are reported as
// warning-severity issues.
// Default: false
func WithMetaValidation(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.validateMeta = enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output during loading.
// By default, no logging is performed (nil logger).
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes for a single schema file.
// Oversized files are skipped with an error-severity issue.
// A value of 0 means use the default (10MB).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size < 0 {
			return fmt.Errorf("loader: maxFileSize cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithMaxDocuments sets the maximum number of documents in a corpus,
// counting definitions promoted to their own nodes.
// A value of 0 means use the default (10000).
// Returns an error if count is negative.
func WithMaxDocuments(count int) Option {
	return func(cfg *loadConfig) error {
		if count < 0 {
			return fmt.Errorf("loader: maxDocuments cannot be negative")
		}
		cfg.maxDocuments = count
		return nil
	}
}
