package resolver

import (
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Option configures reference resolution performed via [Resolve].
type Option func(*Resolver) error

// applyOptions applies the given options to a Resolver.
func applyOptions(r *Resolver, opts []Option) error {
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return err
		}
	}
	return nil
}

// WithMaxDepth bounds how many levels of inline property nesting contribute
// field-type edges. Zero restores the default of 100.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) error {
		if depth < 0 {
			return &sgerrors.ConfigError{
				Option:  "max depth",
				Value:   depth,
				Message: "must not be negative",
			}
		}
		r.MaxDepth = depth
		return nil
	}
}

// WithLogger sets the structured logger used during resolution.
func WithLogger(logger loader.Logger) Option {
	return func(r *Resolver) error {
		r.Logger = logger
		return nil
	}
}
