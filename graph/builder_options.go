package graph

import (
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Option configures graph construction performed via [Build].
type Option func(*Builder) error

// applyOptions applies the given options to a Builder.
func applyOptions(b *Builder, opts []Option) error {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return err
		}
	}
	return nil
}

// WithMaxDanglingFraction sets the fraction of documents allowed to carry
// dangling references before construction fails. Zero tolerates none.
func WithMaxDanglingFraction(f float64) Option {
	return func(b *Builder) error {
		if f < 0 || f > 1 {
			return &sgerrors.ConfigError{
				Option:  "max dangling fraction",
				Value:   f,
				Message: "must be between 0 and 1",
			}
		}
		b.MaxDanglingFraction = f
		return nil
	}
}

// WithLogger sets the structured logger used during construction.
func WithLogger(logger loader.Logger) Option {
	return func(b *Builder) error {
		b.Logger = logger
		return nil
	}
}
