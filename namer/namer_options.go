package namer

import (
	"github.com/erraggy/schemagraph/loader"
)

// Option configures name resolution performed via [Resolve].
type Option func(*Namer) error

// applyOptions applies the given options to a Namer.
func applyOptions(nm *Namer, opts []Option) error {
	for _, opt := range opts {
		if err := opt(nm); err != nil {
			return err
		}
	}
	return nil
}

// WithLogger sets the structured logger used during name resolution.
func WithLogger(logger loader.Logger) Option {
	return func(nm *Namer) error {
		nm.Logger = logger
		return nil
	}
}
