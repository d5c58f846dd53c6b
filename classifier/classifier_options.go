package classifier

import (
	"strings"

	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Option configures classification performed via [Classify].
type Option func(*Classifier) error

// applyOptions applies the given options to a Classifier.
func applyOptions(c *Classifier, opts []Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithDiscriminatorField sets the property name synthesized when an
// untagged union needs a discriminator.
func WithDiscriminatorField(name string) Option {
	return func(c *Classifier) error {
		if strings.TrimSpace(name) == "" {
			return &sgerrors.ConfigError{
				Option:  "discriminator field",
				Message: "must not be empty",
			}
		}
		c.DiscriminatorField = name
		return nil
	}
}

// WithLogger sets the structured logger used during classification.
func WithLogger(logger loader.Logger) Option {
	return func(c *Classifier) error {
		c.Logger = logger
		return nil
	}
}
