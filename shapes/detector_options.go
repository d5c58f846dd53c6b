package shapes

import (
	"github.com/erraggy/schemagraph/loader"
)

// Option configures shape detection performed via [Detect].
type Option func(*Detector) error

// applyOptions applies the given options to a Detector.
func applyOptions(d *Detector, opts []Option) error {
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return err
		}
	}
	return nil
}

// WithLogger sets the structured logger used during detection.
func WithLogger(logger loader.Logger) Option {
	return func(d *Detector) error {
		d.Logger = logger
		return nil
	}
}
