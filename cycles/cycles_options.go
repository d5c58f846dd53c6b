package cycles

import (
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Option configures cycle analysis performed via [Analyze].
type Option func(*Analyzer) error

// applyOptions applies the given options to an Analyzer.
func applyOptions(a *Analyzer, opts []Option) error {
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return err
		}
	}
	return nil
}

// WithBreakRule replaces the default break preference. The rule decides
// which edges of a cyclic group may be severed and in what order they are
// tried.
func WithBreakRule(rule BreakRule) Option {
	return func(a *Analyzer) error {
		if rule == nil {
			return &sgerrors.ConfigError{
				Option:  "break rule",
				Message: "must not be nil",
			}
		}
		a.Rule = rule
		return nil
	}
}

// WithLogger sets the structured logger used during analysis.
func WithLogger(logger loader.Logger) Option {
	return func(a *Analyzer) error {
		a.Logger = logger
		return nil
	}
}
