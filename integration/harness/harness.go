//go:build integration

// Package harness provides the integration test framework for schemagraph.
// It enables declarative scenario-driven testing via YAML files.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/erraggy/schemagraph/pipeline"
)

// Scenario represents a complete integration test scenario.
type Scenario struct {
	// Name is a short, descriptive name for the scenario
	Name string `yaml:"name"`
	// Description provides additional context about what the scenario tests
	Description string `yaml:"description,omitempty"`
	// Base is the name of a txtar base corpus from bases/ (without extension)
	Base string `yaml:"base,omitempty"`
	// Documents holds inline documents keyed by schema ID. They overlay the
	// base corpus: an ID already present in the base is replaced.
	Documents map[string]string `yaml:"documents,omitempty"`
	// Problems defines issues to inject into the corpus before analysis
	Problems Problems `yaml:"problems,omitempty"`
	// Analysis tunes the pipeline options for the run
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	// Expect defines the expected outcome of the run
	Expect Expect `yaml:"expect"`
	// Deterministic re-runs the analysis with a different worker count and
	// requires byte-identical emission order, names, and diagnostics
	Deterministic bool `yaml:"deterministic,omitempty"`
	// Skip provides a reason to skip this scenario (if set, scenario is skipped)
	Skip string `yaml:"skip,omitempty"`

	// filePath is the path to the scenario file (set by loader)
	filePath string
}

// AnalysisConfig tunes the pipeline for one scenario run. Zero values
// leave the pipeline defaults in place.
type AnalysisConfig struct {
	// Workers caps the analysis fan-out goroutines
	Workers int `yaml:"workers,omitempty"`
	// MaxDanglingFraction overrides the dangling-reference budget
	MaxDanglingFraction *float64 `yaml:"max-dangling-fraction,omitempty"`
	// Discriminator overrides the synthesized discriminator property name
	Discriminator string `yaml:"discriminator,omitempty"`
	// MetaValidation enables meta-schema validation of every root document
	MetaValidation bool `yaml:"meta-validation,omitempty"`
}

// RunResult contains the result of executing a single scenario.
type RunResult struct {
	// Scenario is the scenario that was executed
	Scenario *Scenario
	// Result is the analysis output, nil when the run failed fatally
	Result *pipeline.Result
	// Err is the fatal error returned by the pipeline, if any
	Err error
	// Failures lists every expectation that did not hold
	Failures []string
	// Success indicates whether every expectation held
	Success bool
	// Duration is how long the scenario took to execute
	Duration time.Duration
}

// RunScenario materializes the scenario's corpus, injects its problems,
// runs the analysis pipeline, and checks every expectation.
func RunScenario(t *testing.T, scenario *Scenario, basesDir string) *RunResult {
	t.Helper()

	start := time.Now()
	result := &RunResult{Scenario: scenario}

	// Check if scenario should be skipped
	if scenario.Skip != "" {
		t.Skipf("Skipping: %s", scenario.Skip)
		return result
	}

	docs, err := MaterializeCorpus(scenario, basesDir)
	if err != nil {
		result.Err = err
		result.Failures = append(result.Failures, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	if err := InjectProblems(docs, &scenario.Problems); err != nil {
		result.Err = err
		result.Failures = append(result.Failures, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	res, err := pipeline.Analyze(buildOptions(scenario, docs)...)
	result.Result = res
	result.Err = err
	result.Failures = append(result.Failures, CheckExpect(res, err, &scenario.Expect)...)

	if scenario.Deterministic && err == nil {
		result.Failures = append(result.Failures, checkDeterminism(scenario, docs, res)...)
	}

	result.Success = len(result.Failures) == 0
	result.Duration = time.Since(start)
	return result
}

// MaterializeCorpus assembles the scenario's document set: the base txtar
// archive, if any, overlaid with the scenario's inline documents.
func MaterializeCorpus(scenario *Scenario, basesDir string) (map[string][]byte, error) {
	docs := make(map[string][]byte)

	if scenario.Base != "" {
		path := filepath.Join(basesDir, scenario.Base+".txtar")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Try the name as given (in case the extension was specified)
			path = filepath.Join(basesDir, scenario.Base)
		}
		arch, err := txtar.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("harness: failed to read base corpus %s: %w", scenario.Base, err)
		}
		for _, f := range arch.Files {
			docs[f.Name] = f.Data
		}
	}

	for id, content := range scenario.Documents {
		docs[id] = []byte(content)
	}
	return docs, nil
}

// buildOptions translates the scenario's analysis config into pipeline
// options over the materialized corpus.
func buildOptions(scenario *Scenario, docs map[string][]byte) []pipeline.Option {
	opts := []pipeline.Option{pipeline.WithDocuments(docs)}

	cfg := scenario.Analysis
	if cfg.Workers > 0 {
		opts = append(opts, pipeline.WithWorkers(cfg.Workers))
	}
	if cfg.MaxDanglingFraction != nil {
		opts = append(opts, pipeline.WithMaxDanglingFraction(*cfg.MaxDanglingFraction))
	}
	if cfg.Discriminator != "" {
		opts = append(opts, pipeline.WithDiscriminatorField(cfg.Discriminator))
	}
	if cfg.MetaValidation {
		opts = append(opts, pipeline.WithMetaValidation(true))
	}
	return opts
}

// checkDeterminism re-runs the analysis with a different worker count and
// compares the order-sensitive outputs of both runs.
func checkDeterminism(scenario *Scenario, docs map[string][]byte, first *pipeline.Result) []string {
	workers := scenario.Analysis.Workers
	if workers <= 1 {
		workers = 8
	} else {
		workers = 1
	}

	rerun := *scenario
	rerun.Analysis.Workers = workers
	second, err := pipeline.Analyze(buildOptions(&rerun, docs)...)
	if err != nil {
		return []string{fmt.Sprintf("determinism re-run failed: %v", err)}
	}

	var failures []string
	if len(first.Order) != len(second.Order) {
		failures = append(failures, fmt.Sprintf("determinism: emission order length %d vs %d", len(first.Order), len(second.Order)))
	} else {
		for i := range first.Order {
			if first.Order[i] != second.Order[i] {
				failures = append(failures, fmt.Sprintf("determinism: emission order diverges at %d: %q vs %q", i, first.Order[i], second.Order[i]))
				break
			}
		}
	}
	for _, id := range first.Order {
		if a, b := first.Identifier(id), second.Identifier(id); a != b {
			failures = append(failures, fmt.Sprintf("determinism: identifier for %s differs: %q vs %q", id, a, b))
		}
	}
	if len(first.Issues) != len(second.Issues) {
		failures = append(failures, fmt.Sprintf("determinism: issue count %d vs %d", len(first.Issues), len(second.Issues)))
	} else {
		for i := range first.Issues {
			if first.Issues[i].Code != second.Issues[i].Code {
				failures = append(failures, fmt.Sprintf("determinism: issue %d code differs: %s vs %s", i, first.Issues[i].Code, second.Issues[i].Code))
				break
			}
		}
	}
	return failures
}
