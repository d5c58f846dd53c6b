//go:build integration

// Package integration provides integration tests for schemagraph. These
// tests exercise the full analysis pipeline over small corpora using
// declarative YAML scenarios.
//
// Run with: go test -tags=integration ./integration/... -v
// Or: make integration-test
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/integration/harness"
	"github.com/erraggy/schemagraph/pipeline"
)

// getIntegrationDir returns the absolute path to the integration directory.
func getIntegrationDir(t *testing.T) string {
	t.Helper()

	// Try to find the integration directory relative to the test file
	// This works whether running from repo root or integration directory
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	// Check if we're in the integration directory
	if filepath.Base(wd) == "integration" {
		return wd
	}

	// Check if integration directory exists relative to working directory
	integrationDir := filepath.Join(wd, "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	// Fall back to parent directory check
	integrationDir = filepath.Join(filepath.Dir(wd), "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	require.Failf(t, "could not find integration directory", "from %s", wd)
	return ""
}

// TestBasesAreValid verifies that every base corpus analyzes cleanly.
func TestBasesAreValid(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	basesDir := filepath.Join(integrationDir, "bases")

	bases := []struct {
		name      string
		documents int
		nodes     int
		edges     int
	}{
		{"petstore.txtar", 5, 7, 7},
		{"familiar.txtar", 8, 8, 7},
	}

	for _, base := range bases {
		t.Run(base.name, func(t *testing.T) {
			res, err := pipeline.Analyze(
				pipeline.WithArchive(filepath.Join(basesDir, base.name)),
			)
			require.NoError(t, err, "failed to analyze %s", base.name)

			harness.AssertNoIssues(t, res)
			assert.Equal(t, base.documents, res.Stats.Documents)
			assert.Equal(t, base.nodes, res.Stats.Nodes)
			assert.Equal(t, base.edges, res.Stats.Edges)

			// Log stats for informational purposes
			t.Logf("  Documents: %d (+%d definitions)", res.Stats.Documents, res.Stats.Definitions)
			t.Logf("  Nodes: %d", res.Stats.Nodes)
			t.Logf("  Edges: %d", res.Stats.Edges)
			t.Logf("  Groups: %d (%d cyclic)", res.Stats.Groups, res.Stats.CyclicGroups)
		})
	}
}

// TestScenarios runs all scenarios from the scenarios directory.
func TestScenarios(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	scenariosDir := filepath.Join(integrationDir, "scenarios")
	basesDir := filepath.Join(integrationDir, "bases")

	// Load all scenarios
	scenarios, err := harness.LoadAllScenarios(scenariosDir)
	require.NoError(t, err, "failed to load scenarios")

	if len(scenarios) == 0 {
		t.Skip("no scenarios found")
	}

	t.Logf("Found %d scenarios", len(scenarios))

	var results []*harness.RunResult
	start := time.Now()

	for _, scenario := range scenarios {
		testName := harness.ScenarioTestName(scenario, scenariosDir)
		t.Run(testName, func(t *testing.T) {
			harness.PrintScenarioHeader(t, scenario)
			result := harness.RunScenario(t, scenario, basesDir)
			results = append(results, result)
			harness.PrintRunResult(t, result)

			assert.True(t, result.Success, "scenario failed with %d unmet expectations", len(result.Failures))
		})
	}

	// Print summary
	harness.PrintSummary(t, results, time.Since(start))
}

// TestInputModesAgree analyzes the same corpus through the archive input
// and the in-memory document input and requires identical results.
func TestInputModesAgree(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	basesDir := filepath.Join(integrationDir, "bases")

	fromArchive, err := pipeline.Analyze(
		pipeline.WithArchive(filepath.Join(basesDir, "petstore.txtar")),
	)
	require.NoError(t, err, "archive analysis failed")
	harness.AssertSuccess(t, fromArchive)

	scenario := &harness.Scenario{Name: "petstore", Base: "petstore"}
	docs, err := harness.MaterializeCorpus(scenario, basesDir)
	require.NoError(t, err, "materializing corpus failed")

	fromDocs, err := pipeline.Analyze(pipeline.WithDocuments(docs))
	require.NoError(t, err, "document analysis failed")

	assert.Equal(t, fromArchive.Order, fromDocs.Order, "emission order differs between input modes")
	for _, id := range fromArchive.Order {
		harness.AssertIdentifier(t, fromDocs, id, fromArchive.Identifier(id))
	}
	harness.AssertHandling(t, fromDocs, "entities/pet.json", "break_via_optional")
	harness.AssertOrderBefore(t, fromDocs, "entities/tag.json", "entities/pet.json")
}
