//go:build integration

package harness

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// PrintScenarioHeader prints the header for a scenario.
func PrintScenarioHeader(t *testing.T, scenario *Scenario) {
	t.Helper()

	t.Logf("")
	t.Logf("Scenario: %s", scenario.Name)
	if scenario.Description != "" {
		t.Logf("  %s", scenario.Description)
	}
	if scenario.Base != "" {
		t.Logf("  Base: %s", scenario.Base)
	}
	if len(scenario.Documents) > 0 {
		t.Logf("  Inline documents: %d", len(scenario.Documents))
	}
	t.Logf("")
}

// PrintRunResult prints the result of a single scenario run to the test
// output.
func PrintRunResult(t *testing.T, result *RunResult) {
	t.Helper()

	// Build status indicator
	var status string
	if result.Success {
		status = "PASS"
	} else {
		status = "FAIL"
	}

	// Build extra info from the analysis output
	var extra string
	if res := result.Result; res != nil {
		extra = fmt.Sprintf(" - %d nodes, %d edges, %d groups", res.Stats.Nodes, res.Stats.Edges, res.Stats.Groups)
		if res.Stats.CyclicGroups > 0 {
			extra += fmt.Sprintf(", %d cyclic", res.Stats.CyclicGroups)
		}
		if !res.Success {
			extra += fmt.Sprintf(", %d errors", res.ErrorCount)
		}
	}

	t.Logf("    %s %s (%s)%s", status, result.Scenario.Name, formatDuration(result.Duration), extra)

	// Print fatal error details
	if result.Err != nil {
		t.Logf("        Pipeline error: %v", result.Err)
	}

	// Print expectation failures
	for _, failure := range result.Failures {
		t.Logf("        Expectation failed: %s", failure)
	}
}

// PrintSummary prints a summary of all scenario results.
func PrintSummary(t *testing.T, results []*RunResult, duration time.Duration) {
	t.Helper()

	passed := 0
	failed := 0
	skipped := 0

	for _, r := range results {
		if r.Scenario.Skip != "" {
			skipped++
		} else if r.Success {
			passed++
		} else {
			failed++
		}
	}

	t.Logf("")
	t.Logf("%s", strings.Repeat("=", 80))
	t.Logf("INTEGRATION TEST SUMMARY")
	t.Logf("%s", strings.Repeat("=", 80))
	t.Logf("Scenarios:  %d passed, %d failed, %d skipped", passed, failed, skipped)
	t.Logf("Duration:   %s", formatDuration(duration))
	t.Logf("%s", strings.Repeat("=", 80))

	// List failed scenarios
	if failed > 0 {
		t.Logf("")
		t.Logf("Failed scenarios:")
		for _, r := range results {
			if !r.Success && r.Scenario.Skip == "" {
				t.Logf("  - %s: %d failed expectations", r.Scenario.Name, len(r.Failures))
			}
		}
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
