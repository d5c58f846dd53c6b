//go:build integration

package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// LoadScenario loads a single scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to read scenario file %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("harness: failed to parse scenario file %s: %w", path, err)
	}

	scenario.filePath = path

	// Validate the scenario
	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("harness: invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadAllScenarios loads all scenarios from a directory recursively.
func LoadAllScenarios(dir string) ([]*Scenario, error) {
	var scenarios []*Scenario

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		scenario, err := LoadScenario(path)
		if err != nil {
			return err
		}

		scenarios = append(scenarios, scenario)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("harness: failed to load scenarios from %s: %w", dir, err)
	}

	return scenarios, nil
}

// ValidateScenario validates a scenario's structure and required fields.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}

	if s.Base == "" && len(s.Documents) == 0 && !s.Problems.injectsDocuments() {
		return fmt.Errorf("scenario '%s' must have a base corpus, inline documents, or document-producing problems", s.Name)
	}

	for id := range s.Documents {
		if strings.HasPrefix(id, "/") || strings.Contains(id, "..") {
			return fmt.Errorf("scenario '%s': document ID %q must be a corpus-relative path", s.Name, id)
		}
	}

	if err := validateExpect(&s.Expect); err != nil {
		return fmt.Errorf("scenario '%s': %w", s.Name, err)
	}

	if s.Expect.FatalError != "" && s.Deterministic {
		return fmt.Errorf("scenario '%s': deterministic runs cannot expect a fatal error", s.Name)
	}

	return nil
}

// validateExpect rejects label values no run can produce, so a typo in a
// scenario fails loading instead of silently failing its assertions.
func validateExpect(e *Expect) error {
	validHandling := map[string]bool{
		"acyclic":               true,
		"break_via_indirection": true,
		"break_via_optional":    true,
		"unresolvable":          true,
	}
	for id, label := range e.Handling {
		if !validHandling[label] {
			return fmt.Errorf("unknown handling label %q for %s", label, id)
		}
	}

	validKinds := map[string]bool{
		"struct":              true,
		"enum":                true,
		"discriminated_union": true,
		"newtype":             true,
		"collection":          true,
		"map":                 true,
		"alias":               true,
	}
	for id, label := range e.Kinds {
		if !validKinds[label] {
			return fmt.Errorf("unknown kind label %q for %s", label, id)
		}
	}

	validEmit := map[string]bool{
		"eager":      true,
		"deferred":   true,
		"alias_only": true,
	}
	for id, label := range e.Emit {
		if !validEmit[label] {
			return fmt.Errorf("unknown emit label %q for %s", label, id)
		}
	}

	return nil
}

// ScenarioPath returns the relative path of the scenario file for display.
func ScenarioPath(s *Scenario, baseDir string) string {
	if s.filePath == "" {
		return s.Name
	}
	rel, err := filepath.Rel(baseDir, s.filePath)
	if err != nil {
		return s.filePath
	}
	return rel
}

// ScenarioTestName returns a test-friendly name for the scenario.
func ScenarioTestName(s *Scenario, baseDir string) string {
	// Use the relative path without extension as the test name
	path := ScenarioPath(s, baseDir)
	// Remove .yaml/.yml extension
	path = strings.TrimSuffix(path, ".yaml")
	path = strings.TrimSuffix(path, ".yml")
	// Replace path separators with /
	path = strings.ReplaceAll(path, string(filepath.Separator), "/")
	return path
}
