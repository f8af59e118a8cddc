package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one generator conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sources maps file names to Go source content. The files are
	// materialized into a fresh directory before scanning.
	Sources map[string]string `yaml:"sources"`

	// Expect describes the diagnostics the compiler must report.
	// Empty means the scenario must compile cleanly.
	Expect Expectation `yaml:"expect,omitempty"`

	// Golden names the golden file the emitted source must match.
	// Required exactly when Expect.Diagnostics is empty.
	Golden string `yaml:"golden,omitempty"`
}

// Expectation lists required compile diagnostics.
type Expectation struct {
	Diagnostics []ExpectedDiagnostic `yaml:"diagnostics,omitempty"`
}

// ExpectedDiagnostic matches one reported diagnostic by code and
// field.
type ExpectedDiagnostic struct {
	Code  string `yaml:"code"`
	Field string `yaml:"field"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Sources) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one source file is required", s.Name)
	}
	hasDiags := len(s.Expect.Diagnostics) > 0
	if hasDiags == (s.Golden != "") {
		return nil, fmt.Errorf("scenario %s: declare either expected diagnostics or a golden name, not both", s.Name)
	}
	return &s, nil
}

// LoadScenarios loads every .yaml scenario under dir, sorted by file
// name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", dir)
	}
	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// materialize writes the scenario sources into dir.
func (s *Scenario) materialize(dir string) error {
	for name, content := range s.Sources {
		if filepath.Base(name) != name {
			return fmt.Errorf("scenario %s: source name %q must be a bare file name", s.Name, name)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("scenario %s: write %s: %w", s.Name, name, err)
		}
	}
	return nil
}
