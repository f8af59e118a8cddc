// Package manifest records the provenance of a generation run.
//
// templet writes a YAML manifest next to nothing in particular — the
// caller chooses the path — listing every generated file and the
// content-addressed hash of each template spec that produced it. The
// manifest is how downstream tooling answers "what produced this
// file, and from which declaration state".
package manifest

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Version is the manifest schema version.
const Version = "1"

// Manifest is one generation run's provenance record.
type Manifest struct {
	Version string `yaml:"version"`
	// RunID is a UUIDv7, so manifests sort chronologically by ID.
	RunID    string          `yaml:"run_id"`
	Packages []PackageRecord `yaml:"packages"`
}

// PackageRecord describes the generation output for one package.
type PackageRecord struct {
	Dir       string           `yaml:"dir"`
	Package   string           `yaml:"package"`
	File      string           `yaml:"file"`
	Templates []TemplateRecord `yaml:"templates"`
}

// TemplateRecord describes one compiled template model.
type TemplateRecord struct {
	Name     string `yaml:"name"`
	Output   string `yaml:"output"`
	SpecHash string `yaml:"spec_hash"`
}

// New creates an empty manifest with a fresh run ID.
func New() *Manifest {
	return &Manifest{
		Version: Version,
		RunID:   uuid.Must(uuid.NewV7()).String(),
	}
}

// Write marshals the manifest to path.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest back from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("manifest %s: unsupported version %q", path, m.Version)
	}
	return &m, nil
}
