package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in each scanned directory.
const ConfigFileName = ".templet.yaml"

// Config holds per-directory generation settings. All fields are
// optional; flags override config values.
type Config struct {
	// Manifest is where to write the generation manifest, relative to
	// the scanned directory. Empty disables the manifest.
	Manifest string `yaml:"manifest,omitempty"`
	// OutputFile overrides the generated file's base name.
	OutputFile string `yaml:"output_file,omitempty"`
}

// LoadConfig reads .templet.yaml from dir. A missing file is not an
// error; it yields the zero config.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
