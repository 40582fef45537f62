// Package configfile reads and writes the project-level .tickets/config.yaml.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the on-disk shape of .tickets/config.yaml.
type ProjectConfig struct {
	// Db overrides the document path for this project.
	Db string `yaml:"db,omitempty"`
	// Json makes every command emit JSON by default.
	Json bool `yaml:"json,omitempty"`
	// LockTimeout bounds how long commands wait on the document lock.
	LockTimeout string `yaml:"lock-timeout,omitempty"`
}

// Path returns the config file path inside a .tickets directory.
func Path(ticketsDir string) string {
	return filepath.Join(ticketsDir, "config.yaml")
}

// Load reads the project config. A missing file yields a zero config.
func Load(ticketsDir string) (*ProjectConfig, error) {
	data, err := os.ReadFile(Path(ticketsDir))
	if os.IsNotExist(err) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(ticketsDir), err)
	}
	return &cfg, nil
}

// Save writes the project config.
func Save(ticketsDir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(ticketsDir), data, 0o644)
}
