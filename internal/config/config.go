// Package config loads the optional per-repository smartlog configuration,
// stored next to the rest of the repository metadata in the .git directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "smartlog.yml"

type Config struct {
	Remote struct {
		// Head overrides trunk detection, e.g. "origin/main".
		Head string `yaml:"head"`
	} `yaml:"remote"`
	// Days overrides the age cutoff for displayed commits.
	Days int `yaml:"days"`
	// ExtraRefs lists additional references to display, e.g. a release branch.
	ExtraRefs []string `yaml:"extra_refs"`
}

// Path returns where the configuration is expected inside gitDir.
func Path(gitDir string) string {
	return filepath.Join(gitDir, fileName)
}

// Load reads the configuration from gitDir. A missing file yields the zero
// Config; a malformed one is an error.
func Load(gitDir string) (Config, error) {
	raw, err := os.ReadFile(Path(gitDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", fileName, err)
	}
	if cfg.Days < 0 {
		return Config{}, fmt.Errorf("%s: days must not be negative", fileName)
	}
	return cfg, nil
}
