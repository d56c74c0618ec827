// Package config loads the optional .kavyalint.yaml file that tunes linter
// runs for a corpus checkout. Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is looked up in the corpus root when no --config is given.
const DefaultFilename = ".kavyalint.yaml"

// Config holds per-checkout linter settings.
type Config struct {
	// Exclude lists glob patterns (matched against slash-separated paths
	// relative to the corpus root) for files the linter must skip.
	Exclude []string `yaml:"exclude"`
	// Jobs is the number of files linted concurrently. 0 means single-file.
	Jobs int `yaml:"jobs"`
	// Color toggles ANSI colors in the report. Defaults to on.
	Color *bool `yaml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads a config file. A missing file at the default location is not an
// error; a missing explicit path is.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("config %s: jobs must not be negative", path)
	}
	return &cfg, nil
}

// ColorEnabled reports whether colored output is on.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Excluded reports whether the relative path matches an exclude pattern.
// Patterns match either the full relative path or its base name.
func (c *Config) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range c.Exclude {
		if ok, err := filepath.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}
