package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of an optional tsplit config file. Zero
// values mean "not set" and leave the existing config untouched.
type fileConfig struct {
	User             string   `yaml:"user"`
	Project          string   `yaml:"project"`
	Branch           string   `yaml:"branch"`
	ArtifactPattern  string   `yaml:"artifact_pattern"`
	APIBaseURL       string   `yaml:"api_base_url"`
	DefaultWeightMS  int64    `yaml:"default_weight_ms"`
	BuildLimit       int      `yaml:"build_limit"`
	FetchConcurrency int      `yaml:"fetch_concurrency"`
	TestExtensions   []string `yaml:"test_extensions"`
	PathsToIgnore    []string `yaml:"paths_to_ignore"`
}

// LoadFile overlays values from a YAML config file onto the config.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.User != "" {
		c.User = fc.User
	}
	if fc.Project != "" {
		c.Project = fc.Project
	}
	if fc.Branch != "" {
		c.Branch = fc.Branch
	}
	if fc.ArtifactPattern != "" {
		c.ArtifactPattern = fc.ArtifactPattern
	}
	if fc.APIBaseURL != "" {
		c.APIBaseURL = fc.APIBaseURL
	}
	if fc.DefaultWeightMS > 0 {
		c.DefaultWeight = time.Duration(fc.DefaultWeightMS) * time.Millisecond
	}
	if fc.BuildLimit > 0 {
		c.BuildLimit = fc.BuildLimit
	}
	if fc.FetchConcurrency > 0 {
		c.FetchConcurrency = fc.FetchConcurrency
	}
	if len(fc.TestExtensions) > 0 {
		c.TestExtensions = fc.TestExtensions
	}
	if len(fc.PathsToIgnore) > 0 {
		c.PathsToIgnore = fc.PathsToIgnore
	}
	return nil
}
