// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		ConfidenceLevels string `yaml:"confidence_levels"`
		Checks           string `yaml:"checks"`
		SchemaVariant    string `yaml:"schema_variant"`
		Workers          int    `yaml:"workers"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		NoColor          bool   `yaml:"no_color"`
		MatchesOnly      bool   `yaml:"matches_only"`
	} `yaml:"defaults"`

	// Reference list file overrides; empty entries use the embedded defaults
	Reference struct {
		Entities   string `yaml:"entities"`
		Sanctions  string `yaml:"sanctions"`
		Exclusions string `yaml:"exclusions"`
		Categories string `yaml:"categories"`
		Places     string `yaml:"places"`
	} `yaml:"reference"`

	// SchemaFile optionally adds or overrides schema variants
	SchemaFile string `yaml:"schema_file"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a scanning profile with specific settings
type Profile struct {
	Format           string `yaml:"format"`
	ConfidenceLevels string `yaml:"confidence_levels"`
	Checks           string `yaml:"checks"`
	MatchesOnly      bool   `yaml:"matches_only"`
	Verbose          bool   `yaml:"verbose"`
	NoColor          bool   `yaml:"no_color"`
	Description      string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.ConfidenceLevels = "all"
	config.Defaults.Checks = "all"
	config.Defaults.SchemaVariant = "v101"
	config.Defaults.Workers = 0 // auto

	// Default profiles: full screening vs. high-confidence triage
	config.Profiles["screening"] = Profile{
		Format:           "json",
		ConfidenceLevels: "all",
		Checks:           "all",
		Description:      "Full detector set with every verdict emitted for downstream storage",
	}
	config.Profiles["triage"] = Profile{
		Format:           "text",
		ConfidenceLevels: "high",
		Checks:           "all",
		MatchesOnly:      true,
		Description:      "High-confidence matches only, for manual review queues",
	}

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	for _, candidate := range []string{
		"config.yaml",
		"origin-scan.yaml",
		"origin-scan.yml",
		".origin-scan.yaml",
		".origin-scan.yml",
	} {
		if fileExists(candidate) {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(xdgConfig, "origin-scan", "config.yaml")
	if fileExists(candidate) {
		return candidate
	}
	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it
// returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing or
		// bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
