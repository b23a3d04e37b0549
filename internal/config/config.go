// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Charter string `json:"charter,omitempty"` // Path to charter JSON/YAML file
	OutDir  string `json:"out_dir,omitempty"` // Directory for generated artifacts

	// Synthesis
	Unresolved string `json:"unresolved,omitempty"` // "keep" or "sentinel"
	Format     string `json:"format,omitempty"`     // Export format (json, latex, markdown, html)

	// Advisory service
	Provider string `json:"provider,omitempty"` // gemini or openai
	APIKey   string `json:"api_key,omitempty"`  // Provider API key

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Unresolved) {
	case "", "keep", "sentinel":
	default:
		return fmt.Errorf("config error: 'unresolved' must be \"keep\" or \"sentinel\", got %q", c.Unresolved)
	}

	switch strings.ToLower(c.Provider) {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("config error: unsupported 'provider' %q", c.Provider)
	}

	if c.Charter != "" {
		if _, err := os.Stat(c.Charter); os.IsNotExist(err) {
			return fmt.Errorf("config error: charter file not found: %s", c.Charter)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Charter == "" {
		result.Charter = defaults.Charter
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Unresolved == "" {
		result.Unresolved = defaults.Unresolved
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
