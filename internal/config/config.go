// Copyright 2025 RepoMetrics, Inc.
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for issuecsv with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Repository-specific configuration
//  4. Global configuration file
//  5. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. Repository-specific
// overrides allow different page sizes per repository.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// maxPageSize is the largest page GitHub's GraphQL API will serve.
const maxPageSize = 100

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .issuecsv.yaml (current directory)
//   - .issuecsv.yml (current directory)
//   - ~/.issuecsv/config.yaml
//   - ~/.issuecsv/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".issuecsv.yaml",
			".issuecsv.yml",
			filepath.Join(os.Getenv("HOME"), ".issuecsv", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".issuecsv", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadConfigForRepo loads configuration and applies repository-specific
// overrides. This allows different settings for different repositories.
// The repo parameter should be in "owner/repo" format.
func LoadConfigForRepo(configPath, repo string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if repoConfig, ok := cfg.Repositories[repo]; ok {
		if repoConfig.PageSize > 0 {
			cfg.Defaults.PageSize = repoConfig.PageSize
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	if pageSize := os.Getenv("ISSUECSV_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// GetPageSize returns the effective page size for a repository, taking into
// account repository-specific overrides. If the repository has a specific
// page size configured, it returns that value. Otherwise, it returns the
// default page size.
func (c *Config) GetPageSize(repo string) int {
	if repoConfig, ok := c.Repositories[repo]; ok && repoConfig.PageSize > 0 {
		return repoConfig.PageSize
	}
	return c.Defaults.PageSize
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits and endpoints are not empty. This
// should be called after loading configuration to catch invalid settings
// early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > maxPageSize {
		return fmt.Errorf("default page size %d exceeds GitHub API limit of %d", c.Defaults.PageSize, maxPageSize)
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty")
	}
	return nil
}
