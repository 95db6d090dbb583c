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

// Package config types define the configuration structures used throughout
// issuecsv. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for issuecsv. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	GitHub       GitHubConfig          `yaml:"github"`
	Defaults     DefaultsConfig        `yaml:"defaults"`
	Repositories map[string]RepoConfig `yaml:"repositories"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and authentication configuration. A custom endpoint allows easy
// configuration for GitHub Enterprise deployments.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all export
// operations unless overridden by repository-specific settings or
// command-line flags.
type DefaultsConfig struct {
	PageSize int `yaml:"page_size"`
}

// RepoConfig contains repository-specific overrides that allow fine-tuning
// export behavior for individual repositories, such as a smaller page size
// for repositories with very long issue titles or many labels.
type RepoConfig struct {
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults target public GitHub.com but can be overridden
// for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize: 100,
		},
		Repositories: make(map[string]RepoConfig),
	}
}
