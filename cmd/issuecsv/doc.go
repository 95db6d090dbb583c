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

// Package main implements the issuecsv command-line interface. The tool
// exports a GitHub repository's issues to a CSV file via the GraphQL API.
//
// The CLI supports:
//   - cursor-based pagination through the full issue list
//   - custom GraphQL endpoints for GitHub Enterprise
//   - YAML configuration files with per-repository page-size overrides
//   - an extended column set matching the upstream issue query
//
// Exit codes distinguish failure categories for scripting:
//
//	0  success
//	1  unexpected error
//	2  authentication failure
//	3  network failure
//	4  query rejected by GitHub (not found, rate limit, malformed)
//	5  output file could not be written
package main
