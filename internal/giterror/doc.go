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

// Package giterror classifies errors returned by the GitHub API into the
// failure categories the exporter distinguishes: authentication failures,
// missing repositories, rate limit rejections, and network problems.
//
// The GraphQL client's error values carry GitHub's message strings, so the
// classifier matches on well-known substrings and HTTP status codes embedded
// in those messages.
package giterror
