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

// Package metadata types define the structures used for recording and
// persisting information about export runs.
package metadata

import (
	"time"
)

// ExportMetadata is the complete record of a single export run. It captures
// what was exported, how, and the results, and is written as JSON alongside
// the CSV so external tooling can audit export history.
type ExportMetadata struct {
	ToolVersion  string        `json:"tool_version"`
	QueryVersion string        `json:"query_version"`
	Parameters   ExportParams  `json:"parameters"`
	Results      ExportResults `json:"results"`
}

// ExportParams captures the input parameters used for an export run,
// preserved to enable reproducible exports and debugging.
type ExportParams struct {
	Organization string `json:"organization"`
	Repository   string `json:"repository"`
	PageSize     int    `json:"page_size"`
	MaxPages     int    `json:"max_pages,omitempty"`
	FullColumns  bool   `json:"full_columns"`
}

// ExportResults contains statistics about a completed export run: issue and
// page counts, API usage, and timing.
type ExportResults struct {
	TotalIssues  int       `json:"total_issues"`
	FirstIssue   int       `json:"first_issue_number"`
	LastIssue    int       `json:"last_issue_number"`
	Pages        int       `json:"pages_fetched"`
	APICallCount int       `json:"api_calls_made"`
	Duration     string    `json:"export_duration"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
