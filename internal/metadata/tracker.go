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

// Package metadata records statistics about export runs. A Tracker is
// created at the start of a run, fed as pages arrive, and its final record
// is saved as JSON next to the CSV output. The record serves as an audit
// trail: which repository was exported, with which parameters, how many
// API calls it took, and how long it ran.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// QueryVersion identifies the GraphQL query shape used by this build.
const QueryVersion = "graphql-issues-v1"

// Tracker collects statistics during an export run.
// Create one at the start of a run and call its methods as pages arrive.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	pages        int
	totalIssues  int
	firstIssue   int
	lastIssue    int
}

// New creates a tracker initialized with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records that an API call was made. Call this after each
// GitHub request, including the total-count pre-query.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// RecordPage records one fetched page and updates the issue-number range
// from the issue numbers it contained.
func (t *Tracker) RecordPage(issueNumbers []int) {
	t.pages++
	t.totalIssues += len(issueNumbers)

	for _, n := range issueNumbers {
		if t.firstIssue == 0 || n < t.firstIssue {
			t.firstIssue = n
		}
		if n > t.lastIssue {
			t.lastIssue = n
		}
	}
}

// Generate creates the final metadata record for a completed run.
func (t *Tracker) Generate(toolVersion string, params ExportParams) *ExportMetadata {
	completedAt := time.Now()

	return &ExportMetadata{
		ToolVersion:  toolVersion,
		QueryVersion: QueryVersion,
		Parameters:   params,
		Results: ExportResults{
			TotalIssues:  t.totalIssues,
			FirstIssue:   t.firstIssue,
			LastIssue:    t.lastIssue,
			Pages:        t.pages,
			APICallCount: t.apiCallCount,
			Duration:     completedAt.Sub(t.startTime).String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
	}
}

// Save writes the metadata record as indented JSON to the given path.
func Save(meta *ExportMetadata, path string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", path, err)
	}
	return nil
}
