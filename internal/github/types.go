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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

import "time"

// Issue represents a GitHub issue with the metadata the exporter emits.
// ClosedAt is nil while the issue is still open. StateReason distinguishes
// COMPLETED from NOT_PLANNED closures and is empty for open issues.
type Issue struct {
	Number      int
	Title       string
	State       string
	StateReason string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	Labels      []string
}

// IssuePage represents one page of issues from a GraphQL query. It includes
// the issues for the current page and the pagination information needed to
// fetch subsequent pages, enabling streaming without loading all issues into
// memory at once.
type IssuePage struct {
	Issues      []Issue
	HasNextPage bool
	EndCursor   string
}

// FetchOptions configures how issues are fetched. It supports pagination
// through the After cursor field and allows customization of the page size
// for each request.
type FetchOptions struct {
	// PageSize controls how many issues to fetch per page.
	// Defaults to 100 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use IssuePage.EndCursor from the previous response for the next page.
	After string
}

// Default values for fetch operations
const (
	defaultPageSize = 100
	maxPageSize     = 100
)

// RepositoryInfo contains basic repository metadata. Used to get the total
// issue count for the start-of-run banner and progress tracking.
type RepositoryInfo struct {
	TotalIssues int
}
