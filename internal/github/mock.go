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

package github

import (
	"context"
	"fmt"
	"time"

	icsverrors "github.com/repometrics/issuecsv/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for
// testing. Pages are served in order, one per FetchIssues call; FailOnPage
// makes a specific call fail so pagination abort behavior can be tested.
type MockClient struct {
	// Pages returned in order, one per FetchIssues call.
	Pages []IssuePage

	// FailOnPage makes the Nth FetchIssues call (1-based) return FailWith.
	// Zero disables the failure.
	FailOnPage int
	FailWith   error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool

	// Info returned by GetRepositoryInfo. If nil, the total is derived from Pages.
	Info *RepositoryInfo

	// Track calls for verification
	FetchCalls int
	InfoCalls  int
	LastOwner  string
	LastRepo   string
	LastOpts   FetchOptions
}

// NewMockClient creates a new mock client with a single page of test data.
func NewMockClient() *MockClient {
	return &MockClient{
		Pages: []IssuePage{{Issues: generateTestIssues()}},
	}
}

// FetchIssues implements the Client interface.
func (m *MockClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	m.FetchCalls++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", icsverrors.ErrInvalidToken)
	}

	if m.ShouldFailNotFound {
		return nil, fmt.Errorf("repository not found: %w", icsverrors.ErrRepoNotFound)
	}

	if m.FailOnPage > 0 && m.FetchCalls == m.FailOnPage {
		err := m.FailWith
		if err == nil {
			err = fmt.Errorf("network timeout: %w", icsverrors.ErrNetworkFailure)
		}
		return nil, err
	}

	if m.FetchCalls > len(m.Pages) {
		return &IssuePage{}, nil
	}

	page := m.Pages[m.FetchCalls-1]
	return &page, nil
}

// GetRepositoryInfo implements the Client interface.
func (m *MockClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	m.InfoCalls++

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", icsverrors.ErrInvalidToken)
	}

	if m.ShouldFailNotFound {
		return nil, fmt.Errorf("repository not found: %w", icsverrors.ErrRepoNotFound)
	}

	if m.Info != nil {
		return m.Info, nil
	}

	total := 0
	for _, page := range m.Pages {
		total += len(page.Issues)
	}
	return &RepositoryInfo{TotalIssues: total}, nil
}

// generateTestIssues creates sample issue data for testing
func generateTestIssues() []Issue {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []Issue{
		{
			Number:    101,
			Title:     "Crash when importing STEP files",
			State:     "OPEN",
			CreatedAt: lastWeek,
			UpdatedAt: now,
			Labels:    []string{"bug", "import"},
		},
		{
			Number:      100,
			Title:       "Sketcher constraint solver hangs",
			State:       "CLOSED",
			StateReason: "COMPLETED",
			CreatedAt:   lastWeek,
			UpdatedAt:   yesterday,
			ClosedAt:    &yesterday,
			Labels:      []string{"bug"},
		},
		{
			Number:    99,
			Title:     "Update build documentation",
			State:     "OPEN",
			CreatedAt: yesterday,
			UpdatedAt: yesterday,
		},
	}
}
