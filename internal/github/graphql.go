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
	"io"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"

	icsverrors "github.com/repometrics/issuecsv/internal/errors"
	"github.com/repometrics/issuecsv/internal/giterror"
	"github.com/repometrics/issuecsv/pkg/version"
)

// maxResponseBytes limits GraphQL response bodies to guard against
// pathological payloads.
const maxResponseBytes = 10 * 1024 * 1024

// GraphQLClient implements the GitHub Client interface using the GraphQL API.
// It provides cursor-paginated access to a repository's issues with error
// classification and safety limits on response size.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint. The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Connection pooling tuned for sequential page fetches
//
// The token is held only by the transport; it is never logged or echoed.
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		inspector: giterror.NewInspector(),
	}
}

// GetRepositoryInfo retrieves basic repository metadata including total
// issue count. It executes a minimal GraphQL query to get just the total
// count of issues, used for the start-of-run banner and progress tracking.
func (c *GraphQLClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			Issues struct {
				TotalCount graphql.Int
			} `graphql:"issues"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	return &RepositoryInfo{
		TotalIssues: int(query.Repository.Issues.TotalCount),
	}, nil
}

// FetchIssues fetches a page of issues from the specified repository. It
// supports cursor-based pagination via the opts.After parameter and
// configurable page sizes through opts.PageSize. The returned IssuePage
// carries the issues in the order GitHub returned them plus the pagination
// information needed to fetch subsequent pages.
func (c *GraphQLClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var query struct {
		Repository struct {
			Issues struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []struct {
					Number      graphql.Int
					Title       graphql.String
					State       graphql.String
					StateReason graphql.String
					CreatedAt   time.Time
					UpdatedAt   time.Time
					ClosedAt    *time.Time
					Labels      struct {
						Nodes []struct {
							Name graphql.String
						}
					} `graphql:"labels(first: 10)"`
				}
			} `graphql:"issues(first: $first, after: $after)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		variables["after"] = graphql.NewString(graphql.String(opts.After))
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &IssuePage{
		HasNextPage: bool(query.Repository.Issues.PageInfo.HasNextPage),
		EndCursor:   string(query.Repository.Issues.PageInfo.EndCursor),
		Issues:      make([]Issue, 0, len(query.Repository.Issues.Nodes)),
	}

	for _, node := range query.Repository.Issues.Nodes {
		issue := Issue{
			Number:      int(node.Number),
			Title:       string(node.Title),
			State:       string(node.State),
			StateReason: string(node.StateReason),
			CreatedAt:   node.CreatedAt,
			UpdatedAt:   node.UpdatedAt,
			ClosedAt:    node.ClosedAt,
		}

		issue.Labels = make([]string, 0, len(node.Labels.Nodes))
		for _, label := range node.Labels.Nodes {
			issue.Labels = append(issue.Labels, string(label.Name))
		}

		page.Issues = append(page.Issues, issue)
	}

	return page, nil
}

// mapError maps GraphQL errors to the exporter's domain errors with
// actionable messages.
func (c *GraphQLClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	switch c.inspector.Classify(err) {
	case giterror.KindRateLimit:
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", icsverrors.ErrRateLimit)
	case giterror.KindAuth:
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or the token environment variable: %w", icsverrors.ErrInvalidToken)
	case giterror.KindNotFound:
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, icsverrors.ErrRepoNotFound)
	case giterror.KindNetwork:
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", icsverrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("GitHub query failed: %v: %w", err, icsverrors.ErrQueryFailed)
	}
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds the authorization header and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("issuecsv/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseBytes,
		}
	}

	return resp, nil
}
