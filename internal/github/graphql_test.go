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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	icsverrors "github.com/repometrics/issuecsv/internal/errors"
)

// graphqlRequest captures the body shurcooL/graphql posts to the endpoint.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func issuesResponse(hasNextPage bool, endCursor string, nodes ...map[string]interface{}) map[string]interface{} {
	if nodes == nil {
		nodes = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"issues": map[string]interface{}{
					"pageInfo": map[string]interface{}{
						"hasNextPage": hasNextPage,
						"endCursor":   endCursor,
					},
					"nodes": nodes,
				},
			},
		},
	}
}

func issueNode(number int, title, createdAt string, closedAt interface{}, labels ...string) map[string]interface{} {
	labelNodes := make([]map[string]interface{}, 0, len(labels))
	for _, l := range labels {
		labelNodes = append(labelNodes, map[string]interface{}{"name": l})
	}
	state := "OPEN"
	stateReason := interface{}(nil)
	if closedAt != nil {
		state = "CLOSED"
		stateReason = "COMPLETED"
	}
	return map[string]interface{}{
		"number":      number,
		"title":       title,
		"state":       state,
		"stateReason": stateReason,
		"createdAt":   createdAt,
		"updatedAt":   createdAt,
		"closedAt":    closedAt,
		"labels":      map[string]interface{}{"nodes": labelNodes},
	}
}

func TestGraphQLClient_FetchIssues(t *testing.T) {
	var lastRequest graphqlRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &lastRequest); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header = %q, want bearer token", got)
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "issuecsv/") {
			t.Errorf("User-Agent = %q, want issuecsv prefix", r.Header.Get("User-Agent"))
		}

		resp := issuesResponse(true, "cursor-1",
			issueNode(1, "First issue", "2024-01-01T10:00:00Z", nil, "bug", "ui"),
			issueNode(2, "Second issue", "2024-01-02T10:00:00Z", "2024-01-05T12:00:00Z"),
		)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)

	page, err := client.FetchIssues(context.Background(), "freecad", "freecad", FetchOptions{PageSize: 2})
	if err != nil {
		t.Fatalf("FetchIssues failed: %v", err)
	}

	if !page.HasNextPage {
		t.Error("HasNextPage = false, want true")
	}
	if page.EndCursor != "cursor-1" {
		t.Errorf("EndCursor = %q, want cursor-1", page.EndCursor)
	}
	if len(page.Issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(page.Issues))
	}

	first := page.Issues[0]
	if first.Number != 1 || first.Title != "First issue" {
		t.Errorf("first issue = #%d %q, want #1 \"First issue\"", first.Number, first.Title)
	}
	if first.ClosedAt != nil {
		t.Error("open issue should have nil ClosedAt")
	}
	if len(first.Labels) != 2 || first.Labels[0] != "bug" || first.Labels[1] != "ui" {
		t.Errorf("first issue labels = %v, want [bug ui]", first.Labels)
	}

	second := page.Issues[1]
	if second.ClosedAt == nil {
		t.Fatal("closed issue should have ClosedAt set")
	}
	if got := second.ClosedAt.UTC().Format("2006-01-02T15:04:05Z"); got != "2024-01-05T12:00:00Z" {
		t.Errorf("ClosedAt = %s, want 2024-01-05T12:00:00Z", got)
	}
	if second.State != "CLOSED" || second.StateReason != "COMPLETED" {
		t.Errorf("second issue state = %s/%s, want CLOSED/COMPLETED", second.State, second.StateReason)
	}

	// First page must not carry a cursor.
	if after, ok := lastRequest.Variables["after"]; ok && after != nil {
		t.Errorf("first page request carried cursor %v, want null", after)
	}
}

func TestGraphQLClient_FetchIssues_CursorForwarded(t *testing.T) {
	var lastRequest graphqlRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &lastRequest)

		resp := issuesResponse(false, "")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)

	_, err := client.FetchIssues(context.Background(), "freecad", "freecad", FetchOptions{After: "cursor-7"})
	if err != nil {
		t.Fatalf("FetchIssues failed: %v", err)
	}

	if got := lastRequest.Variables["after"]; got != "cursor-7" {
		t.Errorf("after variable = %v, want cursor-7", got)
	}
}

func TestGraphQLClient_GetRepositoryInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"data": map[string]interface{}{
				"repository": map[string]interface{}{
					"issues": map[string]interface{}{
						"totalCount": 4242,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)

	info, err := client.GetRepositoryInfo(context.Background(), "freecad", "freecad")
	if err != nil {
		t.Fatalf("GetRepositoryInfo failed: %v", err)
	}
	if info.TotalIssues != 4242 {
		t.Errorf("TotalIssues = %d, want 4242", info.TotalIssues)
	}
}

func TestGraphQLClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		handler      http.HandlerFunc
		wantSentinel error
	}{
		{
			name: "401 maps to invalid token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
			},
			wantSentinel: icsverrors.ErrInvalidToken,
		},
		{
			name: "graphql not-found error maps to repo not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"errors": [{"message": "Could not resolve to a Repository with the name 'foo/bar'."}]}`))
			},
			wantSentinel: icsverrors.ErrRepoNotFound,
		},
		{
			name: "rate limit payload maps to rate limit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"errors": [{"message": "API rate limit exceeded for installation."}]}`))
			},
			wantSentinel: icsverrors.ErrRateLimit,
		},
		{
			name: "generic graphql error maps to query failed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"errors": [{"message": "Something went wrong while executing your query."}]}`))
			},
			wantSentinel: icsverrors.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewGraphQLClient("test-token", server.URL)

			_, err := client.FetchIssues(context.Background(), "foo", "bar", FetchOptions{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("error %v does not wrap %v", err, tt.wantSentinel)
			}
		})
	}
}

func TestGraphQLClient_NetworkFailure(t *testing.T) {
	// Point the client at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewGraphQLClient("test-token", endpoint)

	_, err := client.FetchIssues(context.Background(), "foo", "bar", FetchOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, icsverrors.ErrNetworkFailure) {
		t.Errorf("error %v does not wrap ErrNetworkFailure", err)
	}
}

func TestMockClient_Pagination(t *testing.T) {
	mock := &MockClient{
		Pages: []IssuePage{
			{Issues: []Issue{{Number: 1}, {Number: 2}}, HasNextPage: true, EndCursor: "c1"},
			{Issues: []Issue{{Number: 3}}, HasNextPage: false},
		},
	}

	ctx := context.Background()

	page1, err := mock.FetchIssues(ctx, "o", "r", FetchOptions{})
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if !page1.HasNextPage || page1.EndCursor != "c1" {
		t.Errorf("page 1 pagination = %v/%q, want true/c1", page1.HasNextPage, page1.EndCursor)
	}

	page2, err := mock.FetchIssues(ctx, "o", "r", FetchOptions{After: page1.EndCursor})
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if page2.HasNextPage {
		t.Error("page 2 should be the last page")
	}
	if mock.FetchCalls != 2 {
		t.Errorf("FetchCalls = %d, want 2", mock.FetchCalls)
	}
	if mock.LastOpts.After != "c1" {
		t.Errorf("LastOpts.After = %q, want c1", mock.LastOpts.After)
	}
}

func TestMockClient_FailOnPage(t *testing.T) {
	mock := &MockClient{
		Pages: []IssuePage{
			{Issues: []Issue{{Number: 1}}, HasNextPage: true, EndCursor: "c1"},
			{Issues: []Issue{{Number: 2}}},
		},
		FailOnPage: 2,
		FailWith:   fmt.Errorf("boom: %w", icsverrors.ErrNetworkFailure),
	}

	ctx := context.Background()

	if _, err := mock.FetchIssues(ctx, "o", "r", FetchOptions{}); err != nil {
		t.Fatalf("page 1 should succeed, got: %v", err)
	}
	_, err := mock.FetchIssues(ctx, "o", "r", FetchOptions{After: "c1"})
	if !errors.Is(err, icsverrors.ErrNetworkFailure) {
		t.Errorf("page 2 error = %v, want ErrNetworkFailure", err)
	}
}
