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

// Package github implements the GitHub GraphQL client used to enumerate a
// repository's issues. It exposes a small Client interface so the export
// command can be tested against a mock, and a GraphQLClient implementation
// that performs cursor-based pagination with typed queries.
//
// One request is in flight at a time; the caller drives the pagination loop
// by passing the previous page's EndCursor in FetchOptions.After until
// HasNextPage is false. Failures are classified into the exporter's fatal
// error categories via the giterror package and wrapped around the
// corresponding sentinel from internal/errors.
package github
