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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates the GitHub token is missing or was rejected.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRepoNotFound indicates the specified repository does not exist or is not accessible.
	// Maps to exit code 4.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 4.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrQueryFailed indicates GitHub returned a well-formed error payload
	// for the query itself. Maps to exit code 4.
	ErrQueryFailed = errors.New("github query failed")

	// ErrWriteOutput indicates the output file could not be created or written.
	// Maps to exit code 5.
	ErrWriteOutput = errors.New("cannot write output file")
)
