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

// Package output provides CSV writers for exported issue rows.
//
// Two implementations of RowWriter exist: Writer streams to any io.Writer
// (used for stdout), and FileWriter writes to a hidden temporary file that
// Commit atomically renames to the destination path. The rename-on-commit
// protocol guarantees a failed export never leaves a partial CSV at the
// configured output path.
//
// Quoting follows encoding/csv: fields containing the delimiter, quote
// character, or newlines are quoted, and embedded quotes are doubled.
package output
