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

package output

// RowWriter defines the interface for writing exported issue rows.
// This abstraction allows different destinations (file, stdout) to be
// used by the export command without changing the core logic.
type RowWriter interface {
	// Write appends a single data row.
	Write(record []string) error

	// Count returns the number of data rows written so far.
	// The header row is not counted.
	Count() int

	// Commit finalizes the output. For file-backed writers this atomically
	// publishes the file at its destination path; until Commit succeeds, no
	// file exists at that path.
	Commit() error

	// Close releases resources. If Commit has not been called, any buffered
	// or temporary output is discarded.
	Close() error
}
