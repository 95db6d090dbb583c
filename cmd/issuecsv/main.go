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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repometrics/issuecsv/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "issuecsv",
		Short: "Export GitHub issue metadata to CSV",
		Long: `issuecsv fetches the issues of a GitHub repository through the GraphQL
API and writes them as CSV rows for simple statistics generation. It pulls
issue numbers, titles, and creation/closure timestamps, paginating until the
repository's issue list is exhausted.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newExportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
