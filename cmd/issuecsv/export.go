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
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/repometrics/issuecsv/internal/config"
	icsverrors "github.com/repometrics/issuecsv/internal/errors"
	"github.com/repometrics/issuecsv/internal/github"
	"github.com/repometrics/issuecsv/internal/metadata"
	"github.com/repometrics/issuecsv/internal/output"
	"github.com/repometrics/issuecsv/pkg/version"
)

// baseColumns is the fixed CSV column order. --full appends the extended
// columns after these four.
var baseColumns = []string{"number", "title", "createdAt", "closedAt"}

// fullColumns extends the base set with the remaining fields of the issue query.
var fullColumns = []string{"updatedAt", "state", "stateReason", "labels"}

type exportOptions struct {
	token      string
	outputFile string
	configPath string
	endpoint   string
	pageSize   int
	maxPages   int
	full       bool
	saveMeta   bool
}

// exportCmd represents the export command
func newExportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <owner>/<repo>",
		Short: "Export issue data from a GitHub repository to CSV",
		Long: `Export issue data from a GitHub repository and write it as CSV.

The repository must be specified in the format: <owner>/<repo>
For example: FreeCAD/FreeCAD, golang/go

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable

Columns are number,title,createdAt,closedAt; --full appends
updatedAt,state,stateReason,labels. The output file is only created once
every page has been fetched, so a failed export never leaves a partial CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file path (default: .issuecsv.yaml, ~/.issuecsv/config.yaml)")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint URL (for GitHub Enterprise)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Issues per page, 1-100 (default from config)")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "Stop after this many pages (0 = fetch everything)")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Include updatedAt, state, stateReason, and labels columns")
	cmd.Flags().BoolVar(&opts.saveMeta, "metadata", false, "Write a JSON run summary next to the output file")

	return cmd
}

// runExport executes the export command
func runExport(ctx context.Context, repoArg string, opts exportOptions) error {
	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigForRepo(opts.configPath, repoArg)
	if err != nil {
		return err
	}
	if opts.endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = opts.endpoint
	}
	if opts.pageSize > 0 {
		cfg.Defaults.PageSize = opts.pageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Fail fast before any network call when no credential is available.
	token := getToken(opts.token, cfg.GitHub.TokenEnv)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag: %w", cfg.GitHub.TokenEnv, icsverrors.ErrInvalidToken)
	}

	client := github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint)

	return exportIssues(ctx, client, owner, repo, cfg.Defaults.PageSize, opts)
}

// parseRepository parses an owner/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// getToken returns the GitHub token from the flag or the configured environment variable
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

// exportIssues drives the pagination loop: one page in flight at a time,
// every issue written in the order GitHub returned it.
func exportIssues(ctx context.Context, client github.Client, owner, repo string, pageSize int, opts exportOptions) error {
	header := baseColumns
	if opts.full {
		header = append(append([]string{}, baseColumns...), fullColumns...)
	}

	var writer output.RowWriter
	if opts.outputFile == "" {
		w, err := output.NewWriter(os.Stdout, header)
		if err != nil {
			return err
		}
		writer = w
	} else {
		w, err := output.NewFileWriter(opts.outputFile, header)
		if err != nil {
			return err
		}
		writer = w
	}
	defer writer.Close()

	tracker := metadata.New()

	repoInfo, err := client.GetRepositoryInfo(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to get repository info: %w", err)
	}
	tracker.IncrementAPICall()

	totalIssues := repoInfo.TotalIssues
	fmt.Fprintf(os.Stderr, "Exporting %d issues from %s/%s in batches of %d...\n", totalIssues, owner, repo, pageSize)

	var (
		cursor    = ""
		hasMore   = true
		pageNum   = 0
		startTime = time.Now()
	)

	for hasMore {
		pageNum++
		page, err := client.FetchIssues(ctx, owner, repo, github.FetchOptions{
			PageSize: pageSize,
			After:    cursor,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "\r\033[K") // Clear progress line
			return fmt.Errorf("failed to fetch page %d: %w", pageNum, err)
		}
		tracker.IncrementAPICall()

		numbers := make([]int, 0, len(page.Issues))
		for _, issue := range page.Issues {
			if err := writer.Write(issueRow(issue, opts.full)); err != nil {
				return err
			}
			numbers = append(numbers, issue.Number)

			updateProgress(writer.Count(), totalIssues, pageNum, startTime)
		}
		tracker.RecordPage(numbers)

		cursor = page.EndCursor
		hasMore = page.HasNextPage

		if opts.maxPages > 0 && pageNum >= opts.maxPages {
			fmt.Fprintf(os.Stderr, "\r\033[K")
			fmt.Fprintf(os.Stderr, "Page limit reached, stopping after page %d\n", pageNum)
			break
		}
	}

	if err := writer.Commit(); err != nil {
		return err
	}

	if opts.saveMeta && opts.outputFile != "" {
		meta := tracker.Generate(version.Version, metadata.ExportParams{
			Organization: owner,
			Repository:   repo,
			PageSize:     pageSize,
			MaxPages:     opts.maxPages,
			FullColumns:  opts.full,
		})
		if err := metadata.Save(meta, opts.outputFile+".meta.json"); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "\r\033[K") // Clear progress line
	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Successfully exported %d issues in %s\n", writer.Count(), elapsed.Round(time.Second))

	return nil
}

// issueRow maps an issue to its CSV row. closedAt is empty while the issue
// is open; timestamps keep GitHub's native RFC 3339 UTC form.
func issueRow(issue github.Issue, full bool) []string {
	closedAt := ""
	if issue.ClosedAt != nil {
		closedAt = issue.ClosedAt.UTC().Format(time.RFC3339)
	}

	row := []string{
		strconv.Itoa(issue.Number),
		issue.Title,
		issue.CreatedAt.UTC().Format(time.RFC3339),
		closedAt,
	}

	if full {
		row = append(row,
			issue.UpdatedAt.UTC().Format(time.RFC3339),
			issue.State,
			issue.StateReason,
			joinLabels(issue.Labels),
		)
	}

	return row
}

// joinLabels flattens label names into one comma-separated field. Commas
// inside a label name are replaced with spaces so the field splits cleanly.
func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		cleaned = append(cleaned, strings.ReplaceAll(label, ",", " "))
	}
	return strings.Join(cleaned, ",")
}

// updateProgress displays progress with percentage and ETA
func updateProgress(current, total, pageNum int, startTime time.Time) {
	if total == 0 {
		return
	}

	percent := float64(current) * 100 / float64(total)
	elapsed := time.Since(startTime)

	var eta string
	if current > 0 {
		totalTime := elapsed.Seconds() * float64(total) / float64(current)
		remaining := time.Duration(totalTime-elapsed.Seconds()) * time.Second

		if remaining > 0 {
			eta = fmt.Sprintf(" | ETA: %s", remaining.Round(time.Second))
		}
	}

	fmt.Fprintf(os.Stderr, "\rProgress: %d / %d issues [%.1f%%] | Page %d%s",
		current, total, percent, pageNum, eta)
}

// mapErrorToExitCode maps internal errors to the documented exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, icsverrors.ErrInvalidToken):
		return 2
	case errors.Is(err, icsverrors.ErrNetworkFailure):
		return 3
	case errors.Is(err, icsverrors.ErrRepoNotFound),
		errors.Is(err, icsverrors.ErrRateLimit),
		errors.Is(err, icsverrors.ErrQueryFailed):
		return 4
	case errors.Is(err, icsverrors.ErrWriteOutput):
		return 5
	}

	return 1
}
