package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	icsverrors "github.com/repometrics/issuecsv/internal/errors"
)

var testHeader = []string{"number", "title", "createdAt", "closedAt"}

func TestNewWriter_WritesHeader(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	if got != "number,title,createdAt,closedAt" {
		t.Errorf("header = %q, want canonical column names", got)
	}
	if w.Count() != 0 {
		t.Errorf("Count = %d before any data rows, want 0", w.Count())
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		want    []string
	}{
		{
			name: "single row",
			records: [][]string{
				{"1", "Fix crash", "2024-01-01T00:00:00Z", ""},
			},
			want: []string{
				"number,title,createdAt,closedAt",
				"1,Fix crash,2024-01-01T00:00:00Z,",
			},
		},
		{
			name: "multiple rows preserve order",
			records: [][]string{
				{"1", "First", "2024-01-01T00:00:00Z", ""},
				{"2", "Second", "2024-01-02T00:00:00Z", "2024-01-03T00:00:00Z"},
				{"3", "Third", "2024-01-03T00:00:00Z", ""},
			},
			want: []string{
				"number,title,createdAt,closedAt",
				"1,First,2024-01-01T00:00:00Z,",
				"2,Second,2024-01-02T00:00:00Z,2024-01-03T00:00:00Z",
				"3,Third,2024-01-03T00:00:00Z,",
			},
		},
		{
			name: "comma in title gets quoted",
			records: [][]string{
				{"7", "Crash, then hang", "2024-01-01T00:00:00Z", ""},
			},
			want: []string{
				"number,title,createdAt,closedAt",
				`7,"Crash, then hang",2024-01-01T00:00:00Z,`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, testHeader)
			if err != nil {
				t.Fatalf("NewWriter failed: %v", err)
			}

			for _, record := range tt.records {
				if err := w.Write(record); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}
			if err := w.Commit(); err != nil {
				t.Fatalf("Commit failed: %v", err)
			}

			if w.Count() != len(tt.records) {
				t.Errorf("Count = %d, want %d", w.Count(), len(tt.records))
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("line count = %d, want %d", len(lines), len(tt.want))
			}
			for i, line := range lines {
				if line != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, line, tt.want[i])
				}
			}
		})
	}
}

func TestWriter_QuotingRoundTrip(t *testing.T) {
	title := `Bug, "crashes" on load`

	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Write([]string{"42", title, "2024-06-01T09:30:00Z", ""}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing output failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[1][1] != title {
		t.Errorf("round-tripped title = %q, want %q", records[1][1], title)
	}
}

func TestFileWriter_CommitPublishesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")

	w, err := NewFileWriter(path, testHeader)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer w.Close()

	// Nothing should exist at the destination until Commit.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("destination exists before Commit: %v", err)
	}

	if err := w.Write([]string{"1", "Hello", "2024-01-01T00:00:00Z", ""}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading committed file failed: %v", err)
	}
	want := "number,title,createdAt,closedAt\n1,Hello,2024-01-01T00:00:00Z,\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", string(data), want)
	}
}

func TestFileWriter_CloseWithoutCommitDiscards(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "issues.csv")

	w, err := NewFileWriter(path, testHeader)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	if err := w.Write([]string{"1", "Partial", "2024-01-01T00:00:00Z", ""}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("aborted export left a file at the destination path")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("aborted export left %d stray files in output dir", len(entries))
	}
}

func TestFileWriter_CommitOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")
	if err := os.WriteFile(path, []byte("stale content\n"), 0o644); err != nil {
		t.Fatalf("seeding existing file failed: %v", err)
	}

	w, err := NewFileWriter(path, testHeader)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer w.Close()

	if err := w.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading committed file failed: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("existing file was not overwritten")
	}
}

func TestNewFileWriter_BadDirectory(t *testing.T) {
	_, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "issues.csv"), testHeader)
	if err == nil {
		t.Fatal("expected error for unwritable directory")
	}
	if !errors.Is(err, icsverrors.ErrWriteOutput) {
		t.Errorf("error %v does not wrap ErrWriteOutput", err)
	}
}
