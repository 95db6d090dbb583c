package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	icsverrors "github.com/repometrics/issuecsv/internal/errors"
)

// Writer streams CSV rows to an io.Writer. The header row is written on
// construction so a committed output always starts with the column names.
type Writer struct {
	csv   *csv.Writer
	count int
}

// NewWriter creates a CSV writer that writes the header immediately and
// streams subsequent rows to w.
func NewWriter(w io.Writer, header []string) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	return &Writer{csv: cw}, nil
}

// Write appends a single data row.
func (w *Writer) Write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV row: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	w.count++
	return nil
}

// Count returns the number of data rows written. The header is not counted.
func (w *Writer) Count() int {
	return w.count
}

// Commit flushes buffered rows to the underlying writer.
func (w *Writer) Commit() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	return nil
}

// Close is a no-op for plain writers; the underlying writer is owned by the caller.
func (w *Writer) Close() error {
	return nil
}

// FileWriter writes a CSV file atomically. Rows stream to a temporary file
// in the destination directory; Commit renames it to the final path. A run
// that fails before Commit leaves nothing at the destination.
type FileWriter struct {
	path      string
	tmp       *os.File
	csv       *csv.Writer
	count     int
	committed bool
}

// NewFileWriter creates the temporary file and writes the header row to it.
// The destination path itself is not touched until Commit.
func NewFileWriter(path string, header []string) (*FileWriter, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file in %s: %v: %w", dir, err, icsverrors.ErrWriteOutput)
	}

	cw := csv.NewWriter(tmp)
	if err := cw.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write CSV header: %v: %w", err, icsverrors.ErrWriteOutput)
	}

	return &FileWriter{
		path: path,
		tmp:  tmp,
		csv:  cw,
	}, nil
}

// Write appends a single data row to the temporary file.
func (w *FileWriter) Write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV row: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	w.count++
	return nil
}

// Count returns the number of data rows written. The header is not counted.
func (w *FileWriter) Count() int {
	return w.count
}

// Commit flushes all rows, closes the temporary file, and renames it onto
// the destination path, overwriting any existing file there.
func (w *FileWriter) Commit() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	if err := w.tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("failed to move output into place at %s: %v: %w", w.path, err, icsverrors.ErrWriteOutput)
	}
	w.committed = true
	return nil
}

// Close discards the temporary file unless Commit already published it.
func (w *FileWriter) Close() error {
	if w.committed {
		return nil
	}
	w.tmp.Close()
	if err := os.Remove(w.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary output file: %v: %w", err, icsverrors.ErrWriteOutput)
	}
	return nil
}
