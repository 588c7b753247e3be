// =============================================================================
// Broadchains Report Parser - Partitioned Output Writer
// =============================================================================
//
// This module owns the output files: one CSV per calendar date, named
// "{api_key}-{YYYY-MM-DD}.csv". Files are opened in append mode and live for
// the whole run, so all batches for the same date land in the same file.
//
// Quoting contract:
//   - The header row is written once, on file creation, with minimal quoting.
//   - Data rows are written with every field quoted exactly once; embedded
//     quote characters are doubled per RFC 4180.
//
// Because message bodies are stripped of quote characters before they reach
// the writer, and the writer is the only place quotes are added, no field in
// the final file can appear wrapped in more than one quote character. The
// upstream tooling needed a post-pass collapsing runs of three quotes; this
// writer makes that state unrepresentable instead.
//
// =============================================================================

package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PartitionedWriter appends report rows to one output file per date key.
type PartitionedWriter struct {
	dir     string
	apiKey  string
	columns []string
	files   map[string]*partitionFile
}

type partitionFile struct {
	file *os.File
	buf  *bufio.Writer
	name string
	rows int
}

// NewPartitioned creates a writer that places date-partitioned files in dir.
// The directory is created if absent. columns is the header written on file
// creation.
func NewPartitioned(dir, apiKey string, columns []string) (*PartitionedWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	return &PartitionedWriter{
		dir:     dir,
		apiKey:  apiKey,
		columns: columns,
		files:   make(map[string]*partitionFile),
	}, nil
}

// FileName returns the output file name for a date key.
func (w *PartitionedWriter) FileName(dateKey string) string {
	return fmt.Sprintf("%s-%s.csv", w.apiKey, dateKey)
}

// Append writes the rows for one date partition. The partition file is
// created (with header) on first use and reused for later batches. Rows are
// flushed to disk before Append returns, so a batch is durable before the
// next one starts.
func (w *PartitionedWriter) Append(dateKey string, rows [][]string) error {
	pf, err := w.partition(dateKey)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeQuotedRow(pf.buf, row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", pf.name, err)
		}
		pf.rows++
	}

	if err := pf.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", pf.name, err)
	}
	return nil
}

// partition returns the open file for a date key, creating it on first use.
// A file left over from a previous run is appended to, not truncated; the
// header is only written when the file is newly created.
func (w *PartitionedWriter) partition(dateKey string) (*partitionFile, error) {
	if pf, ok := w.files[dateKey]; ok {
		return pf, nil
	}

	name := w.FileName(dateKey)
	path := filepath.Join(w.dir, name)

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	pf := &partitionFile{
		file: file,
		buf:  bufio.NewWriter(file),
		name: name,
	}

	if isNew {
		// Header row: minimal quoting, written exactly once.
		cw := csv.NewWriter(pf.buf)
		if err := cw.Write(w.columns); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write header to %s: %w", name, err)
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write header to %s: %w", name, err)
		}
	}

	w.files[dateKey] = pf
	return pf, nil
}

// writeQuotedRow writes one data row with every field quoted.
func writeQuotedRow(buf *bufio.Writer, row []string) error {
	for i, field := range row {
		if i > 0 {
			if err := buf.WriteByte(','); err != nil {
				return err
			}
		}
		if err := buf.WriteByte('"'); err != nil {
			return err
		}
		if _, err := buf.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if err := buf.WriteByte('"'); err != nil {
			return err
		}
	}
	return buf.WriteByte('\n')
}

// RowCounts returns the number of rows written per date key this run.
func (w *PartitionedWriter) RowCounts() map[string]int {
	counts := make(map[string]int, len(w.files))
	for dateKey, pf := range w.files {
		counts[dateKey] = pf.rows
	}
	return counts
}

// DateKeys returns the date keys written this run, sorted.
func (w *PartitionedWriter) DateKeys() []string {
	keys := make([]string, 0, len(w.files))
	for dateKey := range w.files {
		keys = append(keys, dateKey)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the full path of the output file for a date key.
func (w *PartitionedWriter) Path(dateKey string) string {
	return filepath.Join(w.dir, w.FileName(dateKey))
}

// Close flushes and closes every partition file. The first error is
// returned; all files are closed regardless.
func (w *PartitionedWriter) Close() error {
	var firstErr error
	for _, pf := range w.files {
		if err := pf.buf.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := pf.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
