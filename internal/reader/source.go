// =============================================================================
// Broadchains Report Parser - Row Sources
// =============================================================================
//
// This module streams raw report rows from disk. Broadchains exports come in
// two flavors, CSV and XLSX, so the reader exposes a Source interface with
// one implementation per format. Rows are surfaced as header -> value maps
// with whitespace-trimmed values; blank rows are skipped.
//
// The pipeline consumes a Source in bounded batches (ReadBatch) so memory
// stays flat regardless of report size.
//
// =============================================================================

package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source is a streaming iterator over report rows.
//
// Usage:
//
//	src, err := reader.Open(path, ",")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for src.Next() {
//	    row := src.Row()
//	    // process the row...
//	}
//	if err := src.Err(); err != nil {
//	    return err
//	}
type Source interface {
	// Headers returns the column names from the header row.
	Headers() []string

	// Next advances to the next data row. Returns false at end of input
	// or on error.
	Next() bool

	// Row returns the current row as a header -> value map.
	Row() map[string]string

	// Err returns the first error encountered while reading, if any.
	Err() error

	// Close releases the underlying file.
	Close() error
}

// Open returns a Source for the given report file, chosen by extension:
// .xlsx opens an XLSX source, anything else a delimited-text source.
func Open(path, delimiter string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewXLSXSource(path)
	default:
		return NewCSVSource(path, delimiter)
	}
}

// ReadBatch reads up to n rows from the source. A short (or empty) batch
// means the source is exhausted. The source's error, if any, is returned
// after the rows read so far.
func ReadBatch(src Source, n int) ([]map[string]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", n)
	}

	batch := make([]map[string]string, 0, min(n, 1024))
	for len(batch) < n && src.Next() {
		batch = append(batch, src.Row())
	}
	return batch, src.Err()
}
