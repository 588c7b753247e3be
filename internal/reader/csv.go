package reader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// CSVSource streams rows from a delimited UTF-8 text file with a single
// header row.
type CSVSource struct {
	file    *os.File
	reader  *csv.Reader
	headers []string
	current map[string]string
	rowNum  int
	err     error
}

// NewCSVSource opens a delimited report file and reads its header row.
func NewCSVSource(path, delimiter string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = delimiterRune(delimiter)

	// Reports in the wild have ragged rows and loosely quoted fields.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	src := &CSVSource{file: file, reader: reader}

	header, err := reader.Read()
	if err != nil {
		file.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("report file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	src.rowNum++

	src.headers = make([]string, len(header))
	for i, h := range header {
		src.headers[i] = strings.TrimSpace(h)
	}

	return src, nil
}

// delimiterRune maps a configured delimiter string to the reader rune.
// Handles the spelled-out forms used in config files. Anything else is
// taken as its first rune, so multibyte delimiters survive UTF-8 intact.
func delimiterRune(delimiter string) rune {
	switch delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if delimiter == "" {
			return ','
		}
		r, _ := utf8.DecodeRuneInString(delimiter)
		return r
	}
}

// Headers returns the trimmed column names from the header row.
func (s *CSVSource) Headers() []string {
	return s.headers
}

// Next advances to the next non-blank data row.
func (s *CSVSource) Next() bool {
	if s.err != nil {
		return false
	}

	for {
		row, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			s.err = fmt.Errorf("error reading row %d: %w", s.rowNum+1, err)
			return false
		}
		s.rowNum++

		if isRowEmpty(row) {
			continue
		}

		current := make(map[string]string, len(s.headers))
		for i, header := range s.headers {
			if i < len(row) {
				current[header] = strings.TrimSpace(row[i])
			} else {
				current[header] = ""
			}
		}
		s.current = current
		return true
	}
}

// Row returns the current row. The map is freshly allocated per row, so
// callers may retain it.
func (s *CSVSource) Row() map[string]string {
	return s.current
}

// RowNumber returns the current 1-indexed row number, header included.
func (s *CSVSource) RowNumber() int {
	return s.rowNum
}

// Err returns any error encountered while reading.
func (s *CSVSource) Err() error {
	return s.err
}

// Close closes the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
