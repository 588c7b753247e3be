package reader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource streams rows from the first sheet of an XLSX report export.
// The first row of the sheet is the header row.
type XLSXSource struct {
	file    *excelize.File
	rows    *excelize.Rows
	headers []string
	current map[string]string
	err     error
}

// NewXLSXSource opens an XLSX report and positions the iterator after the
// header row.
func NewXLSXSource(path string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to iterate sheet %s: %w", sheetName, err)
	}

	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	return &XLSXSource{file: f, rows: rows, headers: headers}, nil
}

// Headers returns the trimmed column names from the header row.
func (s *XLSXSource) Headers() []string {
	return s.headers
}

// Next advances to the next non-blank data row.
func (s *XLSXSource) Next() bool {
	if s.err != nil {
		return false
	}

	for s.rows.Next() {
		row, err := s.rows.Columns()
		if err != nil {
			s.err = fmt.Errorf("error reading sheet row: %w", err)
			return false
		}

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

	if err := s.rows.Error(); err != nil {
		s.err = fmt.Errorf("error iterating sheet: %w", err)
	}
	return false
}

// Row returns the current row. The map is freshly allocated per row.
func (s *XLSXSource) Row() map[string]string {
	return s.current
}

// Err returns any error encountered while reading.
func (s *XLSXSource) Err() error {
	return s.err
}

// Close releases the row iterator and the workbook.
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
