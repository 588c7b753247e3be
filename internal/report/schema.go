// =============================================================================
// Broadchains Report Parser - Report Schema
// =============================================================================
//
// This module defines the column contract for Broadchains delivery reports:
// the 21 columns every report must carry, the 3 derived columns appended by
// the pipeline, and the schema validation performed before any row is
// processed.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
)

// RequiredColumns lists the source columns that must be present in every
// Broadchains report. The order here is the output column order.
var RequiredColumns = []string{
	"account_id",
	"message_id",
	"direction",
	"from",
	"to",
	"forced_from",
	"message_body",
	"concatenated",
	"network",
	"network_name",
	"country",
	"country_name",
	"date_received",
	"date_finalized",
	"latency",
	"status",
	"error_code",
	"error_code_description",
	"currency",
	"total_price",
	"udh",
}

// DerivedColumns are appended after the required columns in every output row.
var DerivedColumns = []string{"Tag", "Total Parts", "Part Num"}

// OutputColumns returns the full 24-column output header, fixed order.
func OutputColumns() []string {
	out := make([]string, 0, len(RequiredColumns)+len(DerivedColumns))
	out = append(out, RequiredColumns...)
	out = append(out, DerivedColumns...)
	return out
}

// SchemaError reports required columns missing from the source header.
// It is fatal: the run must abort before any row is processed.
type SchemaError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateSchema checks that every required column is present in the source
// header. Extra columns are ignored. Returns a *SchemaError listing all
// missing columns, or nil.
func ValidateSchema(header []string) error {
	missing := MissingColumns(header)
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// MissingColumns returns the required columns absent from the given header.
// The pipeline also uses this per batch to detect mid-file schema drift,
// which is non-fatal.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// SelectFields projects a source row onto the required columns, in order.
// Columns absent from the row are filled with an empty string.
func SelectFields(row map[string]string) []string {
	fields := make([]string, len(RequiredColumns))
	for i, col := range RequiredColumns {
		fields[i] = row[col]
	}
	return fields
}
