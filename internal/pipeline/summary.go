package pipeline

import "time"

// FileSummary describes one date-partitioned output file.
type FileSummary struct {
	// Date is the partition key (YYYY-MM-DD).
	Date string

	// Name is the output file name, "{api_key}-{date}.csv".
	Name string

	// Rows is the number of rows written to the file this run.
	Rows int

	// SizeMB is the file size after the run, in megabytes. Zero on dry
	// runs.
	SizeMB float64
}

// Summary is the result of processing one report file.
type Summary struct {
	// RunID uniquely identifies this processing run in logs.
	RunID string

	// InputFile is the path of the processed report.
	InputFile string

	// APIKey is the account key extracted from the report file name.
	APIKey string

	// TotalRows is the number of rows written to output files, after
	// dropping rows with unparseable dates.
	TotalRows int

	// FilesCreated is the number of distinct date partitions.
	FilesCreated int

	// PerFile holds per-partition statistics, sorted by date.
	PerFile []FileSummary

	// BodiesSanitized counts rows whose message_body needed quote or
	// whitespace cleanup.
	BodiesSanitized int

	// InvalidDates counts rows dropped for unparseable date_received.
	InvalidDates int

	// TotalOutputMB is the combined size of the output files.
	TotalOutputMB float64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
