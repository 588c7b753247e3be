// =============================================================================
// Broadchains Report Parser - Report Transform Pipeline
// =============================================================================
//
// Orchestrates the processing of one report file:
//
//   1. Open the row source and validate the schema (fatal on failure)
//   2. Per batch: select the required fields, sanitize message bodies,
//      parse date_received (dropping rows that fail), derive the Tag,
//      Total Parts, and Part Num columns, and partition rows by date
//   3. Append each partition to its date file
//   4. Accumulate counters and produce the run summary
//
// Processing is single-threaded and batch-sequential: a batch's writes are
// flushed before the next batch is read. A schema failure aborts before any
// row is processed; an I/O failure mid-run aborts in place, leaving the
// files already flushed on disk.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"

	"github.com/vonage-tools/broadchains-parser/internal/config"
	"github.com/vonage-tools/broadchains-parser/internal/reader"
	"github.com/vonage-tools/broadchains-parser/internal/report"
	"github.com/vonage-tools/broadchains-parser/internal/writer"
	"github.com/vonage-tools/broadchains-parser/pkg/utils"
)

// Pipeline processes Broadchains report files into date-partitioned output.
type Pipeline struct {
	cfg    *config.Config
	log    *logging.Logger
	dryRun bool
}

// New creates a pipeline. The logger is an explicit dependency so callers
// control where run output goes. With dryRun set, the pipeline reads,
// validates, and counts, but writes nothing.
func New(cfg *config.Config, log *logging.Logger, dryRun bool) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, dryRun: dryRun}
}

// Run processes a single report file and returns the run summary. The
// returned error is non-nil only for run-aborting failures (missing
// required columns, unreadable input, write failures).
func (p *Pipeline) Run(inputPath string) (*Summary, error) {
	start := time.Now()

	summary := &Summary{
		RunID:     uuid.New().String(),
		InputFile: inputPath,
		APIKey:    utils.APIKeyFromFilename(inputPath),
	}

	p.log.Infof("run %s: processing %s (api key %s)", summary.RunID, inputPath, summary.APIKey)
	if sizeMB, err := utils.FileSizeMB(inputPath); err == nil {
		p.log.Infof("input file size: %.2f MB", sizeMB)
	}

	src, err := reader.Open(inputPath, p.cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Schema check is fatal and happens before any row is processed.
	if err := report.ValidateSchema(src.Headers()); err != nil {
		return nil, err
	}

	var out *writer.PartitionedWriter
	if !p.dryRun {
		out, err = writer.NewPartitioned(p.cfg.OutputDir, summary.APIKey, report.OutputColumns())
		if err != nil {
			return nil, err
		}
		defer out.Close()
	}

	dateCounts := make(map[string]int)

	for batchNum := 1; ; batchNum++ {
		batch, err := reader.ReadBatch(src, p.cfg.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", batchNum, err)
		}
		if len(batch) == 0 {
			break
		}

		batchStart := time.Now()
		p.log.Infof("processing batch %d with %d rows", batchNum, len(batch))

		if err := p.processBatch(batch, out, summary, dateCounts); err != nil {
			return nil, fmt.Errorf("batch %d: %w", batchNum, err)
		}

		p.log.Infof("batch %d done in %s, %d rows so far",
			batchNum, time.Since(batchStart).Round(time.Millisecond), summary.TotalRows)

		if len(batch) < p.cfg.BatchSize {
			break
		}
	}

	p.finish(summary, out, dateCounts, start)
	return summary, nil
}

// processBatch transforms one batch of raw rows and appends the resulting
// partitions to the output files.
func (p *Pipeline) processBatch(
	batch []map[string]string,
	out *writer.PartitionedWriter,
	summary *Summary,
	dateCounts map[string]int,
) error {
	// Mid-file schema drift: a required column absent from this batch is
	// filled with empty strings and warned about, not fatal.
	if len(batch) > 0 {
		keys := make([]string, 0, len(batch[0]))
		for k := range batch[0] {
			keys = append(keys, k)
		}
		for _, col := range report.MissingColumns(keys) {
			p.log.Warningf("column %q not present in this batch, filling with empty values", col)
		}
	}

	partitions := make(map[string][][]string)
	invalid := 0

	for _, row := range batch {
		clean, changed := report.SanitizeMessageBody(row["message_body"])
		row["message_body"] = clean
		if changed {
			summary.BodiesSanitized++
		}

		received, err := report.ParseReceived(row["date_received"])
		if err != nil {
			invalid++
			continue
		}

		fields := report.SelectFields(row)
		fields = append(fields,
			report.SynthesizeTag(row["udh"], row["to"], received, true),
			report.TotalParts(row["udh"]),
			report.PartNum(row["udh"]),
		)

		key := report.DateKey(received)
		partitions[key] = append(partitions[key], fields)
	}

	if invalid > 0 {
		p.log.Warningf("dropped %d rows with invalid date_received", invalid)
		summary.InvalidDates += invalid
	}

	// Stable order: all rows for a date are contiguous within the batch.
	keys := make([]string, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rows := partitions[key]
		if out != nil {
			if err := out.Append(key, rows); err != nil {
				return err
			}
		}
		dateCounts[key] += len(rows)
		summary.TotalRows += len(rows)
	}
	return nil
}

// finish closes out the summary with per-file statistics.
func (p *Pipeline) finish(
	summary *Summary,
	out *writer.PartitionedWriter,
	dateCounts map[string]int,
	start time.Time,
) {
	dates := make([]string, 0, len(dateCounts))
	for date := range dateCounts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fs := FileSummary{
			Date: date,
			Rows: dateCounts[date],
		}
		if out != nil {
			fs.Name = out.FileName(date)
			if sizeMB, err := utils.FileSizeMB(out.Path(date)); err == nil {
				fs.SizeMB = sizeMB
				summary.TotalOutputMB += sizeMB
			}
		} else {
			fs.Name = fmt.Sprintf("%s-%s.csv", summary.APIKey, date)
		}
		summary.PerFile = append(summary.PerFile, fs)
	}

	summary.FilesCreated = len(dateCounts)
	summary.Elapsed = time.Since(start)

	p.log.Infof("run %s: %d rows into %d files in %s",
		summary.RunID, summary.TotalRows, summary.FilesCreated,
		summary.Elapsed.Round(time.Millisecond))
}
