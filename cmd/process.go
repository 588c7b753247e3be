// =============================================================================
// Broadchains Report Parser - Process Command
// =============================================================================
//
// The 'process' command runs the report transform pipeline. It discovers
// report files in the input directory (or takes a single file via --file),
// processes them sequentially, and prints a summary block per run.
//
// On success, the input file is optionally moved to the input archive. On
// failure, the input stays in place and the command reports the error;
// output files flushed before the failure remain on disk.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vonage-tools/broadchains-parser/internal/pipeline"
	"github.com/vonage-tools/broadchains-parser/internal/report"
	"github.com/vonage-tools/broadchains-parser/pkg/utils"
)

// dryRun parses and counts without writing output files.
var dryRun bool

// filePath processes a single report instead of scanning the input dir.
var filePath string

// outputDir overrides the configured output directory.
var outputDir string

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process Broadchains report files and split them by day",
	Long: `The process command reads Broadchains delivery reports, validates that the
required columns are present, derives the Tag, Total Parts and Part Num
columns, and writes one output file per calendar day of date_received,
named {api_key}-{YYYY-MM-DD}.csv.

Output files are appended to, never truncated: re-running against a
populated output directory adds rows to the existing files. Clear the
output directory first when a clean result is needed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and count without writing output files",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a single report file to process",
	)

	processCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Override the configured output directory",
	)
}

// runProcess drives the pipeline over the selected report files.
func runProcess() error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	var inputs []string
	if filePath != "" {
		inputs = []string{filePath}
	} else {
		inputs, err = utils.DiscoverReports(cfg.InputDir)
		if err != nil {
			return err
		}
	}

	if len(inputs) == 0 {
		log.Infof("no report files found in %s", cfg.InputDir)
		return nil
	}
	log.Infof("found %d report file(s) to process", len(inputs))

	// Sequential on purpose: each run owns its output files and appends
	// to them, so two reports for the same api key must not interleave.
	var failed int
	for _, input := range inputs {
		p := pipeline.New(cfg, log, dryRun)

		summary, err := p.Run(input)
		if err != nil {
			failed++
			var schemaErr *report.SchemaError
			if errors.As(err, &schemaErr) {
				log.Errorf("%s: schema check failed: %v", filepath.Base(input), schemaErr)
			} else {
				log.Errorf("%s: %v", filepath.Base(input), err)
			}
			continue
		}

		printSummary(summary)

		if cfg.ArchiveOnSuccess && !dryRun {
			archived, err := utils.ArchiveInputFile(input, cfg.InputArchiveDir)
			if err != nil {
				log.Warningf("failed to archive %s: %v", input, err)
			} else {
				log.Infof("archived input to %s", archived)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d report(s) failed", failed, len(inputs))
	}
	return nil
}

// printSummary prints the per-run summary block.
func printSummary(s *pipeline.Summary) {
	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("PROCESSING SUMMARY")
	fmt.Println("==================================================")
	fmt.Printf("Input file:            %s\n", s.InputFile)
	fmt.Printf("Run ID:                %s\n", s.RunID)
	fmt.Printf("API key:               %s\n", s.APIKey)
	fmt.Printf("Total rows processed:  %d\n", s.TotalRows)
	fmt.Printf("Output files created:  %d\n", s.FilesCreated)
	fmt.Printf("Message bodies fixed:  %d\n", s.BodiesSanitized)
	fmt.Printf("Rows dropped (dates):  %d\n", s.InvalidDates)
	fmt.Printf("Processing time:       %s\n", s.Elapsed.Round(10*time.Millisecond))

	if len(s.PerFile) > 0 {
		fmt.Println("\nFiles created:")
		for _, f := range s.PerFile {
			fmt.Printf("  %s: %d rows, %.2f MB\n", f.Name, f.Rows, f.SizeMB)
		}
		fmt.Printf("\nTotal output size: %.2f MB\n", s.TotalOutputMB)
	}
	fmt.Println("==================================================")
}
