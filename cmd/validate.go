// =============================================================================
// Broadchains Report Parser - Validate Command
// =============================================================================
//
// The 'validate' command loads the configuration, creates any missing
// working directories, and prints the resolved settings without processing
// anything. Useful as a pre-flight check before pointing the tool at a
// large report.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vonage-tools/broadchains-parser/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}

		fmt.Println("Configuration OK")
		fmt.Printf("  input_dir:          %s\n", cfg.InputDir)
		fmt.Printf("  output_dir:         %s\n", cfg.OutputDir)
		fmt.Printf("  input_archive_dir:  %s\n", cfg.InputArchiveDir)
		fmt.Printf("  archive_on_success: %t\n", cfg.ArchiveOnSuccess)
		fmt.Printf("  batch_size:         %d\n", cfg.BatchSize)
		fmt.Printf("  delimiter:          %q\n", cfg.Delimiter)
		fmt.Printf("  log_level:          %s\n", cfg.LogLevel)
		if cfg.LogFile != "" {
			fmt.Printf("  log_file:           %s\n", cfg.LogFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
