// =============================================================================
// Broadchains Report Parser - Root Command
// =============================================================================
//
// Defines the root command for the CLI. Commands:
//
//   broadchains
//   ├── process   (transform report files)
//   ├── validate  (check the configuration)
//   └── version   (build information)
//
// The root command owns the global flags (--config, --verbose) and the
// shared config/logger initialization used by the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	gologging "github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/vonage-tools/broadchains-parser/internal/config"
	"github.com/vonage-tools/broadchains-parser/internal/logging"
)

// cfgFile holds the path to the configuration file, set via --config.
var cfgFile string

// verbose raises the log level to debug, overriding the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "broadchains",
	Short: "Broadchains report parser - split delivery reports by day with derived columns",
	Long: `Broadchains report parser post-processes message delivery reports exported
from the Broadchains reporting system.

For each report it keeps the required columns, adds three derived columns
(Tag, Total Parts, Part Num), and splits the rows into one output file per
calendar day of date_received.

Example usage:
  broadchains process                         # process every report in the input directory
  broadchains process --file report.csv      # process a single report
  broadchains process --dry-run              # parse and count without writing
  broadchains validate                        # check the configuration`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// initRuntime loads the configuration and sets up the logger for commands
// that need both.
func initRuntime() (*config.Config, *gologging.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	log, err := logging.Setup(level, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return cfg, log, nil
}
