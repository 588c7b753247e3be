// =============================================================================
// Broadchains Report Parser - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file, applies defaults,
// and makes sure the working directories exist. The configuration covers
// directories, batch sizing, the input delimiter, and logging.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// InputDir is the directory scanned for report files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where date-partitioned output files are
	// written. Output files are appended to, never truncated, so callers
	// re-running against the same directory should clear it first.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed report files are moved after a
	// successful run, when ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves the input file to InputArchiveDir after a
	// successful run. Failed files stay where they are.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// BatchSize is the number of rows read and processed per batch. It
	// bounds memory use; no batch starts until the previous batch's
	// writes have been flushed.
	// Default: 100000
	BatchSize int `yaml:"batch_size"`

	// Delimiter is the field delimiter of the input report.
	// Accepts ",", ";", "|"/"pipe", "\t"/"tab".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// LogFile is an optional file that receives an uncolored copy of the
	// log output. Empty disables file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel controls log verbosity: "debug", "info", "warning", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Load reads the configuration from a YAML file, applies defaults, and
// validates it. A missing file is not an error: the defaults are used, so
// the tool runs without any configuration present.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100000
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks the configuration and creates missing directories.
func validate(cfg *Config) error {
	// Zero never reaches this point: applyDefaults promotes an unset or
	// explicit zero batch_size to the default first.
	if cfg.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative, got %d", cfg.BatchSize)
	}

	dirs := []string{cfg.InputDir, cfg.OutputDir}
	if cfg.ArchiveOnSuccess {
		dirs = append(dirs, cfg.InputArchiveDir)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return nil
}
