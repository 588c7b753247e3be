// =============================================================================
// Broadchains Report Parser - Logging Setup
// =============================================================================
//
// Configures the go-logging backends: a colored, leveled console backend on
// stdout and, optionally, an uncolored file backend. The pipeline takes the
// logger as an explicit dependency rather than reaching for a package-level
// singleton, so tests can hand it a quiet logger.
//
// =============================================================================

package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
)

const module = "broadchains"

// consoleFormat colors the level for terminal output.
var consoleFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05} %{color}%{level:.5s}%{color:reset} %{message}`,
)

// fileFormat is the plain format used for the log file.
var fileFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05} %{level:.5s} %{message}`,
)

// Setup configures the logging backends and returns the application logger.
// level is one of debug, info, warning, error. logFile is optional; when
// set, its parent directory is created and log output is duplicated there
// without colors.
func Setup(level, logFile string) (*logging.Logger, error) {
	levelCode, err := logging.LogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	console := logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", 0),
		consoleFormat,
	)

	backends := []logging.Backend{console}

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		backends = append(backends, logging.NewBackendFormatter(
			logging.NewLogBackend(f, "", 0),
			fileFormat,
		))
	}

	leveled := logging.MultiLogger(backends...)
	leveled.SetLevel(levelCode, "")
	logging.SetBackend(leveled)

	return logging.MustGetLogger(module), nil
}

// Quiet returns a logger whose output is discarded. Used in tests.
func Quiet() *logging.Logger {
	logger := logging.MustGetLogger(module + "-quiet")
	backend := logging.AddModuleLevel(logging.NewLogBackend(discard{}, "", 0))
	backend.SetLevel(logging.CRITICAL, "")
	logger.SetBackend(backend)
	return logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
