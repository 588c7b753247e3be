// =============================================================================
// Broadchains Report Parser - File Utilities
// =============================================================================
//
// File helpers shared by the commands and the pipeline: report discovery,
// API-key extraction from report file names, size reporting, and archival
// of processed inputs.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reportExtensions are the file extensions recognized as report exports.
var reportExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// DiscoverReports scans a directory (non-recursively) for report files,
// sorted by name.
func DiscoverReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if reportExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// APIKeyFromFilename extracts the account API key embedded in a Broadchains
// report file name, which is the third underscore-separated token
// (for example "broadchains_report_a1b2c3d4_20250509.csv" -> "a1b2c3d4").
// Returns "unknown" when the name has fewer than three tokens.
func APIKeyFromFilename(name string) string {
	parts := strings.Split(filepath.Base(name), "_")
	if len(parts) < 3 {
		return "unknown"
	}
	return parts[2]
}

// FileSizeMB returns the size of a file in megabytes.
func FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// ArchiveInputFile moves a processed report into the archive directory and
// returns the archived path. Rename is attempted first; a copy-then-remove
// fallback handles archives on a different filesystem.
func ArchiveInputFile(path, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	dest := filepath.Join(archiveDir, filepath.Base(path))
	if err := os.Rename(path, dest); err == nil {
		return dest, nil
	}

	if err := copyFile(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove original %s: %w", path, err)
	}
	return dest, nil
}

// copyFile copies src to dest, preserving contents only.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
