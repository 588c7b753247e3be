package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestAPIKeyFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "standard report name", filename: "broadchains_report_a1b2c3d4_20250509.csv", want: "a1b2c3d4"},
		{name: "full path stripped", filename: "/data/in/broadchains_report_a1b2c3d4_20250509.csv", want: "a1b2c3d4"},
		{name: "exactly three tokens", filename: "broadchains_report_key.csv", want: "key.csv"},
		{name: "two tokens", filename: "broadchains_report.csv", want: "unknown"},
		{name: "no underscores", filename: "report.csv", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, APIKeyFromFilename(tt.filename))
		})
	}
}

func TestDiscoverReports(t *testing.T) {
	dir := t.TempDir()

	b := touch(t, dir, "b_report.csv")
	a := touch(t, dir, "a_report.xlsx")
	touch(t, dir, "notes.txt")
	touch(t, dir, "README.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	files, err := DiscoverReports(dir)
	require.NoError(t, err)

	// Only report extensions, sorted, directories skipped.
	assert.Equal(t, []string{a, b}, files)
}

func TestDiscoverReportsMissingDir(t *testing.T) {
	_, err := DiscoverReports(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileSizeMB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(path, make([]byte, 1024*1024), 0644))

	size, err := FileSizeMB(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, size, 0.001)
}

func TestArchiveInputFile(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "archive")
	src := touch(t, dir, "broadchains_report_key_20250509.csv")

	dest, err := ArchiveInputFile(src, archive)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(archive, "broadchains_report_key_20250509.csv"), dest)
	assert.FileExists(t, dest)
	assert.NoFileExists(t, src)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)

	// Idempotent.
	assert.NoError(t, EnsureDir(dir))
}
