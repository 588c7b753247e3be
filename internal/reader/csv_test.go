package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVSourceReadsRows(t *testing.T) {
	path := writeTempCSV(t, "report.csv",
		"account_id,to,message_body\n"+
			"acc-1,12345,hello\n"+
			"acc-2, 67890 ,  spaced  \n")

	src, err := NewCSVSource(path, ",")
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"account_id", "to", "message_body"}, src.Headers())

	require.True(t, src.Next())
	assert.Equal(t, map[string]string{
		"account_id":   "acc-1",
		"to":           "12345",
		"message_body": "hello",
	}, src.Row())

	require.True(t, src.Next())
	row := src.Row()
	assert.Equal(t, "67890", row["to"])
	assert.Equal(t, "spaced", row["message_body"])

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

func TestCSVSourceSkipsBlankRows(t *testing.T) {
	path := writeTempCSV(t, "report.csv",
		"a,b\n"+
			"1,2\n"+
			",\n"+
			"3,4\n")

	src, err := NewCSVSource(path, ",")
	require.NoError(t, err)
	defer src.Close()

	var rows []map[string]string
	for src.Next() {
		rows = append(rows, src.Row())
	}

	require.NoError(t, src.Err())
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1]["a"])
}

func TestCSVSourceShortRowsPadded(t *testing.T) {
	path := writeTempCSV(t, "report.csv",
		"a,b,c\n"+
			"1,2\n")

	src, err := NewCSVSource(path, ",")
	require.NoError(t, err)
	defer src.Close()

	require.True(t, src.Next())
	assert.Equal(t, "", src.Row()["c"])
}

func TestCSVSourceDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		content   string
	}{
		{name: "pipe", delimiter: "|", content: "a|b\n1|2\n"},
		{name: "spelled out pipe", delimiter: "pipe", content: "a|b\n1|2\n"},
		{name: "semicolon", delimiter: ";", content: "a;b\n1;2\n"},
		{name: "tab", delimiter: "tab", content: "a\tb\n1\t2\n"},
		{name: "multibyte rune", delimiter: "§", content: "a§b\n1§2\n"},
		{name: "default comma", delimiter: "", content: "a,b\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "report.csv", tt.content)

			src, err := NewCSVSource(path, tt.delimiter)
			require.NoError(t, err)
			defer src.Close()

			require.True(t, src.Next())
			assert.Equal(t, map[string]string{"a": "1", "b": "2"}, src.Row())
		})
	}
}

func TestCSVSourceEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "")

	_, err := NewCSVSource(path, ",")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadBatch(t *testing.T) {
	path := writeTempCSV(t, "report.csv",
		"a\n1\n2\n3\n4\n5\n")

	src, err := NewCSVSource(path, ",")
	require.NoError(t, err)
	defer src.Close()

	batch, err := ReadBatch(src, 2)
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.Equal(t, "1", batch[0]["a"])

	batch, err = ReadBatch(src, 2)
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	// Final short batch, then an empty one.
	batch, err = ReadBatch(src, 2)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Equal(t, "5", batch[0]["a"])

	batch, err = ReadBatch(src, 2)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestReadBatchRejectsNonPositiveSize(t *testing.T) {
	path := writeTempCSV(t, "report.csv", "a\n1\n")

	src, err := NewCSVSource(path, ",")
	require.NoError(t, err)
	defer src.Close()

	_, err = ReadBatch(src, 0)
	assert.Error(t, err)
}

func TestOpenSelectsSourceByExtension(t *testing.T) {
	path := writeTempCSV(t, "report.csv", "a\n1\n")

	src, err := Open(path, ",")
	require.NoError(t, err)
	defer src.Close()

	_, ok := src.(*CSVSource)
	assert.True(t, ok)
}
