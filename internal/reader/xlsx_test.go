package reader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSourceReadsRows(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"account_id", "to", "message_body"},
		{"acc-1", "12345", "hello"},
		{"acc-2", "67890", "world"},
	})

	src, err := NewXLSXSource(path)
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
	assert.Equal(t, "world", src.Row()["message_body"])

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

func TestXLSXSourceShortRowsPadded(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"a", "b", "c"},
		{"1", "2"},
	})

	src, err := NewXLSXSource(path)
	require.NoError(t, err)
	defer src.Close()

	require.True(t, src.Next())
	assert.Equal(t, "", src.Row()["c"])
}

func TestOpenSelectsXLSXByExtension(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"a"},
		{"1"},
	})

	src, err := Open(path, ",")
	require.NoError(t, err)
	defer src.Close()

	_, ok := src.(*XLSXSource)
	assert.True(t, ok)
}
