package io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXRows(t *testing.T) {
	path := createTempXLSX(t, [][]interface{}{
		{"id", "a", "b"},
		{"first", 1, "x"},
		{"second", 2},
	})

	rows, err := XLSXRows(path, "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "a", "b"}, {"first", "1", "x"}, {"second", "2"}}, rows)

	_, err = XLSXRows(path, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet 'Missing' not found")

	_, err = XLSXRows(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}

func TestXLSXRowsNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Cases")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Cases", "A1", &[]interface{}{"k"}))
	require.NoError(t, f.SetSheetRow("Cases", "A2", &[]interface{}{"v"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := XLSXRows(path, "Cases")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"k"}, {"v"}}, rows)
}

func TestXLSXRecordReader(t *testing.T) {
	t.Run("Pads short rows", func(t *testing.T) {
		path := createTempXLSX(t, [][]interface{}{
			{"id", "a", "b"},
			{"first", 1, "x"},
			{"second", 2},
		})
		records, err := (&XLSXRecordReader{}).Read(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"id", "a", "b"}, records[1].Keys)
		assert.Equal(t, map[string]interface{}{"id": "second", "a": "2", "b": ""}, records[1].Values)
	})

	t.Run("Cells beyond header", func(t *testing.T) {
		path := createTempXLSX(t, [][]interface{}{
			{"id"},
			{"first", "extra"},
		})
		_, err := (&XLSXRecordReader{}).Read(path)
		assert.ErrorIs(t, err, ErrInvalidData)
	})
}
