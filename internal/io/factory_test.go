package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
)

func TestNewRecordReader(t *testing.T) {
	testCases := []struct {
		format config.Format
		want   RecordReader
	}{
		{config.FormatJSON, &JSONRecordReader{Encoding: "utf-8"}},
		{config.FormatJSONL, &JSONLRecordReader{Encoding: "utf-8"}},
		{config.FormatCSV, &CSVRecordReader{Config: config.ReadConfig{Encoding: "utf-8", CSVDelimiter: ','}}},
		{config.FormatCSVDict, &CSVRecordReader{Config: config.ReadConfig{Encoding: "utf-8", CSVDelimiter: ','}}},
		{config.FormatYAML, &YAMLRecordReader{Encoding: "utf-8"}},
		{config.FormatXLSX, &XLSXRecordReader{}},
	}
	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			reader, err := NewRecordReader(tc.format, config.ReadConfig{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, reader)
		})
	}

	_, err := NewRecordReader(config.FormatText, config.ReadConfig{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = NewRecordReader("xml", config.ReadConfig{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
