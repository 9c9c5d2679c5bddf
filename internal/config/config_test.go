package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidationError checks that err mentions every expected substring.
func assertValidationError(t *testing.T, err error, expectedSubstrings ...string) {
	t.Helper()
	require.Error(t, err)
	for _, sub := range expectedSubstrings {
		assert.Contains(t, err.Error(), sub)
	}
}

func strPtr(s string) *string { return &s }

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name   string
		want   Format
		wantOK bool
	}{
		{name: "data.json", want: FormatJSON, wantOK: true},
		{name: "events.JSONL", want: FormatJSONL, wantOK: true},
		{name: "rows.csv", want: FormatCSV, wantOK: true},
		{name: "cfg.yaml", want: FormatYAML, wantOK: true},
		{name: "cfg.YML", want: FormatYAML, wantOK: true},
		{name: "sheet.xlsx", want: FormatXLSX, wantOK: true},
		{name: "nested/dir/cases.json", want: FormatJSON, wantOK: true},
		{name: "notes.txt", wantOK: false},
		{name: "Makefile", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DetectFormat(tc.name)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParamConfigApplyDefaults(t *testing.T) {
	cfg := ParamConfig{File: "cases.csv", Format: "CSV"}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultIDField, cfg.IDFieldName())
	assert.Equal(t, DefaultEncoding, cfg.Encoding)
	assert.Equal(t, DefaultCSVDelimiter, cfg.CSVDelimiter)
	assert.Equal(t, FormatCSV, cfg.Format)

	disabled := ParamConfig{File: "cases.csv", IDField: strPtr("")}
	disabled.ApplyDefaults()
	assert.Equal(t, "", disabled.IDFieldName())

	sheet := ParamConfig{File: "x.xlsx", Sheet: "Cases", CSVDelimiter: ';', Encoding: "latin-1"}
	assert.Equal(t, ReadConfig{Encoding: "latin-1", CSVDelimiter: ';', Sheet: "Cases"}, sheet.ReadSettings())
}

func TestParamConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     ParamConfig
		wantErr []string
	}{
		{name: "valid csv", cfg: ParamConfig{File: "cases.csv"}},
		{name: "valid explicit format", cfg: ParamConfig{File: "cases.data", Format: FormatJSONL}},
		{name: "valid filter", cfg: ParamConfig{File: "cases.csv", Filter: "a > 1 && b == 'x'"}},
		{name: "missing file", cfg: ParamConfig{}, wantErr: []string{"Param.File", "required"}},
		{name: "absolute file", cfg: ParamConfig{File: "/abs/cases.csv"}, wantErr: []string{"must be relative"}},
		{name: "unknown format", cfg: ParamConfig{File: "c.csv", Format: "toml"}, wantErr: []string{"unknown format 'toml'"}},
		{name: "text not parametrizable", cfg: ParamConfig{File: "c.txt", Format: FormatText}, wantErr: []string{"cannot be parametrized"}},
		{name: "quote delimiter", cfg: ParamConfig{File: "c.csv", CSVDelimiter: '"'}, wantErr: []string{"Param.CSVDelimiter"}},
		{name: "repeated explicit ids", cfg: ParamConfig{File: "c.csv", IDs: []string{"a", "b", "a"}}},
		{name: "bad filter", cfg: ParamConfig{File: "c.csv", Filter: "a >"}, wantErr: []string{"Param.Filter"}},
		{
			name:    "several problems reported together",
			cfg:     ParamConfig{Format: "toml", Filter: "(("},
			wantErr: []string{"Param.File", "Param.Format", "Param.Filter"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if len(tc.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			assertValidationError(t, err, tc.wantErr...)
			assert.True(t, strings.HasPrefix(err.Error(), "invalid parametrization settings:"))
		})
	}
}

func TestReadConfigValidate(t *testing.T) {
	rc := ReadConfig{}
	rc.ApplyDefaults()
	require.NoError(t, rc.Validate())
	assert.Equal(t, DefaultEncoding, rc.Encoding)

	clash := ReadConfig{CSVDelimiter: ';', CSVComment: ';'}
	clash.ApplyDefaults()
	assertValidationError(t, clash.Validate(), "Read.CSVComment", "also the delimiter")

	newline := ReadConfig{CSVDelimiter: '\n'}
	assertValidationError(t, newline.Validate(), "Read.CSVDelimiter")
}

func TestParametrizable(t *testing.T) {
	assert.True(t, Parametrizable(FormatCSVDict))
	assert.True(t, Parametrizable(FormatXLSX))
	assert.False(t, Parametrizable(FormatText))
	assert.False(t, Parametrizable(FormatAuto))
	assert.True(t, ValidFormat(FormatAuto))
	assert.False(t, ValidFormat("ini"))
}
