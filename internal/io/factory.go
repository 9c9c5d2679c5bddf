package io

import (
	"fmt"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// NewRecordReader returns the RecordReader for format, configured with rc.
func NewRecordReader(format config.Format, rc config.ReadConfig) (RecordReader, error) {
	rc.ApplyDefaults()
	logging.Logf(logging.Debug, "Creating record reader for format: %s", format)

	switch format {
	case config.FormatJSON:
		return &JSONRecordReader{Encoding: rc.Encoding}, nil
	case config.FormatJSONL:
		return &JSONLRecordReader{Encoding: rc.Encoding}, nil
	case config.FormatCSV, config.FormatCSVDict:
		return &CSVRecordReader{Config: rc}, nil
	case config.FormatYAML:
		return &YAMLRecordReader{Encoding: rc.Encoding}, nil
	case config.FormatXLSX:
		return &XLSXRecordReader{Sheet: rc.Sheet}, nil
	case config.FormatText:
		return nil, &FormatError{Name: string(format), Reason: "format cannot be used for parametrization"}
	default:
		return nil, &FormatError{Name: string(format), Reason: "unsupported format"}
	}
}

// readDecoded reads the whole file and converts it to UTF-8.
func readDecoded(path, encodingName string) ([]byte, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if isUTF8(encodingName) {
		return raw, nil
	}
	text, err := DecodeText(raw, encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", path, err)
	}
	return []byte(text), nil
}
