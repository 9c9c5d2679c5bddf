package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
	"github.com/brian-c-moore/fixtures-fixtures/internal/util"
)

// jsonLines yields the 1-based number and content of every non-blank line.
func jsonLines(data []byte, yield func(line int, text []byte) error) error {
	for i, raw := range bytes.Split(data, []byte("\n")) {
		if util.IsBlank(raw) {
			continue
		}
		if err := yield(i+1, bytes.TrimSpace(raw)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJSONL parses one JSON value per non-blank line. The first line that
// fails aborts decoding with a *LineError. Empty input gives an empty slice.
func DecodeJSONL(data []byte, path string) ([]interface{}, error) {
	values := make([]interface{}, 0)
	err := jsonLines(data, func(line int, text []byte) error {
		var v interface{}
		if err := json.Unmarshal(text, &v); err != nil {
			return newLineError(path, line, text, err)
		}
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// JSONLRecordReader reads one JSON object per line, keeping key order.
type JSONLRecordReader struct {
	Encoding string
}

// Read implements RecordReader.
func (jr *JSONLRecordReader) Read(path string) ([]Record, error) {
	logging.Logf(logging.Debug, "JSONLRecordReader reading file: %s", path)
	data, err := readDecoded(path, jr.Encoding)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0)
	err = jsonLines(data, func(line int, text []byte) error {
		dec := json.NewDecoder(bytes.NewReader(text))
		rec, err := decodeJSONObject(dec, path, len(records))
		if err != nil {
			var dataError *DataError
			if errors.As(err, &dataError) {
				dataError.Msg = fmt.Sprintf("line %d: %s", line, dataError.Msg)
				return dataError
			}
			return newLineError(path, line, text, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return newLineError(path, line, text, fmt.Errorf("unexpected data after object"))
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logf(logging.Debug, "JSONLRecordReader loaded %d records from %s", len(records), path)
	return records, nil
}
